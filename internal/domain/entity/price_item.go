package entity

import "github.com/shopspring/decimal"

// PriceField identifica cuál de los cuatro campos monetarios de un ítem se ajusta.
type PriceField string

const (
	FieldCost   PriceField = "cost"
	FieldPriceA PriceField = "price_a"
	FieldPriceB PriceField = "price_b"
	FieldPriceM PriceField = "price_m"
	// FieldAll aplica el mismo ajuste a los cuatro campos a la vez
	// (solo válido en ajustes masivos, cada campo se calcula desde su propio valor actual).
	FieldAll PriceField = "all"
)

// ItemStatus estado derivado de un ítem del conjunto de trabajo.
type ItemStatus string

const (
	StatusUnchanged ItemStatus = "unchanged"
	StatusModified  ItemStatus = "modified"
)

// PriceItem registro de precios de una referencia del inventario dentro del
// conjunto de trabajo del motor de ajuste. Los campos Current* son el snapshot
// leído del almacén al cargar; los Pending* son propuestas aún no confirmadas
// (nil = sin cambio propuesto). Quantity nunca la muta este motor: pertenece
// a los movimientos de stock.
type PriceItem struct {
	ID          string
	PartNo      string
	Description string
	Category    string
	Brand       string
	Quantity    decimal.Decimal

	CurrentCost   decimal.Decimal
	CurrentPriceA decimal.Decimal
	CurrentPriceB decimal.Decimal
	CurrentPriceM decimal.Decimal

	PendingCost   *decimal.Decimal
	PendingPriceA *decimal.Decimal
	PendingPriceB *decimal.Decimal
	PendingPriceM *decimal.Decimal

	// Selected delimita el alcance de los ajustes masivos; no implica modificación.
	Selected bool
}

// Status se deriva siempre de los campos Pending*: nunca se persiste.
func (p *PriceItem) Status() ItemStatus {
	if p.Modified() {
		return StatusModified
	}
	return StatusUnchanged
}

// Modified indica si el ítem tiene al menos un cambio pendiente.
func (p *PriceItem) Modified() bool {
	return p.PendingCost != nil || p.PendingPriceA != nil ||
		p.PendingPriceB != nil || p.PendingPriceM != nil
}

// EffectiveCost devuelve el costo pendiente si existe, o el actual.
func (p *PriceItem) EffectiveCost() decimal.Decimal {
	if p.PendingCost != nil {
		return *p.PendingCost
	}
	return p.CurrentCost
}

// Current devuelve el valor actual del campo indicado.
func (p *PriceItem) Current(field PriceField) decimal.Decimal {
	switch field {
	case FieldCost:
		return p.CurrentCost
	case FieldPriceA:
		return p.CurrentPriceA
	case FieldPriceB:
		return p.CurrentPriceB
	case FieldPriceM:
		return p.CurrentPriceM
	}
	return decimal.Zero
}

// SetPending fija (o limpia, con nil) el valor pendiente del campo indicado.
func (p *PriceItem) SetPending(field PriceField, v *decimal.Decimal) {
	switch field {
	case FieldCost:
		p.PendingCost = v
	case FieldPriceA:
		p.PendingPriceA = v
	case FieldPriceB:
		p.PendingPriceB = v
	case FieldPriceM:
		p.PendingPriceM = v
	}
}

// Pending devuelve el valor pendiente del campo indicado (nil si no hay).
func (p *PriceItem) Pending(field PriceField) *decimal.Decimal {
	switch field {
	case FieldCost:
		return p.PendingCost
	case FieldPriceA:
		return p.PendingPriceA
	case FieldPriceB:
		return p.PendingPriceB
	case FieldPriceM:
		return p.PendingPriceM
	}
	return nil
}

// ClearPending descarta todos los cambios pendientes del ítem.
func (p *PriceItem) ClearPending() {
	p.PendingCost = nil
	p.PendingPriceA = nil
	p.PendingPriceB = nil
	p.PendingPriceM = nil
}

// ValuationSummary agregado sobre todo el conjunto de trabajo; se recalcula
// después de cada mutación del motor.
//
//	CurrentTotalValue = Σ Quantity × CurrentCost
//	PendingTotalValue = Σ Quantity × (PendingCost ?? CurrentCost)
//	ValueDelta        = PendingTotalValue − CurrentTotalValue
type ValuationSummary struct {
	TotalItems        int
	SelectedCount     int
	ModifiedCount     int
	CurrentTotalValue decimal.Decimal
	PendingTotalValue decimal.Decimal
	ValueDelta        decimal.Decimal
}
