package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/precios-api/internal/domain"
	"github.com/jhoicas/precios-api/internal/domain/entity"
	"github.com/jhoicas/precios-api/internal/domain/pricing"
)

// Engine motor de ajuste de precios: mantiene el conjunto de trabajo en memoria,
// aplica ediciones individuales y masivas, mantiene el ValuationSummary
// consistente y produce el change-set que se confirma contra el almacén.
//
// El motor es monohilo: no provee exclusión mutua propia. Si se expone a
// callers concurrentes, el caller serializa las llamadas mutadoras
// (la capa de sesión en usecase.go lo hace con un mutex por empresa).
type Engine struct {
	companyID string
	items     []*entity.PriceItem
	index     map[string]*entity.PriceItem
	summary   entity.ValuationSummary
	history   []entity.PriceChangeRecord
}

// NewEngine construye un motor vacío para una empresa. Estado explícito por
// sesión: nada global ni estático.
func NewEngine(companyID string) *Engine {
	return &Engine{
		companyID: companyID,
		index:     make(map[string]*entity.PriceItem),
	}
}

// BulkUpdateResult resultado de un ajuste masivo.
type BulkUpdateResult struct {
	UpdatedCount int
	Summary      entity.ValuationSummary
}

// CommitResult resultado de un commit. Los fallos de persistencia por ítem se
// reportan en FailedItemIDs, nunca como error de la llamada.
type CommitResult struct {
	SucceededCount int
	FailedItemIDs  []string
	Record         entity.PriceChangeRecord
}

// Load reemplaza el conjunto de trabajo con un snapshot fresco del almacén.
// Todos los ítems quedan sin cambios pendientes y sin seleccionar.
// No muta la colección de entrada.
func (e *Engine) Load(records []SnapshotRecord) {
	e.items = make([]*entity.PriceItem, 0, len(records))
	e.index = make(map[string]*entity.PriceItem, len(records))
	for _, r := range records {
		item := &entity.PriceItem{
			ID:            r.ID,
			PartNo:        r.PartNo,
			Description:   r.Description,
			Category:      r.Category,
			Brand:         r.Brand,
			Quantity:      r.Quantity,
			CurrentCost:   r.Cost,
			CurrentPriceA: r.PriceA,
			CurrentPriceB: r.PriceB,
			CurrentPriceM: r.PriceM,
		}
		e.items = append(e.items, item)
		e.index[item.ID] = item
	}
	e.recompute()
}

// Loaded indica si ya se cargó un snapshot (aunque esté vacío).
func (e *Engine) Loaded() bool { return e.items != nil }

// Items devuelve el conjunto de trabajo en orden de carga. Los callers no
// deben mutar los ítems directamente: toda mutación pasa por las operaciones
// del motor.
func (e *Engine) Items() []*entity.PriceItem { return e.items }

// Summary devuelve el agregado vigente (recalculado tras cada mutación).
func (e *Engine) Summary() entity.ValuationSummary { return e.summary }

// History devuelve los registros de ajustes confirmados en esta sesión.
func (e *Engine) History() []entity.PriceChangeRecord { return e.history }

// SetIndividualPrice fija un valor pendiente para un campo de un ítem.
// value nil limpia el pendiente de ese campo. Un valor negativo se rechaza
// sin mutar nada.
func (e *Engine) SetIndividualPrice(itemID string, field entity.PriceField, value *decimal.Decimal) error {
	if !isSingleField(field) {
		return domain.ErrCampoInvalido
	}
	item, ok := e.index[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	if value != nil && value.IsNegative() {
		return domain.ErrPrecioNegativo
	}
	if value == nil {
		item.SetPending(field, nil)
	} else {
		v := *value
		item.SetPending(field, &v)
	}
	e.recompute()
	return nil
}

// SetSelection marca o desmarca un ítem. La selección nunca implica modificación.
func (e *Engine) SetSelection(itemID string, selected bool) error {
	item, ok := e.index[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Selected = selected
	e.recompute()
	return nil
}

// SetSelectionAll marca o desmarca todos los ítems que cumplan match
// (match nil = todos). El filtrado visible es asunto de la vista: aquí solo
// se recibe el predicado explícito.
func (e *Engine) SetSelectionAll(selected bool, match func(*entity.PriceItem) bool) {
	for _, item := range e.items {
		if match == nil || match(item) {
			item.Selected = selected
		}
	}
	e.recompute()
}

// ApplyBulkUpdate aplica el mismo ajuste (porcentaje o fijo) al campo indicado
// de cada ítem seleccionado. FieldAll ajusta los cuatro campos, cada uno desde
// su propio valor actual (nunca derivados entre sí). La base del cálculo es
// siempre el valor Current* del snapshot, por lo que ajustes repetidos no se
// componen. O se actualizan todos los seleccionados o, ante un fallo de
// precondición, ninguno.
func (e *Engine) ApplyBulkUpdate(field entity.PriceField, mode pricing.AdjustMode, value decimal.Decimal) (BulkUpdateResult, error) {
	if !isSingleField(field) && field != entity.FieldAll {
		return BulkUpdateResult{}, domain.ErrCampoInvalido
	}
	if mode != pricing.ModePercentage && mode != pricing.ModeFixed {
		return BulkUpdateResult{}, domain.ErrCampoInvalido
	}
	if value.IsZero() {
		return BulkUpdateResult{}, domain.ErrValorCero
	}
	selected := 0
	for _, item := range e.items {
		if item.Selected {
			selected++
		}
	}
	if selected == 0 {
		return BulkUpdateResult{}, domain.ErrSinSeleccion
	}

	fields := []entity.PriceField{field}
	if field == entity.FieldAll {
		fields = []entity.PriceField{entity.FieldCost, entity.FieldPriceA, entity.FieldPriceB, entity.FieldPriceM}
	}
	updated := 0
	for _, item := range e.items {
		if !item.Selected {
			continue
		}
		for _, f := range fields {
			v := pricing.Adjust(item.Current(f), mode, value)
			item.SetPending(f, &v)
		}
		updated++
	}
	e.recompute()
	return BulkUpdateResult{UpdatedCount: updated, Summary: e.summary}, nil
}

// ResetAll descarta todos los cambios pendientes y la selección, dejando el
// conjunto igual al snapshot original. Idempotente.
func (e *Engine) ResetAll() {
	for _, item := range e.items {
		item.ClearPending()
		item.Selected = false
	}
	e.recompute()
}

// Commit envía los cambios pendientes al almacén, ítem por ítem, en orden del
// conjunto de trabajo. Cada Persist es independiente: un fallo no aborta los
// restantes. Los éxitos se consolidan en Current* y limpian su pendiente; los
// fallos conservan su estado modified para reintento (volver a llamar Commit).
// Los valores del payload se redondean a 2 decimales y lo consolidado es el
// valor redondeado, de modo que memoria y almacén queden iguales.
func (e *Engine) Commit(ctx context.Context, reason, actor string, sink CommitSink) (CommitResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return CommitResult{}, domain.ErrMotivoRequerido
	}
	modified := 0
	for _, item := range e.items {
		if item.Modified() {
			modified++
		}
	}
	if modified == 0 {
		return CommitResult{}, domain.ErrSinCambios
	}

	var (
		succeeded int
		failed    []string
		delta     decimal.Decimal
	)
	for _, item := range e.items {
		if !item.Modified() {
			continue
		}
		payload, rounded := buildPayload(item)
		if err := sink.Persist(ctx, item.ID, payload); err != nil {
			failed = append(failed, item.ID)
			continue
		}
		// Consolidar: pendiente redondeado pasa a ser el valor actual.
		if c, ok := rounded[entity.FieldCost]; ok {
			delta = delta.Add(item.Quantity.Mul(c.Sub(item.CurrentCost)))
			item.CurrentCost = c
		}
		if v, ok := rounded[entity.FieldPriceA]; ok {
			item.CurrentPriceA = v
		}
		if v, ok := rounded[entity.FieldPriceB]; ok {
			item.CurrentPriceB = v
		}
		if v, ok := rounded[entity.FieldPriceM]; ok {
			item.CurrentPriceM = v
		}
		item.ClearPending()
		succeeded++
	}

	record := entity.PriceChangeRecord{
		ID:           uuid.New().String(),
		CompanyID:    e.companyID,
		ItemsUpdated: succeeded,
		ValueDelta:   delta,
		Reason:       reason,
		Actor:        actor,
		CreatedAt:    time.Now(),
	}
	e.history = append(e.history, record)
	e.recompute()
	return CommitResult{SucceededCount: succeeded, FailedItemIDs: failed, Record: record}, nil
}

// buildPayload arma la actualización parcial del ítem: solo los campos con
// pendiente (los demás no se envían, para no pisar campos que el usuario no
// tocó). Devuelve además los valores redondeados para consolidarlos tras el
// éxito del Persist.
func buildPayload(item *entity.PriceItem) (PriceUpdatePayload, map[entity.PriceField]decimal.Decimal) {
	rounded := make(map[entity.PriceField]decimal.Decimal, 4)
	var payload PriceUpdatePayload
	if item.PendingCost != nil {
		v := item.PendingCost.Round(2)
		rounded[entity.FieldCost] = v
		payload.Cost = &v
	}
	if item.PendingPriceA != nil {
		v := item.PendingPriceA.Round(2)
		rounded[entity.FieldPriceA] = v
		payload.PriceA = &v
	}
	if item.PendingPriceB != nil {
		v := item.PendingPriceB.Round(2)
		rounded[entity.FieldPriceB] = v
		payload.PriceB = &v
	}
	if item.PendingPriceM != nil {
		v := item.PendingPriceM.Round(2)
		rounded[entity.FieldPriceM] = v
		payload.PriceM = &v
	}
	return payload, rounded
}

// recompute recalcula el agregado completo en O(n). Se ejecuta tras cada
// mutación; n está acotado por el tamaño del catálogo (miles), así que el
// recálculo eager es suficiente y garantiza la consistencia requerida.
func (e *Engine) recompute() {
	var s entity.ValuationSummary
	s.TotalItems = len(e.items)
	for _, item := range e.items {
		if item.Selected {
			s.SelectedCount++
		}
		if item.Modified() {
			s.ModifiedCount++
		}
		s.CurrentTotalValue = s.CurrentTotalValue.Add(item.Quantity.Mul(item.CurrentCost))
		s.PendingTotalValue = s.PendingTotalValue.Add(item.Quantity.Mul(item.EffectiveCost()))
	}
	s.ValueDelta = s.PendingTotalValue.Sub(s.CurrentTotalValue)
	e.summary = s
}

func isSingleField(f entity.PriceField) bool {
	switch f {
	case entity.FieldCost, entity.FieldPriceA, entity.FieldPriceB, entity.FieldPriceM:
		return true
	}
	return false
}
