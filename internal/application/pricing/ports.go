package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/precios-api/internal/domain/entity"
)

// SnapshotRecord registro del catálogo tal como lo entrega el almacén externo.
// Los campos numéricos ausentes llegan en cero (el adaptador es responsable).
type SnapshotRecord struct {
	ID          string
	PartNo      string
	Description string
	Category    string
	Brand       string
	Quantity    decimal.Decimal
	Cost        decimal.Decimal
	PriceA      decimal.Decimal
	PriceB      decimal.Decimal
	PriceM      decimal.Decimal
}

// SnapshotSource entrega el catálogo completo materializado antes de Load.
// Lectura pura: no muta el almacén.
type SnapshotSource interface {
	FetchAll(ctx context.Context, companyID string) ([]SnapshotRecord, error)
}

// PriceUpdatePayload actualización parcial de los campos de precio de un ítem.
// Un campo nil no se toca en el almacén (no se envía como cero).
type PriceUpdatePayload struct {
	Cost   *decimal.Decimal
	PriceA *decimal.Decimal
	PriceB *decimal.Decimal
	PriceM *decimal.Decimal
}

// Empty indica si el payload no toca ningún campo.
func (p PriceUpdatePayload) Empty() bool {
	return p.Cost == nil && p.PriceA == nil && p.PriceB == nil && p.PriceM == nil
}

// CommitSink persiste la actualización de precios de exactamente un ítem en el
// almacén externo. El motor hace como máximo un intento por ítem por commit;
// el reintento es responsabilidad del caller (volver a llamar Commit).
type CommitSink interface {
	Persist(ctx context.Context, itemID string, payload PriceUpdatePayload) error
}

// ReportGenerator genera el reporte PDF de ajustes de precios.
type ReportGenerator interface {
	GenerateAdjustmentReport(
		ctx context.Context,
		company *entity.Company,
		summary entity.ValuationSummary,
		history []entity.PriceChangeRecord,
	) ([]byte, error)
}

// PriceListExporter serializa la lista de precios para intercambio con otros ERP.
type PriceListExporter interface {
	ExportPriceList(company *entity.Company, items []*entity.PriceItem) ([]byte, error)
}
