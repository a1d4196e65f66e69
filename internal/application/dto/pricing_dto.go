package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceItemResponse un ítem del conjunto de trabajo, con sus valores actuales,
// los pendientes (omitidos si no hay propuesta) y el estado derivado.
type PriceItemResponse struct {
	ID          string          `json:"id"`
	PartNo      string          `json:"part_no"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`

	CurrentCost   decimal.Decimal `json:"current_cost"`
	CurrentPriceA decimal.Decimal `json:"current_price_a"`
	CurrentPriceB decimal.Decimal `json:"current_price_b"`
	CurrentPriceM decimal.Decimal `json:"current_price_m"`

	PendingCost   *decimal.Decimal `json:"pending_cost,omitempty"`
	PendingPriceA *decimal.Decimal `json:"pending_price_a,omitempty"`
	PendingPriceB *decimal.Decimal `json:"pending_price_b,omitempty"`
	PendingPriceM *decimal.Decimal `json:"pending_price_m,omitempty"`

	Selected bool   `json:"selected"`
	Status   string `json:"status"` // "unchanged" | "modified"
}

// PriceItemListResponse listado paginado del conjunto de trabajo.
type PriceItemListResponse struct {
	Items   []PriceItemResponse      `json:"items"`
	Summary ValuationSummaryResponse `json:"summary"`
	Page    PageResponse             `json:"page"`
}

// ValuationSummaryResponse agregado de valorización del conjunto de trabajo.
type ValuationSummaryResponse struct {
	TotalItems        int             `json:"total_items"`
	SelectedCount     int             `json:"selected_count"`
	ModifiedCount     int             `json:"modified_count"`
	CurrentTotalValue decimal.Decimal `json:"current_total_value"`
	PendingTotalValue decimal.Decimal `json:"pending_total_value"`
	ValueDelta        decimal.Decimal `json:"value_delta"`
}

// SetPriceRequest body para PUT /api/prices/:id. Value null limpia el pendiente.
type SetPriceRequest struct {
	Field string           `json:"field"` // cost | price_a | price_b | price_m
	Value *decimal.Decimal `json:"value"`
}

// SelectionRequest body para POST /api/prices/selection.
// Con All=true se (de)selecciona todo el conjunto; si no, los ItemIDs dados.
type SelectionRequest struct {
	ItemIDs  []string `json:"item_ids,omitempty"`
	All      bool     `json:"all,omitempty"`
	Selected bool     `json:"selected"`
}

// BulkUpdateRequest body para POST /api/prices/bulk.
type BulkUpdateRequest struct {
	Field string          `json:"field"` // cost | price_a | price_b | price_m | all
	Mode  string          `json:"mode"`  // percentage | fixed
	Value decimal.Decimal `json:"value"`
}

// BulkUpdateResponse resultado de un ajuste masivo.
type BulkUpdateResponse struct {
	UpdatedCount int                      `json:"updated_count"`
	Summary      ValuationSummaryResponse `json:"summary"`
}

// CommitRequest body para POST /api/prices/commit.
type CommitRequest struct {
	Reason string `json:"reason"`
}

// CommitResponse resultado de un commit, incluyendo fallos parciales.
type CommitResponse struct {
	SucceededCount int                 `json:"succeeded_count"`
	FailedItemIDs  []string            `json:"failed_item_ids,omitempty"`
	Record         PriceChangeResponse `json:"record"`
}

// PriceChangeResponse un registro del historial de ajustes.
type PriceChangeResponse struct {
	ID           string          `json:"id"`
	ItemsUpdated int             `json:"items_updated"`
	ValueDelta   decimal.Decimal `json:"value_delta"`
	Reason       string          `json:"reason"`
	Actor        string          `json:"actor,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PriceChangeListResponse historial de la sesión.
type PriceChangeListResponse struct {
	Items []PriceChangeResponse `json:"items"`
}
