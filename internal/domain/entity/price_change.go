package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceChangeRecord entrada del historial de ajustes de precios (append-only).
// Resume el subconjunto que se confirmó con éxito en un commit.
type PriceChangeRecord struct {
	ID           string
	CompanyID    string
	ItemsUpdated int
	ValueDelta   decimal.Decimal
	Reason       string
	Actor        string
	CreatedAt    time.Time
}
