package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/domain"
)

var _ pricing.SnapshotSource = (*PriceItemRepo)(nil)
var _ pricing.CommitSink = (*PriceItemRepo)(nil)

// PriceItemRepo adaptador del catálogo de precios sobre PostgreSQL: es a la vez
// la fuente de snapshot y el sink de commit del motor de ajuste.
// Usable con pool o tx (Querier).
type PriceItemRepo struct {
	q              Querier
	persistTimeout time.Duration
}

// NewPriceItemRepository construye el adaptador. persistTimeoutSeconds acota
// cada Persist individual del commit; <= 0 usa 5s.
func NewPriceItemRepository(q Querier, persistTimeoutSeconds int) *PriceItemRepo {
	if persistTimeoutSeconds <= 0 {
		persistTimeoutSeconds = 5
	}
	return &PriceItemRepo{q: q, persistTimeout: time.Duration(persistTimeoutSeconds) * time.Second}
}

// FetchAll materializa el catálogo completo de una empresa para el Load del
// motor. NUMERIC escanea directo a decimal.Decimal (codec del pool); los NULL
// de columnas numéricas llegan como cero vía COALESCE.
func (r *PriceItemRepo) FetchAll(ctx context.Context, companyID string) ([]pricing.SnapshotRecord, error) {
	query := `
		SELECT id, part_no, COALESCE(description, ''), COALESCE(category, ''), COALESCE(brand, ''),
		       COALESCE(quantity, 0), COALESCE(cost, 0), COALESCE(price_a, 0), COALESCE(price_b, 0), COALESCE(price_m, 0)
		FROM products WHERE company_id = $1 ORDER BY part_no`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("fetch price snapshot: %w", err)
	}
	defer rows.Close()
	var list []pricing.SnapshotRecord
	for rows.Next() {
		var rec pricing.SnapshotRecord
		if err := rows.Scan(&rec.ID, &rec.PartNo, &rec.Description, &rec.Category, &rec.Brand,
			&rec.Quantity, &rec.Cost, &rec.PriceA, &rec.PriceB, &rec.PriceM); err != nil {
			return nil, fmt.Errorf("scan price snapshot: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Persist actualiza los campos de precio de exactamente un ítem. Solo arma el
// SET con los campos presentes en el payload: un campo nil no se toca (nunca
// se escribe como cero). Cada llamada tiene su propio timeout; vencerlo cuenta
// como fallo de ese ítem, no del commit completo.
func (r *PriceItemRepo) Persist(ctx context.Context, itemID string, payload pricing.PriceUpdatePayload) error {
	if payload.Empty() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.persistTimeout)
	defer cancel()

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	args = append(args, itemID)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if payload.Cost != nil {
		add("cost", *payload.Cost)
	}
	if payload.PriceA != nil {
		add("price_a", *payload.PriceA)
	}
	if payload.PriceB != nil {
		add("price_b", *payload.PriceB)
	}
	if payload.PriceM != nil {
		add("price_m", *payload.PriceM)
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $1`, strings.Join(sets, ", "))
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("persist price update: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("persist price update: %w", domain.ErrNotFound)
	}
	return nil
}
