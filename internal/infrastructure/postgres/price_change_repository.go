package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/precios-api/internal/domain/entity"
	"github.com/jhoicas/precios-api/internal/domain/repository"
)

var _ repository.PriceChangeRepository = (*PriceChangeRepo)(nil)

// PriceChangeRepo persistencia del historial de ajustes de precios (append-only).
type PriceChangeRepo struct {
	q Querier
}

// NewPriceChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceChangeRepository(q Querier) *PriceChangeRepo {
	return &PriceChangeRepo{q: q}
}

// Create inserta un registro del historial.
func (r *PriceChangeRepo) Create(record *entity.PriceChangeRecord) error {
	query := `
		INSERT INTO price_changes (id, company_id, items_updated, value_delta, reason, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.CompanyID, record.ItemsUpdated, record.ValueDelta,
		record.Reason, record.Actor, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price change: %w", err)
	}
	return nil
}

// ListByCompany lista el historial de una empresa, más reciente primero.
func (r *PriceChangeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PriceChangeRecord, error) {
	query := `
		SELECT id, company_id, items_updated, value_delta, reason, COALESCE(actor, ''), created_at
		FROM price_changes WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceChangeRecord
	for rows.Next() {
		var rec entity.PriceChangeRecord
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.ItemsUpdated, &rec.ValueDelta,
			&rec.Reason, &rec.Actor, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price change: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
