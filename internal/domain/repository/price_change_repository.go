package repository

import "github.com/jhoicas/precios-api/internal/domain/entity"

// PriceChangeRepository define el puerto de persistencia para el historial
// de ajustes de precios (append-only).
type PriceChangeRepository interface {
	Create(record *entity.PriceChangeRecord) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.PriceChangeRecord, error)
}
