package entity

import "time"

// Company empresa dueña de un catálogo de precios (multi-tenant).
type Company struct {
	ID        string
	Name      string
	NIT       string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
