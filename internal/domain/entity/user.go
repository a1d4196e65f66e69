package entity

import "time"

// Roles de usuario. El middleware RBAC decide con el claim del JWT sin ir a la DB.
const (
	RoleAdmin    = "admin"
	RoleAnalista = "analista"
)

// User usuario de la consola de administración de precios.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "analista"
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
