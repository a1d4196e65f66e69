package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// Errores de validación del motor de precios. Envuelven ErrInvalidInput para
// que los callers puedan clasificarlos con errors.Is(err, ErrInvalidInput).
var (
	ErrPrecioNegativo  = fmt.Errorf("%w: precio negativo no permitido", ErrInvalidInput)
	ErrValorCero       = fmt.Errorf("%w: el valor de ajuste debe ser distinto de cero", ErrInvalidInput)
	ErrSinSeleccion    = fmt.Errorf("%w: no hay ítems seleccionados", ErrInvalidInput)
	ErrMotivoRequerido = fmt.Errorf("%w: el motivo del ajuste es requerido", ErrInvalidInput)
	ErrSinCambios      = fmt.Errorf("%w: no hay cambios pendientes", ErrInvalidInput)
	ErrCampoInvalido   = fmt.Errorf("%w: campo de precio inválido", ErrInvalidInput)
)
