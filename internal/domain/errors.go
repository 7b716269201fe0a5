package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrConflict es un subtipo de error de validación: intento de crear un recurso
// que ya existe (ej. stock duplicado para producto+sucursal).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
