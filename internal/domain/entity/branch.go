package entity

import "time"

// Branch representa una sucursal donde se vende y almacena inventario.
// Code es un consecutivo legible generado desde la última sucursal (+1, semilla "1000").
type Branch struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
