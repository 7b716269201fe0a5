package entity

import "time"

// Customer representa un cliente registrado (órdenes y ventas a crédito).
type Customer struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	PasswordHash string // vacío para clientes creados por el administrador
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
