package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes de cliente.
type OrderRepository interface {
	// Create persiste la cabecera y todas sus líneas.
	Create(order *entity.Order) error
	// GetByID obtiene la orden con sus líneas. Nil si no existe.
	GetByID(id string) (*entity.Order, error)
	// UpdateStatus cambia el estado de la orden.
	UpdateStatus(id, status string) error
	// ListByCustomer lista órdenes de un cliente, opcionalmente filtradas por estado.
	ListByCustomer(customerID, status string) ([]*entity.Order, error)
}
