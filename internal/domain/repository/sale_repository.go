package repository

import (
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create persiste la cabecera y todas sus líneas.
	Create(sale *entity.Sale) error
	// GetByID obtiene la venta con sus líneas. Nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// UpdateStatus cambia el estado del ciclo de vida.
	UpdateStatus(id, status string) error
	// ListByBranch lista ventas de una sucursal, más recientes primero.
	ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error)
	// ListByDateRange lista ventas de una sucursal en un rango de fechas.
	ListByDateRange(branchID string, from, to time.Time) ([]*entity.Sale, error)
	// GetRecentItems devuelve las últimas líneas vendidas en la sucursal.
	GetRecentItems(branchID string, limit int) ([]*entity.SaleItem, error)
}
