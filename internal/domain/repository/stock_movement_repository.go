package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// StockMovementRepository define el puerto para el historial de movimientos.
// Los movimientos son write-once: solo Create y lecturas.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByBranch lista movimientos de una sucursal, más recientes primero.
	ListByBranch(branchID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByProduct lista movimientos de un producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
