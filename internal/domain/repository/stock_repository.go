package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para stock por producto+sucursal.
// Usado dentro de transacciones para garantizar consistencia (lecturas FOR UPDATE).
type StockRepository interface {
	// Get obtiene el stock de un par (producto, sucursal). Nil si no existe.
	Get(productID, branchID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) antes de devolverla. Nil si no existe.
	GetForUpdate(productID, branchID string) (*entity.Stock, error)
	// Create inserta la fila inicial. ErrConflict si el par ya existe.
	Create(stock *entity.Stock) error
	// UpdateQuantity reemplaza la cantidad actual y actualiza LastUpdated.
	UpdateQuantity(productID, branchID string, quantity int64) error
	// ListByProducts obtiene el stock de varios productos en una sucursal (una consulta).
	ListByProducts(productIDs []string, branchID string) ([]*entity.Stock, error)
	// ListAvailableByProducts obtiene el stock de varios productos en TODAS las
	// sucursales con cantidad >= minQty (selección de sucursal para órdenes).
	ListAvailableByProducts(productIDs []string, minQty int64) ([]*entity.Stock, error)
	// ListByBranch lista el stock de una sucursal ordenado por última actualización.
	ListByBranch(branchID string) ([]*entity.Stock, error)
}
