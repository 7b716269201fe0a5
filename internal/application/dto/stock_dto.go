package dto

import "time"

// CreateStockRequest body para POST /api/stock.
// La cantidad inicial debe ser positiva; el par producto+sucursal no debe existir.
type CreateStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	BranchID  string `json:"branch_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// AdjustStockRequest body para POST /api/stock/adjust. Delta no puede ser cero
// (required rechaza el valor cero del tipo).
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	BranchID  string `json:"branch_id" validate:"required"`
	Delta     int64  `json:"delta" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// AdjustStockResponse resultado de un ajuste.
type AdjustStockResponse struct {
	NewQty int64 `json:"new_qty"`
}

// StockResponse representa una fila de stock.
type StockResponse struct {
	ProductID       string    `json:"product_id"`
	BranchID        string    `json:"branch_id"`
	CurrentQuantity int64     `json:"current_quantity"`
	LastUpdated     time.Time `json:"last_updated"`
}

// StockMovementResponse representa un movimiento del historial.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	BranchID       string    `json:"branch_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int64     `json:"quantity_change"`
	PreviousQty    int64     `json:"previous_qty"`
	NewQty         int64     `json:"new_qty"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
