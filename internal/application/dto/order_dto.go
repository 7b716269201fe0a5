package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de orden; el precio siempre es el de catálogo.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest body para POST /api/orders. El cliente sale del token.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method,omitempty" validate:"omitempty,oneof=CASH CARD MOBILE_MONEY BANK_TRANSFER CREDIT"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:orderId/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
}

// OrderItemResponse línea de orden persistida.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse orden con sus líneas.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	BranchID      string              `json:"branch_id"`
	CustomerID    string              `json:"customer_id"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemResponse `json:"items"`
}

// CreateOrderResponse la orden creada junto con la venta espejo.
type CreateOrderResponse struct {
	Order *OrderResponse `json:"order"`
	Sale  *SaleResponse  `json:"sale"`
}
