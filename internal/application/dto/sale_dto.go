package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta con precio indicado por el cajero.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest body para POST /api/sales. La sucursal sale del usuario
// autenticado, no del body.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH CARD MOBILE_MONEY BANK_TRANSFER CREDIT"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReturnItemRequest línea devuelta contra la venta original.
type ReturnItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// ExchangeItemRequest línea entregada a cambio.
type ExchangeItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// RefundExchangeRequest body para POST /api/sales/:saleId/refund.
// Listas vacías son válidas individualmente, pero no ambas a la vez.
type RefundExchangeRequest struct {
	CustomerID     string                `json:"customer_id,omitempty"`
	ReturnedItems  []ReturnItemRequest   `json:"returned_items" validate:"dive"`
	ExchangedItems []ExchangeItemRequest `json:"exchanged_items" validate:"dive"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	ItemType      string          `json:"item_type"`
	RefSaleItemID string          `json:"ref_sale_item_id,omitempty"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	BranchID       string             `json:"branch_id"`
	CustomerID     string             `json:"customer_id,omitempty"`
	OriginalSaleID string             `json:"original_sale_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	Status         string             `json:"status"`
	SaleDate       time.Time          `json:"sale_date"`
	Items          []SaleItemResponse `json:"items"`
}

// RecentSaleItemResponse nombre y precio de las últimas líneas vendidas (cacheable).
type RecentSaleItemResponse struct {
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
}
