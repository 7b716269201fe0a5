package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de cliente.
const (
	OrderStatusPENDING    = "PENDING"
	OrderStatusPROCESSING = "PROCESSING"
	OrderStatusCOMPLETED  = "COMPLETED"
	OrderStatusCANCELLED  = "CANCELLED"
)

// Order es el análogo de cara al cliente de una venta. Toda orden se crea en una
// única sucursal que cubre todos sus ítems y queda espejada en una Sale.
type Order struct {
	ID            string
	OrderNumber   string // "ORD-" + epoch millis
	BranchID      string
	CustomerID    string
	TotalAmount   decimal.Decimal
	Status        string
	PaymentMethod string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*OrderItem
}

// OrderItem representa una línea de orden con precio de catálogo.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int64
	Price      decimal.Decimal
	TotalPrice decimal.Decimal
}
