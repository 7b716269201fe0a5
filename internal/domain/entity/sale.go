package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una venta.
const (
	SaleStatusPENDING   = "PENDING"
	SaleStatusCOMPLETED = "COMPLETED"
	SaleStatusREFUNDED  = "REFUNDED"
	SaleStatusEXCHANGED = "EXCHANGED"
	SaleStatusCANCELLED = "CANCELLED"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCASH         = "CASH"
	PaymentMethodCARD         = "CARD"
	PaymentMethodMOBILEMONEY  = "MOBILE_MONEY"
	PaymentMethodBANKTRANSFER = "BANK_TRANSFER"
	PaymentMethodCREDIT       = "CREDIT"
)

// Estados de pago.
const (
	PaymentStatusPAID    = "PAID"
	PaymentStatusPENDING = "PENDING"
)

// Tipos de línea de venta.
const (
	SaleItemTypeSALE     = "SALE"
	SaleItemTypeRETURN   = "RETURN"
	SaleItemTypeEXCHANGE = "EXCHANGE"
)

// Sale representa una venta (cabecera + líneas). OriginalSaleID enlaza ventas de
// devolución/cambio con la venta original (auto-referencia).
type Sale struct {
	ID             string
	SaleNumber     string // "SALE-" + epoch millis
	BranchID       string
	CustomerID     string // opcional
	OriginalSaleID string // opcional; solo en devoluciones/cambios
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	PaymentStatus  string
	Status         string
	SaleDate       time.Time
	CreatedBy      string
	CreatedAt      time.Time
	Items          []*SaleItem
}

// SaleItem representa una línea de venta. Quantity es con signo: negativa para
// líneas devueltas. RefSaleItemID apunta a la línea original que se devuelve.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	Quantity      int64
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	ItemType      string // SALE, RETURN, EXCHANGE
	RefSaleItemID string
}
