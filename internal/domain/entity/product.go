package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-sucursal).
// El stock por sucursal se maneja en Stock; aquí solo identidad, precios y flags.
type Product struct {
	ID                    string
	SKU                   string // único
	Code                  string // consecutivo generado (último + 1)
	Name                  string
	Description           string
	CategoryID            string
	PurchaseRate          decimal.Decimal
	SalesRateExcDisAndTax decimal.Decimal
	SalesRateIncDisAndTax decimal.Decimal // precio de catálogo usado por órdenes
	DiscountAmount        decimal.Decimal
	MinQty                int64
	MaxQty                int64
	IsActive              bool
	DisplayOnPOS          bool
	IsFeatured            bool
	NonInventoryItem      bool
	ImageURL              string
	ThumbnailURL          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
