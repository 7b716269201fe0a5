package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU                   string          `json:"sku" validate:"required"`
	Name                  string          `json:"name" validate:"required"`
	Description           string          `json:"description,omitempty"`
	CategoryID            string          `json:"category_id,omitempty"`
	PurchaseRate          decimal.Decimal `json:"purchase_rate"`
	SalesRateExcDisAndTax decimal.Decimal `json:"sales_rate_exc_dis_and_tax"`
	SalesRateIncDisAndTax decimal.Decimal `json:"sales_rate_inc_dis_and_tax"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	MinQty                int64           `json:"min_qty,omitempty"`
	MaxQty                int64           `json:"max_qty,omitempty"`
	IsActive              *bool           `json:"is_active,omitempty"`
	DisplayOnPOS          *bool           `json:"display_on_pos,omitempty"`
	IsFeatured            *bool           `json:"is_featured,omitempty"`
	NonInventoryItem      *bool           `json:"non_inventory_item,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name                  *string          `json:"name,omitempty"`
	Description           *string          `json:"description,omitempty"`
	CategoryID            *string          `json:"category_id,omitempty"`
	PurchaseRate          *decimal.Decimal `json:"purchase_rate,omitempty"`
	SalesRateExcDisAndTax *decimal.Decimal `json:"sales_rate_exc_dis_and_tax,omitempty"`
	SalesRateIncDisAndTax *decimal.Decimal `json:"sales_rate_inc_dis_and_tax,omitempty"`
	DiscountAmount        *decimal.Decimal `json:"discount_amount,omitempty"`
	IsActive              *bool            `json:"is_active,omitempty"`
	DisplayOnPOS          *bool            `json:"display_on_pos,omitempty"`
	IsFeatured            *bool            `json:"is_featured,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Data []*ProductResponse `json:"data"`
	Meta ListMeta           `json:"meta"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID                    string          `json:"id"`
	SKU                   string          `json:"sku"`
	Code                  string          `json:"code"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	CategoryID            string          `json:"category_id,omitempty"`
	PurchaseRate          decimal.Decimal `json:"purchase_rate"`
	SalesRateExcDisAndTax decimal.Decimal `json:"sales_rate_exc_dis_and_tax"`
	SalesRateIncDisAndTax decimal.Decimal `json:"sales_rate_inc_dis_and_tax"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	IsActive              bool            `json:"is_active"`
	DisplayOnPOS          bool            `json:"display_on_pos"`
	IsFeatured            bool            `json:"is_featured"`
	NonInventoryItem      bool            `json:"non_inventory_item"`
	ImageURL              string          `json:"image_url,omitempty"`
	ThumbnailURL          string          `json:"thumbnail_url,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}
