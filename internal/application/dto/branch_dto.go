package dto

import "time"

// CreateBranchRequest body para POST /api/branches. El código se genera.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateBranchRequest body para PUT /api/branches/:id.
type UpdateBranchRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

// BranchResponse sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Data []*BranchResponse `json:"data"`
	Meta ListMeta          `json:"meta"`
}
