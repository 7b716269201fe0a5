package dto

// RegisterRequest body para POST /api/auth/register (alta de empleado).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin manager cashier"`
	BranchID string `json:"branch_id" validate:"required"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse token y datos básicos del empleado autenticado.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
}

// CategoryRequest alta/edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UploadResponse URLs resultantes de subir una imagen.
type UploadResponse struct {
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}
