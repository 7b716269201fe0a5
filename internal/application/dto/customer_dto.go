package dto

import "time"

// RegisterCustomerRequest body para POST /api/customers/register (autoservicio).
type RegisterCustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginCustomerRequest body para POST /api/customers/login.
type LoginCustomerRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateCustomerRequest alta de cliente por el administrador (sin contraseña).
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// CustomerResponse cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Data []*CustomerResponse `json:"data"`
	Meta ListMeta            `json:"meta"`
}

// CustomerAuthResponse cliente autenticado con su token.
type CustomerAuthResponse struct {
	Customer *CustomerResponse `json:"customer"`
	Token    string            `json:"token"`
}
