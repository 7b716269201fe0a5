package entity

import "time"

// Roles de empleados.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User representa un empleado del sistema (login del panel de administración).
// BranchID es la sucursal asignada; las ventas se registran contra ella.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	BranchID     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
