package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para empleados.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
