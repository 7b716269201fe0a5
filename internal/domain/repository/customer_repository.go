package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, int, error)
}
