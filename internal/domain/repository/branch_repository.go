package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	// GetLast devuelve la sucursal creada más recientemente (para generar el código).
	GetLast() (*entity.Branch, error)
	ListByIDs(ids []string) ([]*entity.Branch, error)
	Update(branch *entity.Branch) error
	List(limit, offset int, search string, onlyActive bool) ([]*entity.Branch, int, error)
}
