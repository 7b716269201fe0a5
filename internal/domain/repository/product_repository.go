package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetLastCode devuelve el último código generado ("" si no hay productos).
	GetLastCode() (string, error)
	// ListByIDs obtiene varios productos; onlyActive filtra inactivos.
	ListByIDs(ids []string, onlyActive bool) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateImages actualiza las URLs de imagen tras una subida.
	UpdateImages(id, imageURL, thumbnailURL string) error
	List(limit, offset int, search string, onlyActive bool) ([]*entity.Product, int, error)
}
