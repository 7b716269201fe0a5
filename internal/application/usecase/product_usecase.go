package usecase

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// productCodeSeed primer código cuando el catálogo está vacío.
const productCodeSeed = 1000

// ProductUseCase casos de uso CRUD para el catálogo. El stock por sucursal se
// maneja vía el libro de stock, nunca desde aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo. El SKU debe ser único y el código consecutivo
// se genera a partir del último existente.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, in.SKU)
	}
	code, err := uc.nextCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:                    uuid.New().String(),
		SKU:                   in.SKU,
		Code:                  code,
		Name:                  in.Name,
		Description:           in.Description,
		CategoryID:            in.CategoryID,
		PurchaseRate:          in.PurchaseRate,
		SalesRateExcDisAndTax: in.SalesRateExcDisAndTax,
		SalesRateIncDisAndTax: in.SalesRateIncDisAndTax,
		DiscountAmount:        in.DiscountAmount,
		MinQty:                in.MinQty,
		MaxQty:                in.MaxQty,
		IsActive:              boolOrDefault(in.IsActive, true),
		DisplayOnPOS:          boolOrDefault(in.DisplayOnPOS, true),
		IsFeatured:            boolOrDefault(in.IsFeatured, false),
		NonInventoryItem:      boolOrDefault(in.NonInventoryItem, false),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. SKU y código no son modificables.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.PurchaseRate != nil {
		product.PurchaseRate = *in.PurchaseRate
	}
	if in.SalesRateExcDisAndTax != nil {
		product.SalesRateExcDisAndTax = *in.SalesRateExcDisAndTax
	}
	if in.SalesRateIncDisAndTax != nil {
		product.SalesRateIncDisAndTax = *in.SalesRateIncDisAndTax
	}
	if in.DiscountAmount != nil {
		product.DiscountAmount = *in.DiscountAmount
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.DisplayOnPOS != nil {
		product.DisplayOnPOS = *in.DisplayOnPOS
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetImages guarda las URLs de imagen y miniatura tras una subida.
func (uc *ProductUseCase) SetImages(id, imageURL, thumbnailURL string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	return uc.repo.UpdateImages(id, imageURL, thumbnailURL)
}

// List lista productos con paginación y búsqueda opcional.
func (uc *ProductUseCase) List(page, limit int, search string, onlyActive bool) (*dto.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	list, total, err := uc.repo.List(limit, (page-1)*limit, search, onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Data: items,
		Meta: newListMeta(total, page, limit),
	}, nil
}

// nextCode genera el código consecutivo: último código + 1, semilla cuando no
// hay productos. Códigos no numéricos heredados reinician la semilla.
func (uc *ProductUseCase) nextCode() (string, error) {
	last, err := uc.repo.GetLastCode()
	if err != nil {
		return "", err
	}
	if last == "" {
		return strconv.Itoa(productCodeSeed), nil
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return strconv.Itoa(productCodeSeed), nil
	}
	return strconv.Itoa(n + 1), nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func newListMeta(total, page, limit int) dto.ListMeta {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return dto.ListMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                    p.ID,
		SKU:                   p.SKU,
		Code:                  p.Code,
		Name:                  p.Name,
		Description:           p.Description,
		CategoryID:            p.CategoryID,
		PurchaseRate:          p.PurchaseRate,
		SalesRateExcDisAndTax: p.SalesRateExcDisAndTax,
		SalesRateIncDisAndTax: p.SalesRateIncDisAndTax,
		DiscountAmount:        p.DiscountAmount,
		IsActive:              p.IsActive,
		DisplayOnPOS:          p.DisplayOnPOS,
		IsFeatured:            p.IsFeatured,
		NonInventoryItem:      p.NonInventoryItem,
		ImageURL:              p.ImageURL,
		ThumbnailURL:          p.ThumbnailURL,
		CreatedAt:             p.CreatedAt,
	}
}
