package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, code, name, description, COALESCE(category_id, ''), purchase_rate, sales_rate_exc_dis_and_tax, sales_rate_inc_dis_and_tax, discount_amount, min_qty, max_qty, is_active, display_on_pos, is_featured, non_inventory_item, COALESCE(image_url, ''), COALESCE(thumbnail_url, ''), created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, code, name, description, category_id, purchase_rate, sales_rate_exc_dis_and_tax, sales_rate_inc_dis_and_tax, discount_amount, min_qty, max_qty, is_active, display_on_pos, is_featured, non_inventory_item, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Code, product.Name, product.Description, product.CategoryID,
		product.PurchaseRate, product.SalesRateExcDisAndTax, product.SalesRateIncDisAndTax,
		product.DiscountAmount, product.MinQty, product.MaxQty,
		product.IsActive, product.DisplayOnPOS, product.IsFeatured, product.NonInventoryItem,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(query, sku)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.SKU, &p.Code, &p.Name, &p.Description, &p.CategoryID,
		&p.PurchaseRate, &p.SalesRateExcDisAndTax, &p.SalesRateIncDisAndTax,
		&p.DiscountAmount, &p.MinQty, &p.MaxQty,
		&p.IsActive, &p.DisplayOnPOS, &p.IsFeatured, &p.NonInventoryItem,
		&p.ImageURL, &p.ThumbnailURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetLastCode devuelve el último código generado ("" si no hay productos).
// Los códigos son numéricos, el orden se hace por longitud y valor.
func (r *ProductRepo) GetLastCode() (string, error) {
	var code string
	err := r.q.QueryRow(context.Background(),
		`SELECT code FROM products ORDER BY length(code) DESC, code DESC LIMIT 1`,
	).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get last product code: %w", err)
	}
	return code, nil
}

// ListByIDs obtiene varios productos; onlyActive filtra inactivos.
func (r *ProductRepo) ListByIDs(ids []string, onlyActive bool) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) AND ($2 = false OR is_active)`
	rows, err := r.q.Query(context.Background(), query, ids, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Update actualiza un producto existente. SKU y código no se modifican.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = NULLIF($4, ''),
			purchase_rate = $5, sales_rate_exc_dis_and_tax = $6, sales_rate_inc_dis_and_tax = $7,
			discount_amount = $8, is_active = $9, display_on_pos = $10, is_featured = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.PurchaseRate, product.SalesRateExcDisAndTax, product.SalesRateIncDisAndTax,
		product.DiscountAmount, product.IsActive, product.DisplayOnPOS, product.IsFeatured,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateImages actualiza las URLs de imagen tras una subida.
func (r *ProductRepo) UpdateImages(id, imageURL, thumbnailURL string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET image_url = $2, thumbnail_url = $3, updated_at = now() WHERE id = $1`,
		id, imageURL, thumbnailURL,
	)
	if err != nil {
		return fmt.Errorf("update product images: %w", err)
	}
	return nil
}

// List lista productos con paginación, búsqueda por nombre/SKU y filtro de activos.
func (r *ProductRepo) List(limit, offset int, search string, onlyActive bool) ([]*entity.Product, int, error) {
	ctx := context.Background()
	where := `($3 = '' OR name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%') AND ($4 = false OR is_active)`
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset, search, onlyActive)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	var total int
	err = r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%') AND ($2 = false OR is_active)`,
		search, onlyActive,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	return list, total, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Code, &p.Name, &p.Description, &p.CategoryID,
			&p.PurchaseRate, &p.SalesRateExcDisAndTax, &p.SalesRateIncDisAndTax,
			&p.DiscountAmount, &p.MinQty, &p.MaxQty,
			&p.IsActive, &p.DisplayOnPOS, &p.IsFeatured, &p.NonInventoryItem,
			&p.ImageURL, &p.ThumbnailURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
