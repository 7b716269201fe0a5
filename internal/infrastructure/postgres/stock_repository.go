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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, branch_id, current_quantity, last_updated`

// Get obtiene el stock de un par producto+sucursal. Nil si no existe.
func (r *StockRepo) Get(productID, branchID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND branch_id = $2`
	return r.scanOne(query, productID, branchID)
}

// GetForUpdate bloquea la fila con SELECT FOR UPDATE antes de devolverla. Nil si no existe.
// Solo tiene sentido dentro de una transacción.
func (r *StockRepo) GetForUpdate(productID, branchID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND branch_id = $2 FOR UPDATE`
	return r.scanOne(query, productID, branchID)
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ProductID, &s.BranchID, &s.CurrentQuantity, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Create inserta la fila inicial de stock. ErrConflict si el par ya existe.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, branch_id, current_quantity, last_updated)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.BranchID, stock.CurrentQuantity, stock.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// UpdateQuantity reemplaza la cantidad actual y actualiza last_updated.
func (r *StockRepo) UpdateQuantity(productID, branchID string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock SET current_quantity = $3, last_updated = now() WHERE product_id = $1 AND branch_id = $2`,
		productID, branchID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock", domain.ErrNotFound)
	}
	return nil
}

// ListByProducts obtiene el stock de varios productos en una sucursal (una consulta).
func (r *StockRepo) ListByProducts(productIDs []string, branchID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = ANY($1) AND branch_id = $2`
	rows, err := r.q.Query(context.Background(), query, productIDs, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock by products: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListAvailableByProducts obtiene el stock de varios productos en TODAS las
// sucursales con cantidad >= minQty (selección de sucursal para órdenes).
func (r *StockRepo) ListAvailableByProducts(productIDs []string, minQty int64) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = ANY($1) AND current_quantity >= $2`
	rows, err := r.q.Query(context.Background(), query, productIDs, minQty)
	if err != nil {
		return nil, fmt.Errorf("list available stock: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListByBranch lista el stock de una sucursal ordenado por última actualización.
func (r *StockRepo) ListByBranch(branchID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE branch_id = $1 ORDER BY last_updated DESC`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock by branch: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.BranchID, &s.CurrentQuantity, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
