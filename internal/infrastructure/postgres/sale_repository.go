package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, branch_id, customer_id, original_sale_id, subtotal, tax_amount, discount_amount, total_amount, payment_method, payment_status, status, sale_date, created_by, created_at`

const saleItemColumns = `id, sale_id, product_id, quantity, unit_price, line_total, item_type, ref_sale_item_id`

// Create persiste la cabecera y todas sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.SaleNumber, sale.BranchID, sale.CustomerID, sale.OriginalSaleID,
		sale.Subtotal, sale.TaxAmount, sale.DiscountAmount, sale.TotalAmount,
		sale.PaymentMethod, sale.PaymentStatus, sale.Status, sale.SaleDate,
		sale.CreatedBy, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	itemQuery := `
		INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.Quantity,
			item.UnitPrice, item.LineTotal, item.ItemType, item.RefSaleItemID,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas. Nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `SELECT id, sale_number, branch_id, COALESCE(customer_id, ''), COALESCE(original_sale_id, ''),
		subtotal, tax_amount, discount_amount, total_amount, payment_method, payment_status, status,
		sale_date, created_by, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SaleNumber, &s.BranchID, &s.CustomerID, &s.OriginalSaleID,
		&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount,
		&s.PaymentMethod, &s.PaymentStatus, &s.Status, &s.SaleDate,
		&s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsBySale(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// UpdateStatus cambia el estado del ciclo de vida.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: venta", domain.ErrNotFound)
	}
	return nil
}

// ListByBranch lista ventas de una sucursal, más recientes primero.
func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT id, sale_number, branch_id, COALESCE(customer_id, ''), COALESCE(original_sale_id, ''),
		subtotal, tax_amount, discount_amount, total_amount, payment_method, payment_status, status,
		sale_date, created_by, created_at
		FROM sales WHERE branch_id = $1 ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	return r.list(query, branchID, limit, offset)
}

// ListByDateRange lista ventas de una sucursal en un rango de fechas.
func (r *SaleRepo) ListByDateRange(branchID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `SELECT id, sale_number, branch_id, COALESCE(customer_id, ''), COALESCE(original_sale_id, ''),
		subtotal, tax_amount, discount_amount, total_amount, payment_method, payment_status, status,
		sale_date, created_by, created_at
		FROM sales WHERE branch_id = $1 AND sale_date BETWEEN $2 AND $3 ORDER BY sale_date DESC`
	return r.list(query, branchID, from, to)
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.SaleNumber, &s.BranchID, &s.CustomerID, &s.OriginalSaleID,
			&s.Subtotal, &s.TaxAmount, &s.DiscountAmount, &s.TotalAmount,
			&s.PaymentMethod, &s.PaymentStatus, &s.Status, &s.SaleDate,
			&s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		items, err := r.itemsBySale(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return out, nil
}

// GetRecentItems devuelve las últimas líneas vendidas (tipo SALE) en la sucursal.
func (r *SaleRepo) GetRecentItems(branchID string, limit int) ([]*entity.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.line_total, si.item_type, COALESCE(si.ref_sale_item_id, '')
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.branch_id = $1 AND si.item_type = 'SALE'
		ORDER BY s.sale_date DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sale items: %w", err)
	}
	defer rows.Close()
	return scanSaleItems(rows)
}

func (r *SaleRepo) itemsBySale(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `SELECT id, sale_id, product_id, quantity, unit_price, line_total, item_type, COALESCE(ref_sale_item_id, '')
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	return scanSaleItems(rows)
}

func scanSaleItems(rows pgx.Rows) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.LineTotal, &it.ItemType, &it.RefSaleItemID,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
