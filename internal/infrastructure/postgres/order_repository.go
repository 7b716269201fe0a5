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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, branch_id, customer_id, total_amount, status, payment_method, created_at, updated_at`

// Create persiste la cabecera y todas sus líneas.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.BranchID, order.CustomerID,
		order.TotalAmount, order.Status, order.PaymentMethod,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range order.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. Nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.BranchID, &o.CustomerID,
		&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden", domain.ErrNotFound)
	}
	return nil
}

// ListByCustomer lista órdenes de un cliente, opcionalmente filtradas por estado.
func (r *OrderRepo) ListByCustomer(customerID, status string) ([]*entity.Order, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE customer_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, customerID, status)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.BranchID, &o.CustomerID,
			&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := r.itemsByOrder(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

func (r *OrderRepo) itemsByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price, total_price
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
