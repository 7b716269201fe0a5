package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/application/orders"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer runners.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// Límites por transacción: las filas de stock se toman FOR UPDATE, así que una
// transacción colgada bloquearía a las demás.
const (
	txLockTimeout = "10s"
	txMaxDuration = 15 * time.Second
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// begin abre la transacción y aplica lock_timeout local.
func (r *TxRunner) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", txLockTimeout)); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set lock_timeout: %w", err)
	}
	return tx, nil
}

// RunStock inicia una transacción con los repos del libro de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	ctx, cancel := context.WithTimeout(ctx, txMaxDuration)
	defer cancel()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con los repos que usa el motor de ventas.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	ctx, cancel := context.WithTimeout(ctx, txMaxDuration)
	defer cancel()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewBranchRepository(tx),
		NewCustomerRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con los repos del puente orden-venta.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) error) error {
	ctx, cancel := context.WithTimeout(ctx, txMaxDuration)
	defer cancel()

	tx, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockRepository(tx),
		NewStockMovementRepository(tx),
		NewSaleRepository(tx),
		NewOrderRepository(tx),
		NewProductRepository(tx),
		NewBranchRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
