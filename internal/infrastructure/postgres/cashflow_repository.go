package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)
var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// CashFlowRepo implementación del puerto CashFlowRepository sobre PostgreSQL (usable con pool o tx).
type CashFlowRepo struct {
	q Querier
}

// NewCashFlowRepository construye el adaptador de persistencia para cuadres de caja.
func NewCashFlowRepository(q Querier) *CashFlowRepo {
	return &CashFlowRepo{q: q}
}

// Create persiste un cuadre de caja.
func (r *CashFlowRepo) Create(cashflow *entity.CashFlow) error {
	query := `
		INSERT INTO cashflows (id, opening, sales, closing, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		cashflow.ID, cashflow.Opening, cashflow.Sales, cashflow.Closing, cashflow.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cashflow: %w", err)
	}
	return nil
}

// GetByID obtiene el cuadre con sus gastos. Nil si no existe.
func (r *CashFlowRepo) GetByID(id string) (*entity.CashFlow, error) {
	ctx := context.Background()
	var cf entity.CashFlow
	err := r.q.QueryRow(ctx,
		`SELECT id, opening, sales, closing, created_at FROM cashflows WHERE id = $1`, id,
	).Scan(&cf.ID, &cf.Opening, &cf.Sales, &cf.Closing, &cf.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cashflow: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, name, amount, COALESCE(cashflow_id, ''), created_at FROM expenses WHERE cashflow_id = $1 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list cashflow expenses: %w", err)
	}
	defer rows.Close()
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	cf.Expenses = expenses
	return &cf, nil
}

// List lista cuadres de caja con paginación, más recientes primero (con sus gastos).
func (r *CashFlowRepo) List(limit, offset int) ([]*entity.CashFlow, int, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, opening, sales, closing, created_at FROM cashflows ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list cashflows: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashFlow
	for rows.Next() {
		var cf entity.CashFlow
		if err := rows.Scan(&cf.ID, &cf.Opening, &cf.Sales, &cf.Closing, &cf.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan cashflow: %w", err)
		}
		out = append(out, &cf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, cf := range out {
		expRows, err := r.q.Query(ctx,
			`SELECT id, name, amount, COALESCE(cashflow_id, ''), created_at FROM expenses WHERE cashflow_id = $1 ORDER BY created_at`,
			cf.ID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("list cashflow expenses: %w", err)
		}
		expenses, err := scanExpenses(expRows)
		expRows.Close()
		if err != nil {
			return nil, 0, err
		}
		cf.Expenses = expenses
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM cashflows`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cashflows: %w", err)
	}
	return out, total, nil
}

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto suelto (sin cuadre asociado).
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, name, amount, cashflow_id, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Name, expense.Amount, expense.CashflowID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// AttachToCashflow vincula los gastos indicados a un cuadre de caja.
func (r *ExpenseRepo) AttachToCashflow(expenseIDs []string, cashflowID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET cashflow_id = $2 WHERE id = ANY($1)`,
		expenseIDs, cashflowID,
	)
	if err != nil {
		return fmt.Errorf("attach expenses to cashflow: %w", err)
	}
	return nil
}

// List lista gastos con paginación, más recientes primero.
func (r *ExpenseRepo) List(limit, offset int) ([]*entity.Expense, int, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, name, amount, COALESCE(cashflow_id, ''), created_at FROM expenses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	out, err := scanExpenses(rows)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM expenses`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	return out, total, nil
}

func scanExpenses(rows pgx.Rows) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.CashflowID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
