package repository

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// CashFlowRepository define el puerto de persistencia para cuadres de caja.
type CashFlowRepository interface {
	Create(cashflow *entity.CashFlow) error
	// GetByID obtiene el cuadre con sus gastos. Nil si no existe.
	GetByID(id string) (*entity.CashFlow, error)
	List(limit, offset int) ([]*entity.CashFlow, int, error)
}

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	// AttachToCashflow vincula los gastos indicados a un cuadre de caja.
	AttachToCashflow(expenseIDs []string, cashflowID string) error
	List(limit, offset int) ([]*entity.Expense, int, error)
}
