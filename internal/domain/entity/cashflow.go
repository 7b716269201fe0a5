package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlow representa el cuadre de caja de un turno: apertura, ventas y cierre,
// con los gastos asociados.
type CashFlow struct {
	ID        string
	Opening   decimal.Decimal
	Sales     decimal.Decimal
	Closing   decimal.Decimal
	CreatedAt time.Time
	Expenses  []*Expense
}

// Expense representa un gasto; puede quedar vinculado a un cuadre de caja.
type Expense struct {
	ID         string
	Name       string
	Amount     decimal.Decimal
	CashflowID string // vacío hasta que se vincula a un CashFlow
	CreatedAt  time.Time
}
