package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashFlowRequest body para POST /api/cashflows.
type CreateCashFlowRequest struct {
	Opening    decimal.Decimal `json:"opening"`
	Sales      decimal.Decimal `json:"sales"`
	Closing    decimal.Decimal `json:"closing"`
	ExpenseIDs []string        `json:"expense_ids,omitempty"`
}

// CreateExpenseRequest body para POST /api/expenses.
type CreateExpenseRequest struct {
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseResponse gasto.
type ExpenseResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	CashflowID string          `json:"cashflow_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CashFlowResponse cuadre de caja con sus gastos.
type CashFlowResponse struct {
	ID        string             `json:"id"`
	Opening   decimal.Decimal    `json:"opening"`
	Sales     decimal.Decimal    `json:"sales"`
	Closing   decimal.Decimal    `json:"closing"`
	CreatedAt time.Time          `json:"created_at"`
	Expenses  []*ExpenseResponse `json:"expenses"`
}

// CashFlowListResponse lista paginada de cuadres.
type CashFlowListResponse struct {
	Data []*CashFlowResponse `json:"data"`
	Meta ListMeta            `json:"meta"`
}
