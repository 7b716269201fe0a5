package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CashFlowUseCase casos de uso del cuadre de caja: crear cierres de turno y
// registrar gastos, con la posibilidad de vincular gastos sueltos al cierre.
type CashFlowUseCase struct {
	cashflowRepo repository.CashFlowRepository
	expenseRepo  repository.ExpenseRepository
}

// NewCashFlowUseCase construye el caso de uso.
func NewCashFlowUseCase(cashflowRepo repository.CashFlowRepository, expenseRepo repository.ExpenseRepository) *CashFlowUseCase {
	return &CashFlowUseCase{cashflowRepo: cashflowRepo, expenseRepo: expenseRepo}
}

// Create crea un cuadre de caja y vincula los gastos indicados.
func (uc *CashFlowUseCase) Create(in dto.CreateCashFlowRequest) (*dto.CashFlowResponse, error) {
	cashflow := &entity.CashFlow{
		ID:        uuid.New().String(),
		Opening:   in.Opening,
		Sales:     in.Sales,
		Closing:   in.Closing,
		CreatedAt: time.Now(),
	}
	if err := uc.cashflowRepo.Create(cashflow); err != nil {
		return nil, err
	}
	if len(in.ExpenseIDs) > 0 {
		if err := uc.expenseRepo.AttachToCashflow(in.ExpenseIDs, cashflow.ID); err != nil {
			return nil, err
		}
	}
	created, err := uc.cashflowRepo.GetByID(cashflow.ID)
	if err != nil {
		return nil, err
	}
	return toCashFlowResponse(created), nil
}

// List lista cuadres de caja con paginación, más recientes primero.
func (uc *CashFlowUseCase) List(page, limit int) (*dto.CashFlowListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	list, total, err := uc.cashflowRepo.List(limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CashFlowResponse, 0, len(list))
	for _, cf := range list {
		items = append(items, toCashFlowResponse(cf))
	}
	return &dto.CashFlowListResponse{
		Data: items,
		Meta: newListMeta(total, page, limit),
	}, nil
}

// CreateExpense registra un gasto suelto (sin cuadre asociado todavía).
func (uc *CashFlowUseCase) CreateExpense(in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense := &entity.Expense{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Amount:    in.Amount,
		CreatedAt: time.Now(),
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lista gastos con paginación.
func (uc *CashFlowUseCase) ListExpenses(page, limit int) ([]*dto.ExpenseResponse, dto.ListMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	list, total, err := uc.expenseRepo.List(limit, (page-1)*limit)
	if err != nil {
		return nil, dto.ListMeta{}, err
	}
	items := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toExpenseResponse(e))
	}
	return items, newListMeta(total, page, limit), nil
}

func toCashFlowResponse(cf *entity.CashFlow) *dto.CashFlowResponse {
	if cf == nil {
		return nil
	}
	resp := &dto.CashFlowResponse{
		ID:        cf.ID,
		Opening:   cf.Opening,
		Sales:     cf.Sales,
		Closing:   cf.Closing,
		CreatedAt: cf.CreatedAt,
		Expenses:  make([]*dto.ExpenseResponse, 0, len(cf.Expenses)),
	}
	for _, e := range cf.Expenses {
		resp.Expenses = append(resp.Expenses, toExpenseResponse(e))
	}
	return resp
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:         e.ID,
		Name:       e.Name,
		Amount:     e.Amount,
		CashflowID: e.CashflowID,
		CreatedAt:  e.CreatedAt,
	}
}
