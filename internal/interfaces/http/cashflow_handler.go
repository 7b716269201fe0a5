package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// CashFlowHandler maneja cierres de caja y gastos (protegido).
type CashFlowHandler struct {
	uc *usecase.CashFlowUseCase
}

// NewCashFlowHandler construye el handler.
func NewCashFlowHandler(uc *usecase.CashFlowUseCase) *CashFlowHandler {
	return &CashFlowHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cierre de caja
// @Tags         cashflows
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashFlowRequest  true  "Datos del cierre"
// @Success      201   {object}  dto.CashFlowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashflows [post]
func (h *CashFlowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashFlowRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cierres de caja
// @Tags         cashflows
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200  {object}  dto.CashFlowListResponse
// @Router       /api/cashflows [get]
func (h *CashFlowHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	out, err := h.uc.List(page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *CashFlowHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateExpense(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(20)
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *CashFlowHandler) ListExpenses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	out, meta, err := h.uc.ListExpenses(page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": out, "meta": meta})
}
