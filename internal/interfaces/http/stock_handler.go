package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
)

// StockHandler maneja el libro de stock por sucursal (protegido).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear stock inicial para producto+sucursal
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "product_id, branch_id, quantity"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateStock(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock (conteo físico, daño, corrección)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, branch_id, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.AdjustStock(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBranch godoc
// @Summary      Listar stock de una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branchId  path  string  true  "ID de la sucursal"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/branch/{branchId} [get]
func (h *StockHandler) ListByBranch(c *fiber.Ctx) error {
	branchID := c.Params("branchId")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "branchId es requerido"})
	}
	out, err := h.uc.GetStockByBranch(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        branchId  path   string  true   "ID de la sucursal"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/branch/{branchId}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	branchID := c.Params("branchId")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "branchId es requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.GetMovements(c.Context(), branchID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
