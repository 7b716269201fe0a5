package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
)

// SaleHandler maneja ventas, reembolsos y cambios (protegido, personal).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta POS
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items y payment_method"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido en el token"})
	}
	var in dto.CreateSaleRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateSale(c.Context(), branchID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Refund godoc
// @Summary      Reembolsar, devolver o cambiar una venta
// @Description  Sin body (o con ambas listas vacías) reembolsa la venta completa. Con returned_items y/o exchanged_items genera una venta de devolución/cambio ligada a la original.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta original"
// @Param        body    body  dto.RefundExchangeRequest  false  "líneas devueltas y entregadas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId}/refund [post]
func (h *SaleHandler) Refund(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "saleId es requerido"})
	}
	var in dto.RefundExchangeRequest
	if len(c.Body()) > 0 {
		if ok, resp := parseAndValidate(c, &in); !ok {
			return resp
		}
	}
	// Sin líneas es un reembolso total; con líneas es devolución parcial o cambio.
	if len(in.ReturnedItems) == 0 && len(in.ExchangedItems) == 0 {
		out, err := h.uc.RefundSale(c.Context(), saleID, GetUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.CreateExchangeOrReturnSale(c.Context(), saleID, GetBranchID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "saleId es requerido"})
	}
	out, err := h.uc.GetSaleByID(c.Context(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas de la sucursal del usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido en el token"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.GetSales(c.Context(), branchID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Today godoc
// @Summary      Ventas del día de la sucursal del usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/today [get]
func (h *SaleHandler) Today(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido en el token"})
	}
	out, err := h.uc.GetTodaySales(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecentItems godoc
// @Summary      Últimos artículos vendidos en la sucursal (cacheado)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecentSaleItemResponse
// @Router       /api/sales/recent-items [get]
func (h *SaleHandler) RecentItems(c *fiber.Ctx) error {
	branchID := GetBranchID(c)
	if branchID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "branch_id requerido en el token"})
	}
	out, err := h.uc.GetRecentSaleItems(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        saleId  path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{saleId}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	if saleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "saleId es requerido"})
	}
	pdfBytes, err := h.uc.GetReceiptPDF(c.Context(), saleID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="recibo-`+saleID+`.pdf"`)
	return c.Send(pdfBytes)
}
