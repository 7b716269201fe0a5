package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/orders"
)

// OrderHandler maneja órdenes en línea de clientes. La creación, consulta y
// cancelación son del cliente autenticado; el cambio de estado es del personal.
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden en línea
// @Description  Elige la sucursal con stock suficiente para todos los productos y descuenta el stock de inmediato.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "items y payment_method opcional"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.CreateOrder(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes del cliente autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GetUserOrders(c.Context(), GetUserID(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una orden del cliente autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "orderId es requerido"})
	}
	out, err := h.uc.GetUserOrder(c.Context(), GetUserID(c), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar una orden y reponer el stock
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "orderId es requerido"})
	}
	out, err := h.uc.CancelOrder(c.Context(), orderID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una orden (personal)
// @Description  No acepta CANCELLED; la cancelación usa su propia ruta para reponer stock.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Param        body     body  dto.UpdateOrderStatusRequest  true  "nuevo estado"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "orderId es requerido"})
	}
	var in dto.UpdateOrderStatusRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.UpdateOrderStatus(c.Context(), orderID, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
