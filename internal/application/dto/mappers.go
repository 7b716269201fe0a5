package dto

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// NewSaleResponse convierte la entidad venta (con líneas) a su DTO de salida.
func NewSaleResponse(s *entity.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		BranchID:       s.BranchID,
		CustomerID:     s.CustomerID,
		OriginalSaleID: s.OriginalSaleID,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		PaymentMethod:  s.PaymentMethod,
		PaymentStatus:  s.PaymentStatus,
		Status:         s.Status,
		SaleDate:       s.SaleDate,
		Items:          make([]SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     it.LineTotal,
			ItemType:      it.ItemType,
			RefSaleItemID: it.RefSaleItemID,
		})
	}
	return resp
}

// NewOrderResponse convierte la entidad orden (con líneas) a su DTO de salida.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		BranchID:      o.BranchID,
		CustomerID:    o.CustomerID,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		Items:         make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			Price:      it.Price,
			TotalPrice: it.TotalPrice,
		})
	}
	return resp
}
