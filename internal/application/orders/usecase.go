package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// OrderUseCase es el puente orden-venta: una orden de cliente se asigna a una
// única sucursal capaz de cubrir todos sus ítems, descuenta stock y queda
// espejada de inmediato en una venta COMPLETED.
type OrderUseCase struct {
	txRunner  TxRunner
	ledger    StockLedger
	orderRepo repository.OrderRepository // lecturas fuera de tx
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, ledger StockLedger, orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		orderRepo: orderRepo,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// CreateOrder crea una orden para el cliente autenticado. El precio unitario es
// siempre el de catálogo (SalesRateIncDisAndTax), nunca el indicado por el
// cliente. La sucursal se elige buscando una que tenga stock suficiente para
// TODOS los ítems; si ninguna cubre la orden completa, falla. Ante empate gana
// la sucursal de código más bajo. Orden y venta espejo se crean en la misma
// transacción.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if customerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Cantidad requerida por producto (líneas duplicadas se acumulan)
	qtyNeeded := make(map[string]int64, len(in.Items))
	productIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := qtyNeeded[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		qtyNeeded[item.ProductID] += item.Quantity
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCASH
	}

	now := uc.now()
	var order *entity.Order
	var sale *entity.Sale

	err := uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		branchRepo repository.BranchRepository,
	) error {
		products, err := productRepo.ListByIDs(productIDs, true)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return fmt.Errorf("%w: solo %d de %d productos existen y están activos",
				domain.ErrInvalidInput, len(products), len(productIDs))
		}
		priceByProduct := make(map[string]decimal.Decimal, len(products))
		for _, p := range products {
			priceByProduct[p.ID] = p.SalesRateIncDisAndTax
		}

		// Stock en todas las sucursales; una sucursal es candidata si cubre
		// la cantidad pedida de cada producto distinto de la orden.
		stocks, err := stockRepo.ListAvailableByProducts(productIDs, 1)
		if err != nil {
			return err
		}
		covered := make(map[string]int, len(stocks)) // branchID -> productos cubiertos
		for _, s := range stocks {
			if s.CurrentQuantity >= qtyNeeded[s.ProductID] {
				covered[s.BranchID]++
			}
		}
		candidates := make([]string, 0, len(covered))
		for branchID, n := range covered {
			if n == len(productIDs) {
				candidates = append(candidates, branchID)
			}
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: ninguna sucursal tiene stock suficiente para todos los productos de la orden",
				domain.ErrInvalidInput)
		}
		branches, err := branchRepo.ListByIDs(candidates)
		if err != nil {
			return err
		}
		chosen := branches[0]
		for _, b := range branches[1:] {
			if b.Code < chosen.Code {
				chosen = b
			}
		}

		orderID := uuid.New().String()
		saleID := uuid.New().String()
		total := decimal.Zero
		orderItems := make([]*entity.OrderItem, 0, len(in.Items))
		saleItems := make([]*entity.SaleItem, 0, len(in.Items))
		for _, item := range in.Items {
			price := priceByProduct[item.ProductID]
			lineTotal := price.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(lineTotal)

			if err := uc.ledger.DecrementForSaleInTx(
				stockRepo, movRepo,
				item.ProductID, chosen.ID, item.Quantity,
				customerID, orderID, entity.ReferenceTypeOrder, "",
				now,
			); err != nil {
				return err
			}
			orderItems = append(orderItems, &entity.OrderItem{
				ID:         uuid.New().String(),
				OrderID:    orderID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				Price:      price,
				TotalPrice: lineTotal,
			})
			saleItems = append(saleItems, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				LineTotal: lineTotal,
				ItemType:  entity.SaleItemTypeSALE,
			})
		}

		order = &entity.Order{
			ID:            orderID,
			OrderNumber:   fmt.Sprintf("ORD-%d", now.UnixMilli()),
			BranchID:      chosen.ID,
			CustomerID:    customerID,
			TotalAmount:   total,
			Status:        entity.OrderStatusPENDING,
			PaymentMethod: paymentMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
			Items:         orderItems,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:             saleID,
			SaleNumber:     fmt.Sprintf("SALE-%d", now.UnixMilli()),
			BranchID:       chosen.ID,
			CustomerID:     customerID,
			Subtotal:       total,
			TaxAmount:      decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    total,
			PaymentMethod:  paymentMethod,
			PaymentStatus:  entity.PaymentStatusPAID,
			Status:         entity.SaleStatusCOMPLETED,
			SaleDate:       now,
			CreatedBy:      customerID,
			CreatedAt:      now,
			Items:          saleItems,
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{
		Order: dto.NewOrderResponse(order),
		Sale:  dto.NewSaleResponse(sale),
	}, nil
}

// CancelOrder cancela una orden PENDING o PROCESSING y repone el stock
// descontado al crearla, con movimientos RETURN compensatorios. Órdenes
// COMPLETED o ya CANCELLED no pueden cancelarse.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID, actorID string) (*dto.OrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SaleRepository,
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.BranchRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: orden", domain.ErrNotFound)
		}
		switch order.Status {
		case entity.OrderStatusCANCELLED:
			return fmt.Errorf("%w: la orden ya está cancelada", domain.ErrInvalidInput)
		case entity.OrderStatusCOMPLETED:
			return fmt.Errorf("%w: una orden completada no puede cancelarse", domain.ErrInvalidInput)
		}
		for _, item := range order.Items {
			if err := uc.ledger.IncrementForReturnInTx(
				stockRepo, movRepo,
				item.ProductID, order.BranchID, item.Quantity,
				actorID, order.ID, entity.ReferenceTypeOrderCancel, "Orden cancelada",
				uc.now(),
			); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCANCELLED); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCANCELLED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// UpdateOrderStatus cambia el estado de una orden (uso administrativo). Una
// orden cancelada no admite más transiciones; para cancelar use CancelOrder,
// que además repone stock.
func (uc *OrderUseCase) UpdateOrderStatus(ctx context.Context, orderID, status string) (*dto.OrderResponse, error) {
	switch status {
	case entity.OrderStatusPENDING, entity.OrderStatusPROCESSING, entity.OrderStatusCOMPLETED:
	case entity.OrderStatusCANCELLED:
		return nil, fmt.Errorf("%w: use la cancelación de orden para reponer stock", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: estado de orden inválido %q", domain.ErrInvalidInput, status)
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden", domain.ErrNotFound)
	}
	if order.Status == entity.OrderStatusCANCELLED {
		return nil, fmt.Errorf("%w: la orden está cancelada", domain.ErrInvalidInput)
	}
	if err := uc.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return dto.NewOrderResponse(order), nil
}

// GetUserOrders lista las órdenes del cliente autenticado, opcionalmente
// filtradas por estado.
func (uc *OrderUseCase) GetUserOrders(ctx context.Context, customerID, status string) ([]*dto.OrderResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.ListByCustomer(customerID, status)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, nil
}

// GetUserOrder obtiene una orden del cliente autenticado. Acceder a la orden de
// otro cliente devuelve ErrForbidden.
func (uc *OrderUseCase) GetUserOrder(ctx context.Context, customerID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden", domain.ErrNotFound)
	}
	if order.CustomerID != customerID {
		return nil, fmt.Errorf("%w: la orden pertenece a otro cliente", domain.ErrForbidden)
	}
	return dto.NewOrderResponse(order), nil
}

