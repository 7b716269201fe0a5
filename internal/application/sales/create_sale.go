package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CreateSale crea una venta directa (mostrador). Valida sucursal, cliente y
// stock de todos los ítems antes de mutar nada (todo-o-nada); luego descuenta
// stock por línea y persiste la venta en estado COMPLETED / PAID.
// El precio unitario es el indicado por el cajero, no el de catálogo.
func (uc *SaleUseCase) CreateSale(ctx context.Context, branchID, actorID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if branchID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.now()
	var sale *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		branchRepo repository.BranchRepository,
		customerRepo repository.CustomerRepository,
	) error {
		branch, err := branchRepo.GetByID(branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return fmt.Errorf("%w: sucursal inválida", domain.ErrInvalidInput)
		}
		if in.CustomerID != "" {
			customer, err := customerRepo.GetByID(in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: cliente inválido", domain.ErrInvalidInput)
			}
		}

		// Carga de stock de todos los productos en una sola consulta
		productIDs := make([]string, 0, len(in.Items))
		for _, item := range in.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		stocks, err := stockRepo.ListByProducts(productIDs, branchID)
		if err != nil {
			return err
		}
		stockByProduct := make(map[string]*entity.Stock, len(stocks))
		for _, s := range stocks {
			stockByProduct[s.ProductID] = s
		}

		// Pase de validación completo antes de cualquier mutación
		total := decimal.Zero
		for _, item := range in.Items {
			stock, ok := stockByProduct[item.ProductID]
			if !ok {
				return fmt.Errorf("%w: sin stock para el producto %s", domain.ErrInvalidInput, item.ProductID)
			}
			if stock.CurrentQuantity < item.Quantity {
				return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, item.ProductID)
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
		}

		saleID := uuid.New().String()
		items := make([]*entity.SaleItem, 0, len(in.Items))
		for _, item := range in.Items {
			if err := uc.ledger.DecrementForSaleInTx(
				stockRepo, movRepo,
				item.ProductID, branchID, item.Quantity,
				actorID, saleID, entity.ReferenceTypeSale, "",
				now,
			); err != nil {
				return err
			}
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
				LineTotal: item.Price.Mul(decimal.NewFromInt(item.Quantity)),
				ItemType:  entity.SaleItemTypeSALE,
			})
		}

		sale = &entity.Sale{
			ID:             saleID,
			SaleNumber:     fmt.Sprintf("SALE-%d", now.UnixMilli()),
			BranchID:       branchID,
			CustomerID:     in.CustomerID,
			Subtotal:       total,
			TaxAmount:      decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    total,
			PaymentMethod:  in.PaymentMethod,
			PaymentStatus:  entity.PaymentStatusPAID,
			Status:         entity.SaleStatusCOMPLETED,
			SaleDate:       now,
			CreatedBy:      actorID,
			CreatedAt:      now,
			Items:          items,
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateRecentItems(ctx, branchID)
	return dto.NewSaleResponse(sale), nil
}
