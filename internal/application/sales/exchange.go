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

// CreateExchangeOrReturnSale registra una devolución y/o cambio contra una
// venta original, como una venta nueva enlazada vía OriginalSaleID:
//
//   - cada línea devuelta repone stock y entra con cantidad negativa y
//     line_total negativo (crédito al cliente);
//   - cada línea entregada a cambio descuenta stock y entra como venta normal.
//
// El estado de la venta nueva es EXCHANGED si hay al menos una línea de cambio;
// si solo hay devoluciones, REFUNDED. El total puede ser negativo (se debe
// dinero al cliente). Los movimientos de stock referencian la venta original,
// no la de reconciliación. Todo ocurre en una sola transacción.
func (uc *SaleUseCase) CreateExchangeOrReturnSale(ctx context.Context, originalSaleID, branchID, actorID string, in dto.RefundExchangeRequest) (*dto.SaleResponse, error) {
	if originalSaleID == "" || branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.ReturnedItems) == 0 && len(in.ExchangedItems) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un ítem devuelto o cambiado", domain.ErrInvalidInput)
	}
	for _, item := range in.ReturnedItems {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, item := range in.ExchangedItems {
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
		_ repository.BranchRepository,
		_ repository.CustomerRepository,
	) error {
		original, err := saleRepo.GetByID(originalSaleID)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("%w: venta original no encontrada", domain.ErrInvalidInput)
		}

		// Líneas de la venta original indexadas por producto, para validar
		// que lo devuelto realmente se vendió y en qué cantidad y precio.
		originalByProduct := make(map[string]*entity.SaleItem, len(original.Items))
		for _, it := range original.Items {
			if it.ItemType == entity.SaleItemTypeSALE {
				originalByProduct[it.ProductID] = it
			}
		}

		saleID := uuid.New().String()
		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.ReturnedItems)+len(in.ExchangedItems))

		for _, ret := range in.ReturnedItems {
			origItem, ok := originalByProduct[ret.ProductID]
			if !ok {
				return fmt.Errorf("%w: el producto %s no pertenece a la venta original", domain.ErrInvalidInput, ret.ProductID)
			}
			if ret.Quantity > origItem.Quantity {
				return fmt.Errorf("%w: devolución de %d supera la cantidad vendida (%d) del producto %s",
					domain.ErrInvalidInput, ret.Quantity, origItem.Quantity, ret.ProductID)
			}
			if err := uc.ledger.IncrementForReturnInTx(
				stockRepo, movRepo,
				ret.ProductID, branchID, ret.Quantity,
				actorID, original.ID, entity.ReferenceTypeReturn, "Devuelto por el cliente",
				now,
			); err != nil {
				return err
			}
			lineTotal := origItem.UnitPrice.Mul(decimal.NewFromInt(ret.Quantity)).Neg()
			total = total.Add(lineTotal)
			items = append(items, &entity.SaleItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				ProductID:     ret.ProductID,
				Quantity:      -ret.Quantity,
				UnitPrice:     origItem.UnitPrice,
				LineTotal:     lineTotal,
				ItemType:      entity.SaleItemTypeRETURN,
				RefSaleItemID: origItem.ID,
			})
		}

		for _, exch := range in.ExchangedItems {
			if err := uc.ledger.DecrementForSaleInTx(
				stockRepo, movRepo,
				exch.ProductID, branchID, exch.Quantity,
				actorID, original.ID, entity.ReferenceTypeExchange, "",
				now,
			); err != nil {
				return err
			}
			lineTotal := exch.Price.Mul(decimal.NewFromInt(exch.Quantity))
			total = total.Add(lineTotal)
			items = append(items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: exch.ProductID,
				Quantity:  exch.Quantity,
				UnitPrice: exch.Price,
				LineTotal: lineTotal,
				ItemType:  entity.SaleItemTypeEXCHANGE,
			})
		}

		// Cualquier línea de cambio manda sobre las devoluciones.
		status := entity.SaleStatusREFUNDED
		if len(in.ExchangedItems) > 0 {
			status = entity.SaleStatusEXCHANGED
		}

		customerID := in.CustomerID
		if customerID == "" {
			customerID = original.CustomerID
		}

		sale = &entity.Sale{
			ID:             saleID,
			SaleNumber:     fmt.Sprintf("SALE-%d", now.UnixMilli()),
			BranchID:       branchID,
			CustomerID:     customerID,
			OriginalSaleID: original.ID,
			Subtotal:       total,
			TaxAmount:      decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    total,
			PaymentMethod:  entity.PaymentMethodCASH,
			PaymentStatus:  entity.PaymentStatusPAID,
			Status:         status,
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
