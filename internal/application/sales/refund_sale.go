package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// RefundSale reembolsa una venta completa: repone el stock de cada línea vendida
// y marca la venta como REFUNDED. Un segundo reembolso sobre la misma venta
// falla sin tocar stock. Los movimientos RETURN registran los valores reales de
// previous_qty/new_qty.
func (uc *SaleUseCase) RefundSale(ctx context.Context, saleID, actorID string) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.BranchRepository,
		_ repository.CustomerRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta", domain.ErrNotFound)
		}
		if sale.Status == entity.SaleStatusREFUNDED {
			return fmt.Errorf("%w: la venta ya fue reembolsada", domain.ErrInvalidInput)
		}
		for _, item := range sale.Items {
			if item.ItemType != entity.SaleItemTypeSALE || item.Quantity <= 0 {
				continue
			}
			if err := uc.ledger.IncrementForReturnInTx(
				stockRepo, movRepo,
				item.ProductID, sale.BranchID, item.Quantity,
				actorID, sale.ID, entity.ReferenceTypeRefund, "Reembolso total",
				uc.now(),
			); err != nil {
				return err
			}
		}
		if err := saleRepo.UpdateStatus(sale.ID, entity.SaleStatusREFUNDED); err != nil {
			return err
		}
		sale.Status = entity.SaleStatusREFUNDED
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponse(sale), nil
}
