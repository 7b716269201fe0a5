package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// LedgerUseCase es el libro de stock: posee la cantidad actual por
// (producto, sucursal) y registra un movimiento inmutable por cada cambio.
// Toda mutación ocurre dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) para evitar lost updates bajo peticiones concurrentes.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository        // lecturas fuera de tx
	movRepo   repository.StockMovementRepository // lecturas fuera de tx
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// CreateStock crea la fila inicial de stock para (producto, sucursal) y registra
// un movimiento ADJUSTMENT con previous_qty=0. Falla con ErrConflict si el par ya existe.
func (uc *LedgerUseCase) CreateStock(ctx context.Context, in dto.CreateStockRequest, actorID string) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.BranchID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	stock := &entity.Stock{
		ProductID:       in.ProductID,
		BranchID:        in.BranchID,
		CurrentQuantity: in.Quantity,
		LastUpdated:     now,
	}
	err := uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		existing, err := stockRepo.Get(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe stock para el producto en la sucursal", domain.ErrConflict)
		}
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			BranchID:       in.BranchID,
			MovementType:   entity.MovementTypeADJUSTMENT,
			QuantityChange: in.Quantity,
			PreviousQty:    0,
			NewQty:         in.Quantity,
			CreatedBy:      actorID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// AdjustStock aplica un delta manual sobre el stock. Delta positivo registra
// ADJUSTMENT, negativo registra DAMAGE. Falla con ErrInsufficientStock si el
// resultado sería negativo; nada se persiste en ese caso.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest, actorID string) (*dto.AdjustStockResponse, error) {
	if in.ProductID == "" || in.BranchID == "" || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	var newQty int64
	err := uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if stock == nil {
			return fmt.Errorf("%w: stock", domain.ErrNotFound)
		}
		newQty = stock.CurrentQuantity + in.Delta
		if newQty < 0 {
			return fmt.Errorf("%w: el ajuste dejaría la cantidad en negativo", domain.ErrInsufficientStock)
		}
		if err := stockRepo.UpdateQuantity(in.ProductID, in.BranchID, newQty); err != nil {
			return err
		}
		movType := entity.MovementTypeADJUSTMENT
		if in.Delta < 0 {
			movType = entity.MovementTypeDAMAGE
		}
		return movRepo.Create(&entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			BranchID:       in.BranchID,
			MovementType:   movType,
			QuantityChange: in.Delta,
			PreviousQty:    stock.CurrentQuantity,
			NewQty:         newQty,
			Notes:          in.Reason,
			CreatedBy:      actorID,
			CreatedAt:      uc.now(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{NewQty: newQty}, nil
}

// DecrementForSaleInTx descuenta stock por una venta usando los repositorios del
// caller (misma transacción). Bloquea la fila, verifica cantidad suficiente,
// actualiza y registra el movimiento SALE con referencia a la venta u orden.
func (uc *LedgerUseCase) DecrementForSaleInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productID, branchID string,
	quantity int64,
	actorID, referenceID, referenceType, notes string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(productID, branchID)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("%w: sin stock para el producto %s", domain.ErrInvalidInput, productID)
	}
	if stock.CurrentQuantity < quantity {
		return fmt.Errorf("%w: producto %s", domain.ErrInsufficientStock, productID)
	}
	newQty := stock.CurrentQuantity - quantity
	if err := stockRepo.UpdateQuantity(productID, branchID, newQty); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		BranchID:       branchID,
		MovementType:   entity.MovementTypeSALE,
		QuantityChange: -quantity,
		PreviousQty:    stock.CurrentQuantity,
		NewQty:         newQty,
		ReferenceID:    referenceID,
		ReferenceType:  referenceType,
		Notes:          notes,
		CreatedBy:      actorID,
		CreatedAt:      now,
	})
}

// IncrementForReturnInTx repone stock por una devolución (o cancelación de orden)
// usando los repositorios del caller. Registra el movimiento RETURN con los
// valores reales de previous_qty/new_qty.
func (uc *LedgerUseCase) IncrementForReturnInTx(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	productID, branchID string,
	quantity int64,
	actorID, referenceID, referenceType, notes string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(productID, branchID)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("%w: sin stock para el producto %s", domain.ErrInvalidInput, productID)
	}
	newQty := stock.CurrentQuantity + quantity
	if err := stockRepo.UpdateQuantity(productID, branchID, newQty); err != nil {
		return err
	}
	return movRepo.Create(&entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		BranchID:       branchID,
		MovementType:   entity.MovementTypeRETURN,
		QuantityChange: quantity,
		PreviousQty:    stock.CurrentQuantity,
		NewQty:         newQty,
		ReferenceID:    referenceID,
		ReferenceType:  referenceType,
		Notes:          notes,
		CreatedBy:      actorID,
		CreatedAt:      now,
	})
}

// GetStockByBranch lista el stock de una sucursal (lectura simple, sin tx).
func (uc *LedgerUseCase) GetStockByBranch(ctx context.Context, branchID string) ([]*dto.StockResponse, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	stocks, err := uc.stockRepo.ListByBranch(branchID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toStockResponse(s))
	}
	return out, nil
}

// GetMovements lista el historial de movimientos de una sucursal, más recientes primero.
func (uc *LedgerUseCase) GetMovements(ctx context.Context, branchID string, limit, offset int) ([]*dto.StockMovementResponse, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	movements, err := uc.movRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, &dto.StockMovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			BranchID:       m.BranchID,
			MovementType:   m.MovementType,
			QuantityChange: m.QuantityChange,
			PreviousQty:    m.PreviousQty,
			NewQty:         m.NewQty,
			ReferenceID:    m.ReferenceID,
			ReferenceType:  m.ReferenceType,
			Notes:          m.Notes,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ProductID:       s.ProductID,
		BranchID:        s.BranchID,
		CurrentQuantity: s.CurrentQuantity,
		LastUpdated:     s.LastUpdated,
	}
}
