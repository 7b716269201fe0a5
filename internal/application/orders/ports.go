package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios ligados a ella.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		branchRepo repository.BranchRepository,
	) error) error
}

// StockLedger expone las operaciones de stock que el motor de órdenes invoca
// dentro de su propia transacción.
type StockLedger interface {
	DecrementForSaleInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		productID, branchID string,
		quantity int64,
		actorID, referenceID, referenceType, notes string,
		now time.Time,
	) error
	IncrementForReturnInTx(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		productID, branchID string,
		quantity int64,
		actorID, referenceID, referenceType, notes string,
		now time.Time,
	) error
}
