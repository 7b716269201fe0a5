package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de stock y ventas. Commit si fn retorna nil, rollback si no.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		saleRepo repository.SaleRepository,
		branchRepo repository.BranchRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// StockLedger integra el motor de ventas con el libro de stock. Ambos métodos
// usan los repositorios del caller (misma transacción); si retornan error
// (ej. ErrInsufficientStock) el caller debe hacer rollback.
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

// Cache puerto de caché para lecturas calientes (items recientes). La
// implementación Redis vive en infraestructura; nil deshabilita el caché.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ReceiptLine línea del recibo con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	ItemType    string
}

// ReceiptPDFGenerator genera la representación en PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		sale *entity.Sale,
		branch *entity.Branch,
		customer *entity.Customer,
		lines []ReceiptLine,
	) ([]byte, error)
}
