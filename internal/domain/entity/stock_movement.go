package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSALE       = "SALE"
	MovementTypeRETURN     = "RETURN"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
	MovementTypeDAMAGE     = "DAMAGE"
)

// Tipos de referencia usados en movimientos (ReferenceType).
const (
	ReferenceTypeSale        = "sale"
	ReferenceTypeRefund      = "refund"
	ReferenceTypeReturn      = "return"
	ReferenceTypeExchange    = "exchange"
	ReferenceTypeOrder       = "order"
	ReferenceTypeOrderCancel = "order_cancel"
)

// StockMovement es un registro inmutable (append-only) de cada cambio de stock.
// Invariante: NewQty = PreviousQty + QuantityChange, y NewQty debe coincidir con
// Stock.CurrentQuantity al confirmar la transacción.
type StockMovement struct {
	ID             string
	ProductID      string
	BranchID       string
	MovementType   string // SALE, RETURN, ADJUSTMENT, DAMAGE
	QuantityChange int64  // con signo: negativo para salidas
	PreviousQty    int64
	NewQty         int64
	ReferenceID    string
	ReferenceType  string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
}
