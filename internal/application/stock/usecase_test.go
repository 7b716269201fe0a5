package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

const (
	testProductID = "prod-001"
	testBranchID  = "branch-001"
	testActorID   = "user-001"
)

func newLedger(store *apptest.Store) *stock.LedgerUseCase {
	return stock.NewLedgerUseCase(
		apptest.NewTxRunner(store),
		&apptest.StockRepo{S: store},
		&apptest.MovementRepo{S: store},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStock_CreaFilaYMovimientoInicial(t *testing.T) {
	store := apptest.NewStore()
	uc := newLedger(store)

	out, err := uc.CreateStock(context.Background(), dto.CreateStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Quantity:  50,
	}, testActorID)
	require.NoError(t, err)

	assert.Equal(t, int64(50), out.CurrentQuantity)
	assert.Equal(t, int64(50), store.StockQty(testProductID, testBranchID))

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.MovementType)
	assert.Equal(t, int64(0), mov.PreviousQty)
	assert.Equal(t, int64(50), mov.NewQty)
	assert.Equal(t, int64(50), mov.QuantityChange)
	assert.Equal(t, testActorID, mov.CreatedBy)
}

func TestCreateStock_ParDuplicado_RetornaConflict(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 10)
	uc := newLedger(store)

	_, err := uc.CreateStock(context.Background(), dto.CreateStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Quantity:  5,
	}, testActorID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	// la cantidad original no cambia y no se registra movimiento alguno
	assert.Equal(t, int64(10), store.StockQty(testProductID, testBranchID))
	assert.Empty(t, store.Movements)
}

func TestCreateStock_CantidadInvalida_RetornaInvalidInput(t *testing.T) {
	uc := newLedger(apptest.NewStore())

	for _, qty := range []int64{0, -3} {
		_, err := uc.CreateStock(context.Background(), dto.CreateStockRequest{
			ProductID: testProductID,
			BranchID:  testBranchID,
			Quantity:  qty,
		}, testActorID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DeltaPositivo_RegistraAdjustment(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 20)
	uc := newLedger(store)

	out, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Delta:     15,
		Reason:    "conteo físico",
	}, testActorID)
	require.NoError(t, err)

	assert.Equal(t, int64(35), out.NewQty)
	assert.Equal(t, int64(35), store.StockQty(testProductID, testBranchID))

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.MovementType)
	assert.Equal(t, int64(20), mov.PreviousQty)
	assert.Equal(t, int64(35), mov.NewQty)
	assert.Equal(t, "conteo físico", mov.Notes)
}

func TestAdjustStock_DeltaNegativo_RegistraDamage(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 20)
	uc := newLedger(store)

	out, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Delta:     -5,
		Reason:    "mercancía dañada",
	}, testActorID)
	require.NoError(t, err)

	assert.Equal(t, int64(15), out.NewQty)
	require.Len(t, store.Movements, 1)
	assert.Equal(t, entity.MovementTypeDAMAGE, store.Movements[0].MovementType)
	assert.Equal(t, int64(-5), store.Movements[0].QuantityChange)
}

func TestAdjustStock_ResultadoNegativo_NoPersisteNada(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 3)
	uc := newLedger(store)

	_, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Delta:     -10,
	}, testActorID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), store.StockQty(testProductID, testBranchID))
	assert.Empty(t, store.Movements)
}

func TestAdjustStock_StockInexistente_RetornaNotFound(t *testing.T) {
	uc := newLedger(apptest.NewStore())

	_, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: "no-existe",
		BranchID:  testBranchID,
		Delta:     5,
	}, testActorID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_DeltaCero_RetornaInvalidInput(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 20)
	uc := newLedger(store)

	_, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Delta:     0,
	}, testActorID)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones dentro de transacción (decremento por venta / reposición)
// ──────────────────────────────────────────────────────────────────────────────

func TestDecrementForSaleInTx_StockInsuficiente(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 2)
	uc := newLedger(store)

	err := uc.DecrementForSaleInTx(
		&apptest.StockRepo{S: store}, &apptest.MovementRepo{S: store},
		testProductID, testBranchID, 5,
		testActorID, "sale-1", entity.ReferenceTypeSale, "", time.Now(),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestDecrementForSaleInTx_DescuentaYRegistraMovimiento(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 10)
	uc := newLedger(store)
	now := time.Now()

	err := uc.DecrementForSaleInTx(
		&apptest.StockRepo{S: store}, &apptest.MovementRepo{S: store},
		testProductID, testBranchID, 4,
		testActorID, "sale-1", entity.ReferenceTypeSale, "", now,
	)
	require.NoError(t, err)

	assert.Equal(t, int64(6), store.StockQty(testProductID, testBranchID))
	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeSALE, mov.MovementType)
	assert.Equal(t, int64(-4), mov.QuantityChange)
	assert.Equal(t, int64(10), mov.PreviousQty)
	assert.Equal(t, int64(6), mov.NewQty)
	assert.Equal(t, "sale-1", mov.ReferenceID)
	assert.Equal(t, entity.ReferenceTypeSale, mov.ReferenceType)
}

func TestIncrementForReturnInTx_ReponeConCantidadesReales(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 6)
	uc := newLedger(store)

	err := uc.IncrementForReturnInTx(
		&apptest.StockRepo{S: store}, &apptest.MovementRepo{S: store},
		testProductID, testBranchID, 4,
		testActorID, "sale-1", entity.ReferenceTypeRefund, "Reembolso total", time.Now(),
	)
	require.NoError(t, err)

	assert.Equal(t, int64(10), store.StockQty(testProductID, testBranchID))
	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeRETURN, mov.MovementType)
	assert.Equal(t, int64(4), mov.QuantityChange)
	assert.Equal(t, int64(6), mov.PreviousQty)
	assert.Equal(t, int64(10), mov.NewQty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: un commit fallido no deja cambios parciales
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_CommitFallido_RevierteTodo(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock(testProductID, testBranchID, 20)
	runner := apptest.NewTxRunner(store)
	runner.FailCommit = errors.New("commit rechazado")
	uc := stock.NewLedgerUseCase(runner, &apptest.StockRepo{S: store}, &apptest.MovementRepo{S: store})

	_, err := uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: testProductID,
		BranchID:  testBranchID,
		Delta:     5,
	}, testActorID)

	require.Error(t, err)
	assert.Equal(t, int64(20), store.StockQty(testProductID, testBranchID))
	assert.Empty(t, store.Movements)
}
