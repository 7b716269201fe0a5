package sales_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

const (
	testBranchID   = "branch-001"
	testActorID    = "cashier-001"
	testCustomerID = "cust-001"
)

// fakeCache implementa sales.Cache en memoria contando operaciones.
type fakeCache struct {
	data    map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	f.deletes++
	return nil
}

func seedBranch(store *apptest.Store) {
	store.Branches[testBranchID] = &entity.Branch{
		ID: testBranchID, Code: "1000", Name: "Sucursal Centro", IsActive: true,
	}
}

func seedProduct(store *apptest.Store, id, name string, price float64) {
	store.Products[id] = &entity.Product{
		ID:                    id,
		Name:                  name,
		IsActive:              true,
		SalesRateIncDisAndTax: decimal.NewFromFloat(price),
	}
}

func newSaleUC(store *apptest.Store, cache sales.Cache) *sales.SaleUseCase {
	ledger := stock.NewLedgerUseCase(
		apptest.NewTxRunner(store),
		&apptest.StockRepo{S: store},
		&apptest.MovementRepo{S: store},
	)
	return sales.NewSaleUseCase(
		apptest.NewTxRunner(store), ledger,
		&apptest.SaleRepo{S: store},
		&apptest.BranchRepo{S: store},
		&apptest.CustomerRepo{S: store},
		&apptest.ProductRepo{S: store},
		cache, nil,
	)
}

func createSale(t *testing.T, uc *sales.SaleUseCase, items []dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	out, err := uc.CreateSale(context.Background(), testBranchID, testActorID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentMethodCASH,
		Items:         items,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYQuedaCompletada(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	store.SeedStock("prod-2", testBranchID, 5)
	uc := newSaleUC(store, nil)

	out := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 3, Price: decimal.NewFromInt(100)},
		{ProductID: "prod-2", Quantity: 2, Price: decimal.NewFromInt(50)},
	})

	assert.Equal(t, entity.SaleStatusCOMPLETED, out.Status)
	assert.Equal(t, entity.PaymentStatusPAID, out.PaymentStatus)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(400)),
		"total = 3*100 + 2*50")
	assert.Contains(t, out.SaleNumber, "SALE-")
	require.Len(t, out.Items, 2)
	assert.Equal(t, entity.SaleItemTypeSALE, out.Items[0].ItemType)

	assert.Equal(t, int64(7), store.StockQty("prod-1", testBranchID))
	assert.Equal(t, int64(3), store.StockQty("prod-2", testBranchID))

	require.Len(t, store.Movements, 2)
	for _, mov := range store.Movements {
		assert.Equal(t, entity.MovementTypeSALE, mov.MovementType)
		assert.Equal(t, entity.ReferenceTypeSale, mov.ReferenceType)
		assert.Equal(t, out.ID, mov.ReferenceID)
	}
}

func TestCreateSale_StockInsuficiente_NoMutaNada(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	store.SeedStock("prod-2", testBranchID, 1)
	uc := newSaleUC(store, nil)

	_, err := uc.CreateSale(context.Background(), testBranchID, testActorID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentMethodCASH,
		Items: []dto.SaleItemRequest{
			{ProductID: "prod-1", Quantity: 3, Price: decimal.NewFromInt(100)},
			{ProductID: "prod-2", Quantity: 2, Price: decimal.NewFromInt(50)},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// todo-o-nada: ni siquiera la primera línea descuenta stock
	assert.Equal(t, int64(10), store.StockQty("prod-1", testBranchID))
	assert.Equal(t, int64(1), store.StockQty("prod-2", testBranchID))
	assert.Empty(t, store.Movements)
	assert.Empty(t, store.Sales)
}

func TestCreateSale_SucursalInexistente_RetornaInvalidInput(t *testing.T) {
	store := apptest.NewStore()
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	_, err := uc.CreateSale(context.Background(), testBranchID, testActorID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentMethodCASH,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ClienteInexistente_RetornaInvalidInput(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	_, err := uc.CreateSale(context.Background(), testBranchID, testActorID, dto.CreateSaleRequest{
		CustomerID:    "no-existe",
		PaymentMethod: entity.PaymentMethodCASH,
		Items:         []dto.SaleItemRequest{{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RefundSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRefundSale_ReponeStockYMarcaRefunded(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	sale := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 4, Price: decimal.NewFromInt(100)},
	})
	require.Equal(t, int64(6), store.StockQty("prod-1", testBranchID))

	out, err := uc.RefundSale(context.Background(), sale.ID, testActorID)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusREFUNDED, out.Status)
	assert.Equal(t, int64(10), store.StockQty("prod-1", testBranchID))

	// el movimiento RETURN registra las cantidades reales al momento de reponer
	last := store.Movements[len(store.Movements)-1]
	assert.Equal(t, entity.MovementTypeRETURN, last.MovementType)
	assert.Equal(t, entity.ReferenceTypeRefund, last.ReferenceType)
	assert.Equal(t, int64(6), last.PreviousQty)
	assert.Equal(t, int64(10), last.NewQty)
}

func TestRefundSale_SegundoReembolso_FallaSinTocarStock(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	sale := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 4, Price: decimal.NewFromInt(100)},
	})
	_, err := uc.RefundSale(context.Background(), sale.ID, testActorID)
	require.NoError(t, err)
	movements := len(store.Movements)

	_, err = uc.RefundSale(context.Background(), sale.ID, testActorID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), store.StockQty("prod-1", testBranchID))
	assert.Len(t, store.Movements, movements, "no debe registrarse ningún movimiento extra")
}

func TestRefundSale_VentaInexistente_RetornaNotFound(t *testing.T) {
	store := apptest.NewStore()
	uc := newSaleUC(store, nil)

	_, err := uc.RefundSale(context.Background(), "no-existe", testActorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones y cambios
// ──────────────────────────────────────────────────────────────────────────────

func TestExchange_SoloDevoluciones_QuedaRefundedConTotalNegativo(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	original := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 3, Price: decimal.NewFromInt(100)},
	})

	out, err := uc.CreateExchangeOrReturnSale(context.Background(), original.ID, testBranchID, testActorID,
		dto.RefundExchangeRequest{
			ReturnedItems: []dto.ReturnItemRequest{{ProductID: "prod-1", Quantity: 2}},
		})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusREFUNDED, out.Status)
	assert.Equal(t, original.ID, out.OriginalSaleID)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(-200)),
		"se le deben 2*100 al cliente")

	require.Len(t, out.Items, 1)
	line := out.Items[0]
	assert.Equal(t, entity.SaleItemTypeRETURN, line.ItemType)
	assert.Equal(t, int64(-2), line.Quantity)
	assert.True(t, line.LineTotal.Equal(decimal.NewFromInt(-200)))
	assert.NotEmpty(t, line.RefSaleItemID, "debe apuntar a la línea vendida original")

	// 10 - 3 vendidas + 2 devueltas
	assert.Equal(t, int64(9), store.StockQty("prod-1", testBranchID))

	// El movimiento de reposición referencia la venta original, no la nueva.
	n := len(store.Movements)
	require.GreaterOrEqual(t, n, 1)
	assert.Equal(t, original.ID, store.Movements[n-1].ReferenceID)
}

func TestExchange_ConCambio_QuedaExchanged(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	store.SeedStock("prod-2", testBranchID, 5)
	uc := newSaleUC(store, nil)

	original := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(100)},
	})

	out, err := uc.CreateExchangeOrReturnSale(context.Background(), original.ID, testBranchID, testActorID,
		dto.RefundExchangeRequest{
			ReturnedItems:  []dto.ReturnItemRequest{{ProductID: "prod-1", Quantity: 1}},
			ExchangedItems: []dto.ExchangeItemRequest{{ProductID: "prod-2", Quantity: 1, Price: decimal.NewFromInt(120)}},
		})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusEXCHANGED, out.Status)
	// -100 por lo devuelto + 120 por lo entregado
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, int64(9), store.StockQty("prod-1", testBranchID), "8 tras la venta + 1 devuelta")
	assert.Equal(t, int64(4), store.StockQty("prod-2", testBranchID), "5 - 1 entregada a cambio")

	// últimos movimientos: RETURN de prod-1 y SALE de prod-2
	n := len(store.Movements)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, entity.ReferenceTypeReturn, store.Movements[n-2].ReferenceType)
	assert.Equal(t, entity.ReferenceTypeExchange, store.Movements[n-1].ReferenceType)
	// Ambos apuntan a la venta original.
	assert.Equal(t, original.ID, store.Movements[n-2].ReferenceID)
	assert.Equal(t, original.ID, store.Movements[n-1].ReferenceID)
}

func TestExchange_ProductoAjenoALaVenta_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	original := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(100)},
	})

	_, err := uc.CreateExchangeOrReturnSale(context.Background(), original.ID, testBranchID, testActorID,
		dto.RefundExchangeRequest{
			ReturnedItems: []dto.ReturnItemRequest{{ProductID: "prod-extraño", Quantity: 1}},
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "no pertenece a la venta original")
}

func TestExchange_DevolucionSuperaCantidadVendida_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	uc := newSaleUC(store, nil)

	original := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(100)},
	})

	_, err := uc.CreateExchangeOrReturnSale(context.Background(), original.ID, testBranchID, testActorID,
		dto.RefundExchangeRequest{
			ReturnedItems: []dto.ReturnItemRequest{{ProductID: "prod-1", Quantity: 5}},
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(8), store.StockQty("prod-1", testBranchID), "el stock no debe cambiar")
}

func TestExchange_SinItems_RetornaInvalidInput(t *testing.T) {
	store := apptest.NewStore()
	uc := newSaleUC(store, nil)

	_, err := uc.CreateExchangeOrReturnSale(context.Background(), "sale-x", testBranchID, testActorID,
		dto.RefundExchangeRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExchange_StockInsuficienteParaElCambio_RevierteLaDevolucion(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 10)
	store.SeedStock("prod-2", testBranchID, 0)
	uc := newSaleUC(store, nil)

	original := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(100)},
	})
	movements := len(store.Movements)

	_, err := uc.CreateExchangeOrReturnSale(context.Background(), original.ID, testBranchID, testActorID,
		dto.RefundExchangeRequest{
			ReturnedItems:  []dto.ReturnItemRequest{{ProductID: "prod-1", Quantity: 1}},
			ExchangedItems: []dto.ExchangeItemRequest{{ProductID: "prod-2", Quantity: 1, Price: decimal.NewFromInt(120)}},
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// rollback completo: la reposición de prod-1 dentro de la tx no queda
	assert.Equal(t, int64(8), store.StockQty("prod-1", testBranchID))
	assert.Equal(t, int64(0), store.StockQty("prod-2", testBranchID))
	assert.Len(t, store.Movements, movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Items recientes y caché
// ──────────────────────────────────────────────────────────────────────────────

func TestGetRecentSaleItems_CacheaEInvalidaTrasVender(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	seedProduct(store, "prod-1", "Café molido 500g", 100)
	store.SeedStock("prod-1", testBranchID, 20)
	cache := newFakeCache()
	uc := newSaleUC(store, cache)

	createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(100)},
	})
	assert.Equal(t, 1, cache.deletes, "crear una venta invalida el caché")

	out, err := uc.GetRecentSaleItems(context.Background(), testBranchID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Café molido 500g", out[0].ProductName)
	assert.True(t, out[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, cache.sets, "el primer miss debe poblar el caché")

	// segunda lectura servida desde el caché
	out2, err := uc.GetRecentSaleItems(context.Background(), testBranchID)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
	assert.Equal(t, 1, cache.sets, "el hit no vuelve a escribir")
}

func TestGetTodaySales_FiltraPorFecha(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store)
	store.SeedStock("prod-1", testBranchID, 50)
	uc := newSaleUC(store, nil)

	ayer := time.Now().Add(-48 * time.Hour)
	uc.WithClock(func() time.Time { return ayer })
	createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 1, Price: decimal.NewFromInt(10)},
	})

	uc.WithClock(time.Now)
	hoy := createSale(t, uc, []dto.SaleItemRequest{
		{ProductID: "prod-1", Quantity: 2, Price: decimal.NewFromInt(10)},
	})

	out, err := uc.GetTodaySales(context.Background(), testBranchID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, hoy.ID, out[0].ID)
}
