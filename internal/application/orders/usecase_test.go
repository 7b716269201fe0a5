package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/apptest"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/orders"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

const testCustomerID = "cust-001"

func seedBranch(store *apptest.Store, id, code string) {
	store.Branches[id] = &entity.Branch{
		ID: id, Code: code, Name: "Sucursal " + code, IsActive: true,
		CreatedAt: time.Now(),
	}
}

func seedProduct(store *apptest.Store, id string, price float64) {
	store.Products[id] = &entity.Product{
		ID:                    id,
		Name:                  "Producto " + id,
		IsActive:              true,
		SalesRateIncDisAndTax: decimal.NewFromFloat(price),
	}
}

func newOrderUC(store *apptest.Store) *orders.OrderUseCase {
	ledger := stock.NewLedgerUseCase(
		apptest.NewTxRunner(store),
		&apptest.StockRepo{S: store},
		&apptest.MovementRepo{S: store},
	)
	return orders.NewOrderUseCase(
		apptest.NewTxRunner(store), ledger,
		&apptest.OrderRepo{S: store},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_EligeSucursalYCreaVentaEspejo(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	seedProduct(store, "prod-2", 50)
	store.SeedStock("prod-1", "b1", 10)
	store.SeedStock("prod-2", "b1", 10)
	uc := newOrderUC(store)

	out, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	order := out.Order
	assert.Equal(t, "b1", order.BranchID)
	assert.Equal(t, entity.OrderStatusPENDING, order.Status)
	assert.Contains(t, order.OrderNumber, "ORD-")
	// precio siempre de catálogo: 2*100 + 1*50
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(250)))

	// venta espejo en la misma sucursal, COMPLETED y pagada
	sale := out.Sale
	require.NotNil(t, sale)
	assert.Equal(t, "b1", sale.BranchID)
	assert.Equal(t, entity.SaleStatusCOMPLETED, sale.Status)
	assert.Equal(t, entity.PaymentStatusPAID, sale.PaymentStatus)
	assert.True(t, sale.TotalAmount.Equal(order.TotalAmount))

	// stock descontado de inmediato con movimientos referenciando la orden
	assert.Equal(t, int64(8), store.StockQty("prod-1", "b1"))
	assert.Equal(t, int64(9), store.StockQty("prod-2", "b1"))
	require.Len(t, store.Movements, 2)
	for _, mov := range store.Movements {
		assert.Equal(t, entity.ReferenceTypeOrder, mov.ReferenceType)
		assert.Equal(t, order.ID, mov.ReferenceID)
	}
}

func TestCreateOrder_IgnoraPrecioDelCliente(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 99.99)
	store.SeedStock("prod-1", "b1", 5)
	uc := newOrderUC(store)

	out, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, out.Order.TotalAmount.Equal(decimal.NewFromFloat(99.99)))
}

func TestCreateOrder_EmpateDeSucursales_GanaCodigoMasBajo(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b-norte", "1002")
	seedBranch(store, "b-centro", "1001")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b-norte", 10)
	store.SeedStock("prod-1", "b-centro", 10)
	uc := newOrderUC(store)

	out, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "b-centro", out.Order.BranchID)
}

func TestCreateOrder_SucursalDebeCubrirTodosLosProductos(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedBranch(store, "b2", "1001")
	seedProduct(store, "prod-1", 100)
	seedProduct(store, "prod-2", 50)
	// b1 tiene prod-1, b2 tiene prod-2: ninguna cubre ambos
	store.SeedStock("prod-1", "b1", 10)
	store.SeedStock("prod-2", "b2", 10)
	uc := newOrderUC(store)

	_, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-1", Quantity: 1},
			{ProductID: "prod-2", Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "ninguna sucursal tiene stock suficiente")
	assert.Equal(t, int64(10), store.StockQty("prod-1", "b1"))
	assert.Equal(t, int64(10), store.StockQty("prod-2", "b2"))
}

func TestCreateOrder_LineasDuplicadasSeAcumulan(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	// 3 en stock, pero la orden pide 2+2 del mismo producto
	store.SeedStock("prod-1", "b1", 3)
	uc := newOrderUC(store)

	_, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-1", Quantity: 2},
			{ProductID: "prod-1", Quantity: 2},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ProductoInactivo_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.Products["prod-1"].IsActive = false
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	_, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_ReponeStockConMovimientosCompensatorios(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	created, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), store.StockQty("prod-1", "b1"))

	out, err := uc.CancelOrder(context.Background(), created.Order.ID, testCustomerID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCANCELLED, out.Status)
	assert.Equal(t, int64(10), store.StockQty("prod-1", "b1"))

	last := store.Movements[len(store.Movements)-1]
	assert.Equal(t, entity.MovementTypeRETURN, last.MovementType)
	assert.Equal(t, entity.ReferenceTypeOrderCancel, last.ReferenceType)
	assert.Equal(t, created.Order.ID, last.ReferenceID)
	assert.Equal(t, int64(7), last.PreviousQty)
	assert.Equal(t, int64(10), last.NewQty)
}

func TestCancelOrder_YaCancelada_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	created, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 3}},
	})
	require.NoError(t, err)
	_, err = uc.CancelOrder(context.Background(), created.Order.ID, testCustomerID)
	require.NoError(t, err)

	_, err = uc.CancelOrder(context.Background(), created.Order.ID, testCustomerID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), store.StockQty("prod-1", "b1"), "no debe reponerse dos veces")
}

func TestCancelOrder_Completada_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	created, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.UpdateOrderStatus(context.Background(), created.Order.ID, entity.OrderStatusCOMPLETED)
	require.NoError(t, err)

	_, err = uc.CancelOrder(context.Background(), created.Order.ID, testCustomerID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateOrderStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrderStatus_RechazaCancelledYEstadosInvalidos(t *testing.T) {
	store := apptest.NewStore()
	uc := newOrderUC(store)

	_, err := uc.UpdateOrderStatus(context.Background(), "o1", entity.OrderStatusCANCELLED)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelación de orden")

	_, err = uc.UpdateOrderStatus(context.Background(), "o1", "ENVIADA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderStatus_DesdeCancelada_Falla(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	created, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CancelOrder(context.Background(), created.Order.ID, testCustomerID)
	require.NoError(t, err)

	_, err = uc.UpdateOrderStatus(context.Background(), created.Order.ID, entity.OrderStatusPROCESSING)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUserOrder_DeOtroCliente_RetornaForbidden(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 10)
	uc := newOrderUC(store)

	created, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.GetUserOrder(context.Background(), "otro-cliente", created.Order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.GetUserOrder(context.Background(), testCustomerID, created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Order.ID, out.ID)
}

func TestGetUserOrders_FiltraPorEstado(t *testing.T) {
	store := apptest.NewStore()
	seedBranch(store, "b1", "1000")
	seedProduct(store, "prod-1", 100)
	store.SeedStock("prod-1", "b1", 50)
	uc := newOrderUC(store)

	first, err := uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CreateOrder(context.Background(), testCustomerID, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = uc.CancelOrder(context.Background(), first.Order.ID, testCustomerID)
	require.NoError(t, err)

	all, err := uc.GetUserOrders(context.Background(), testCustomerID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := uc.GetUserOrders(context.Background(), testCustomerID, entity.OrderStatusPENDING)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.NotEqual(t, first.Order.ID, pending[0].ID)
}
