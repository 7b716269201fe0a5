package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/orders"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router. Uploader puede ser nil cuando no hay
// bucket configurado; en ese caso la ruta de imágenes no se registra.
type RouterDeps struct {
	StockUC    *stock.LedgerUseCase
	SaleUC     *sales.SaleUseCase
	OrderUC    *orders.OrderUseCase
	ProductUC  *usecase.ProductUseCase
	BranchUC   *usecase.BranchUseCase
	CategoryUC *usecase.CategoryUseCase
	CustomerUC *usecase.CustomerUseCase
	CashFlowUC *usecase.CashFlowUseCase
	AuthUC     *auth.AuthUseCase
	Uploader   *storage.ImageUploader
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth de empleados (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Registro y login de clientes (público)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	api.Post("/customers/register", customerHandler.Register)
	api.Post("/customers/login", customerHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Branches (personal)
	branches := protected.Group("/branches", RequireStaff())
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id", branchHandler.Update)
	branches.Patch("/:id/status", branchHandler.ToggleStatus)

	// Products (personal)
	products := protected.Group("/products", RequireStaff())
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	if deps.Uploader != nil {
		uploadHandler := NewUploadHandler(deps.Uploader, deps.ProductUC)
		products.Post("/:id/image", uploadHandler.UploadProductImage)
	}

	// Categories (personal)
	categories := protected.Group("/categories", RequireStaff())
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Stock (personal)
	stockGroup := protected.Group("/stock", RequireStaff())
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/", stockHandler.Create)
	stockGroup.Post("/adjust", stockHandler.Adjust)
	stockGroup.Get("/branch/:branchId", stockHandler.ListByBranch)
	stockGroup.Get("/branch/:branchId/movements", stockHandler.Movements)

	// Sales (personal). Las rutas fijas van antes que :saleId.
	salesGroup := protected.Group("/sales", RequireStaff())
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/today", saleHandler.Today)
	salesGroup.Get("/recent-items", saleHandler.RecentItems)
	salesGroup.Get("/:saleId", saleHandler.GetByID)
	salesGroup.Get("/:saleId/receipt", saleHandler.Receipt)
	salesGroup.Post("/:saleId/refund", saleHandler.Refund)

	// Customers (personal)
	customers := protected.Group("/customers", RequireStaff())
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Cashflows y gastos (personal)
	cashFlowHandler := NewCashFlowHandler(deps.CashFlowUC)
	cashflows := protected.Group("/cashflows", RequireStaff())
	cashflows.Post("/", cashFlowHandler.Create)
	cashflows.Get("/", cashFlowHandler.List)
	expenses := protected.Group("/expenses", RequireStaff())
	expenses.Post("/", cashFlowHandler.CreateExpense)
	expenses.Get("/", cashFlowHandler.ListExpenses)

	// Orders: clientes crean, consultan y cancelan; el personal cambia estados.
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Patch("/:orderId/status", RequireStaff(), orderHandler.UpdateStatus)
	ordersGroup.Post("/", RequireCustomer(), orderHandler.Create)
	ordersGroup.Get("/", RequireCustomer(), orderHandler.List)
	ordersGroup.Get("/:orderId", RequireCustomer(), orderHandler.GetByID)
	ordersGroup.Post("/:orderId/cancel", RequireCustomer(), orderHandler.Cancel)
}
