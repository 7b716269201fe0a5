package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/orders"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/stock"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	infracache "github.com/jhoicas/Ventas-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	cashflowRepo := postgres.NewCashFlowRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de lecturas calientes; sin REDIS_ADDR la API trabaja sin caché.
	var saleCache sales.Cache
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, siguiendo sin caché")
		} else {
			saleCache = redisCache
			defer redisCache.Close()
		}
	}

	ledgerUC := stock.NewLedgerUseCase(txRunner, stockRepo, movementRepo)
	receiptGen := infrapdf.NewMarotoReceiptGenerator()
	saleUC := sales.NewSaleUseCase(
		txRunner, ledgerUC,
		saleRepo, branchRepo, customerRepo, productRepo,
		saleCache, receiptGen,
	)
	orderUC := orders.NewOrderUseCase(txRunner, ledgerUC, orderRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	cashflowUC := usecase.NewCashFlowUseCase(cashflowRepo, expenseRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, usecase.CustomerJWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Subida de imágenes a GCS; sin GCS_BUCKET la ruta no se registra.
	var uploader *storage.ImageUploader
	if cfg.GCS.Bucket != "" {
		uploader, err = storage.NewImageUploader(ctx, cfg.GCS)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de Cloud Storage")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    ledgerUC,
		SaleUC:     saleUC,
		OrderUC:    orderUC,
		ProductUC:  productUC,
		BranchUC:   branchUC,
		CategoryUC: categoryUC,
		CustomerUC: customerUC,
		CashFlowUC: cashflowUC,
		AuthUC:     authUC,
		Uploader:   uploader,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
