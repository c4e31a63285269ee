package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/yarntrade/backend/internal/application/catalog"
	financeapp "github.com/yarntrade/backend/internal/application/finance"
	inventoryapp "github.com/yarntrade/backend/internal/application/inventory"
	tradeapp "github.com/yarntrade/backend/internal/application/trade"
	"github.com/yarntrade/backend/internal/infrastructure/config"
	"github.com/yarntrade/backend/internal/infrastructure/event"
	"github.com/yarntrade/backend/internal/infrastructure/logger"
	"github.com/yarntrade/backend/internal/infrastructure/persistence"
	"github.com/yarntrade/backend/internal/interfaces/http/handler"
	"github.com/yarntrade/backend/internal/interfaces/http/middleware"
	"github.com/yarntrade/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting yarn trade backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	colorRepo := persistence.NewGormColorRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	dyeingOrderRepo := persistence.NewGormDyeingOrderRepository(db.DB)
	adjustmentOrderRepo := persistence.NewGormAdjustmentOrderRepository(db.DB)
	stockCheckRepo := persistence.NewGormStockCheckRepository(db.DB)
	receivableRepo := persistence.NewGormAccountReceivableRepository(db.DB)
	payableRepo := persistence.NewGormAccountPayableRepository(db.DB)

	tradeTxScope := persistence.NewGormTradeTransactionScope(db.DB)
	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, colorRepo, batchRepo)
	batchService := catalogapp.NewBatchService(colorRepo, batchRepo)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, tradeTxScope)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, tradeTxScope)
	dyeingOrderService := tradeapp.NewDyeingOrderService(dyeingOrderRepo, batchRepo, colorRepo, productRepo, tradeTxScope)
	adjustmentService := inventoryapp.NewAdjustmentService(adjustmentOrderRepo, inventoryTxScope)
	stockCheckService := inventoryapp.NewStockCheckService(stockCheckRepo, adjustmentOrderRepo, batchRepo, colorRepo, productRepo)
	accountService := financeapp.NewAccountService(receivableRepo, payableRepo)

	// Event bus and settlement handlers. Stocked-in purchases and dyeing
	// orders open payables; stocked-out sales open receivables.
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(financeapp.NewPurchaseStockedInHandler(log, payableRepo))
	eventBus.Subscribe(financeapp.NewSalesStockedOutHandler(log, receivableRepo))
	eventBus.Subscribe(financeapp.NewDyeingStockedInHandler(log, payableRepo))

	productService.SetEventPublisher(eventBus)
	batchService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	salesOrderService.SetEventPublisher(eventBus)
	dyeingOrderService.SetEventPublisher(eventBus)
	adjustmentService.SetEventPublisher(eventBus)
	stockCheckService.SetEventPublisher(eventBus)
	accountService.SetEventPublisher(eventBus)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewHealthHandler(db)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewBatchHandler(batchService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewSalesOrderHandler(salesOrderService)).
		Register(handler.NewDyeingOrderHandler(dyeingOrderService)).
		Register(handler.NewAdjustmentHandler(adjustmentService)).
		Register(handler.NewStockCheckHandler(stockCheckService)).
		Register(handler.NewFinanceHandler(accountService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
