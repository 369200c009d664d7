package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/counter-billing/internal/application/service"
	"github.com/sangkips/counter-billing/internal/config"
	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/infrastructure/catalog"
	"github.com/sangkips/counter-billing/internal/infrastructure/repository"
	"github.com/sangkips/counter-billing/internal/infrastructure/salelog"
	"github.com/sangkips/counter-billing/internal/presentation/http/handler"
	"github.com/sangkips/counter-billing/internal/presentation/http/middleware"
	"github.com/sangkips/counter-billing/internal/presentation/http/routes"
	"github.com/sangkips/counter-billing/pkg/logger"
	"github.com/sangkips/counter-billing/pkg/printer"
)

func main() {
	cfg, envErr := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if envErr != nil {
		zlog.Warn("No .env file loaded, using environment and defaults", zap.Error(envErr))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load catalog; an unreadable source is logged and leaves an empty catalog
	catalogStore := repository.NewCatalogStore()
	_, _ = service.LoadCatalog(ctx, catalogStore, catalog.NewCSVSource(cfg.Catalog.Path), zlog)

	saleLog := salelog.NewFileSaleLog(cfg.SalesLog.Path, cfg.Counter.CurrencySymbol)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(printer.Config{
		Type:     cfg.Printer.Type,
		USBPath:  cfg.Printer.USBPath,
		Address:  cfg.Printer.Address,
		FilePath: cfg.Printer.FilePath,
	})
	if err != nil {
		zlog.Warn("Failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	formatter := service.NewReceiptFormatter(entity.ReceiptHeader{
		StoreName:     cfg.Store.Name,
		Address:       cfg.Store.Address,
		TaxID:         cfg.Store.TaxID,
		Phone:         cfg.Store.Phone,
		Cashier:       cfg.Counter.Cashier,
		CurrencyLabel: cfg.Counter.ReceiptCurrencyLabel,
	})
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, formatter, zlog)
	finalizer := service.NewSaleFinalizer(saleLog, cfg.Counter.BillStart, zlog)
	counter := service.NewCounterService(catalogStore, finalizer, formatter, printerService, service.CounterOptions{
		StoreName:           cfg.Store.Name,
		CounterLabel:        cfg.Counter.Label,
		AutoFinalizeOnPrint: cfg.Counter.AutoFinalizeOnPrint,
	}, zlog)

	handlers := &routes.Handlers{
		Catalog: handler.NewCatalogHandler(counter),
		Counter: handler.NewCounterHandler(counter),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:    cfg,
		Logger: zlog,
		RateLimiter: middleware.NewClientRateLimiter(ctx,
			middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration)),
	})

	zlog.Info("Starting counter",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("addr", cfg.App.Addr()),
		zap.Int("bill_number", finalizer.BillNumber()),
	)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := serve(ctx, srv, shutdownTimeout, zlog); err != nil {
		zlog.Error("Server stopped with error", zap.Error(err))
		return
	}
	zlog.Info("Counter stopped")
}
