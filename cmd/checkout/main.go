package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/config"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/operator"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/server"
	"github.com/DanielPopoola/ficmart-checkout/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"catalog", cfg.Catalog.Variant,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	seed, err := memory.SeedFor(cfg.Catalog.Variant)
	if err != nil {
		logger.Error("invalid catalog variant", "error", err)
		os.Exit(1)
	}

	var (
		catalog  application.CatalogSource = memory.NewCatalogSource(seed)
		attempts application.AttemptRepository
	)

	if cfg.Storage.UsesPostgres() {
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		catalogRepo := postgres.NewCatalogRepository(db.Pool)
		if err := catalogRepo.Seed(ctx, seed); err != nil {
			logger.Error("failed to seed catalog", "error", err)
			os.Exit(1)
		}
		catalog = catalogRepo
		attempts = postgres.NewAttemptRepository(db.Pool)
	} else {
		attempts = memory.NewAttemptRepository()
	}

	items, err := catalog.Load(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	cart, err := domain.NewCartEngine(items)
	if err != nil {
		logger.Error("invalid catalog", "error", err)
		os.Exit(1)
	}

	operatorClient := operator.NewOperatorClient(cfg.Operator)

	checkoutService := services.NewCheckoutService(
		cart,
		operatorClient,
		attempts,
		services.CheckoutConfig{
			Defaults: domain.FormDefaults{
				StoreCode:    cfg.Operator.DefaultStore,
				OperatorCode: cfg.Operator.DefaultCode,
			},
			Strict: !cfg.Primary.IsProduction(),
		},
		logger,
	)

	handler, err := server.NewHandler(ctx, checkoutService, cfg.Server.WriteTimeout, logger)
	if err != nil {
		logger.Error("failed to build http handler", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	notificationWorker := worker.NewNotificationWorker(
		checkoutService,
		cfg.Worker.Interval,
		cfg.Worker.NotificationTTL,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go notificationWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
