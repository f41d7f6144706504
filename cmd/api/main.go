package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tofi-shop/internal/cache"
	"tofi-shop/internal/config"
	"tofi-shop/internal/database"
	"tofi-shop/internal/delivery"
	"tofi-shop/internal/events"
	"tofi-shop/internal/handler"
	"tofi-shop/internal/repository"
	"tofi-shop/internal/router"
	"tofi-shop/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting tofi.ch API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize Redis cache (optional)
	var productCache *cache.Cache
	if cfg.Redis.Enabled {
		productCache, err = cache.New(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		} else {
			defer productCache.Close()
		}
	} else {
		logger.Info().Msg("Redis cache disabled")
	}

	// Initialize event publisher (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to AMQP broker, order events disabled")
		} else {
			publisher = amqpPublisher
		}
	} else {
		logger.Info().Msg("AMQP event publishing disabled")
	}
	defer publisher.Close()

	// Initialize the delivery zone checker, loading zone files from S3 with
	// a local file system fallback
	var zoneChecker delivery.Checker = delivery.NopChecker{}
	if cfg.Delivery.Enabled {
		fileLoader := delivery.NewFileLoader(logger)
		zoneLoader := fileLoader

		if cfg.Delivery.S3Enabled {
			s3Loader, err := delivery.NewS3Loader(ctx, cfg.Delivery.S3Bucket, cfg.Delivery.S3Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
			} else {
				zoneLoader = delivery.NewFallbackLoader(s3Loader, fileLoader, cfg.Delivery.S3Prefix, logger)
			}
		}

		zoneChecker, err = delivery.NewChecker(ctx, delivery.CheckerConfig{ZoneFiles: cfg.Delivery.ZoneFiles}, zoneLoader, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize delivery zone checker: %w", err)
		}
	} else {
		logger.Info().Msg("delivery zone checks disabled, all Swiss zip codes accepted")
	}
	defer zoneChecker.Close()

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo, productCache, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, zoneChecker, publisher, productCache, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	categoryHandler := handler.NewCategoryHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	// Initialize router
	mux := router.New(productHandler, categoryHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
