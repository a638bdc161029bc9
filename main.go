package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/logger"
	"catalog/internal/metrics"
	"catalog/internal/repositories"
	"catalog/internal/server"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "catalog"

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("server gracefully stopped")
}

// App is the wired service: the HTTP app plus the resources it owns.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	Fiber   *fiber.App
	closers []func() error
}

// NewApp opens the store, connects the optional event broker and assembles
// the HTTP app.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	// --- Initialize Repositories ---
	var (
		productRepo repositories.ProductRepository
		health      server.HealthCheck
	)
	if cfg.DatabaseDriver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
		log.Info("using in-memory product store")
	} else {
		db, err := database.Open(ctx, database.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { return database.Close(db) })
		productRepo = repositories.NewGORMProductRepository(db)
		health = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
		}, log)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, mqClient.Close)
		publisher = mqClient
	} else {
		log.Info("RABBITMQ_URL not set, product events disabled")
	}

	// --- Initialize Services and Handlers ---
	productService := services.NewProductService(productRepo, publisher, log)
	productHandler := handlers.NewProductHandler(productService)

	var httpMetrics *metrics.HTTPMetrics
	if cfg.MetricsEnabled {
		httpMetrics = metrics.NewHTTPMetrics(metrics.Config{
			ServiceName: serviceName,
			Environment: cfg.AppEnv,
		})
	}

	a.Fiber = server.New(server.Options{
		AppName:  serviceName,
		Log:      log,
		Products: productHandler,
		Health:   health,
		Metrics:  httpMetrics,
	})
	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down within the
// configured timeout and releases every resource.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", zap.String("addr", a.cfg.AppPort))
		errCh <- a.Fiber.Listen(a.cfg.AppPort)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		a.log.Info("shutting down server")
		if err := a.Fiber.ShutdownWithTimeout(a.cfg.ShutdownTimeout); err != nil {
			serveErr = fmt.Errorf("failed to shut down server: %w", err)
		}
	}

	return errors.Join(serveErr, a.Close())
}

// Close releases the store and broker connections in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
