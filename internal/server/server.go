package server

import (
	"context"
	"time"

	"catalog/internal/docs"
	"catalog/internal/handlers"
	"catalog/internal/logger"
	"catalog/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIPrefix is the path every product route and the docs are mounted under.
const APIPrefix = "/api"

const healthTimeout = 2 * time.Second

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

// Options holds everything the HTTP app is assembled from.
type Options struct {
	AppName  string
	Log      *zap.Logger
	Products *handlers.ProductHandler
	// Health is nil for stores that are always available.
	Health HealthCheck
	// Metrics is nil when metrics are disabled.
	Metrics *metrics.HTTPMetrics
}

// New builds the Fiber app with middleware, the /api routes, health and
// metrics endpoints.
func New(opts Options) *fiber.App {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "catalog"
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    logger.RequestIDHeader,
		Generator: uuid.NewString,
	}))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}
	app.Use(logger.Middleware(log))
	app.Use(recover.New())

	api := app.Group(APIPrefix)
	docs.Register(api, APIPrefix)
	opts.Products.RegisterRoutes(api)

	app.Get("/health", healthHandler(opts.Health, log))
	if opts.Metrics != nil {
		app.Get("/metrics", opts.Metrics.Handler())
	}

	return app
}

func healthHandler(check HealthCheck, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		body := fiber.Map{
			"status":   "healthy",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "up",
		}

		if check != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := check(ctx); err != nil {
				log.Warn("health check failed", zap.Error(err))
				status = fiber.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = "down"
			}
		}

		return c.Status(status).JSON(body)
	}
}
