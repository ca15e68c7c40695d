package server

import (
	"context"
	"errors"
	"time"

	apperrors "restaurant-management/internal/shared/errors"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const greeting = "Hello Bangladesh"

// HealthChecker reports whether backing services are reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Options carries the process-wide collaborators of the HTTP server. Any of
// them may be nil.
type Options struct {
	Logger    logger.Logger
	AccessLog *zap.Logger
	Metrics   *metrics.Metrics
	Health    HealthChecker
	Modules   map[string]string
}

// New builds the Fiber app with the shared middleware chain and the root,
// health and metrics routes. Module routes are registered by the caller.
func New(cfg *Config, opts Options) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler(log),

		ProxyHeader:             cfg.ProxyHeader,
		EnableTrustedProxyCheck: cfg.ProxyHeader != "",
		TrustedProxies:          cfg.TrustedProxies,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(RequestID(), RequestContext())
	if opts.AccessLog != nil {
		app.Use(AccessLog(opts.AccessLog))
	}
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(greeting)
	})
	app.Get("/health", healthHandler(opts.Health, opts.Modules, log))

	return app
}

func healthHandler(health HealthChecker, modules map[string]string, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if health != nil {
			healthCtx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
			defer cancel()

			if err := health.HealthCheck(healthCtx); err != nil {
				log.Errorf("Health check failed: %v", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":  "UNHEALTHY",
					"error":   err.Error(),
					"message": "One or more services are unhealthy",
				})
			}
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"message":   "Restaurant Management API is running",
			"timestamp": time.Now().UTC(),
			"modules":   modules,
		})
	}
}

// ErrorHandler maps handler errors to responses. AppErrors keep their HTTP
// code, *fiber.Error keeps its code and message, anything else is a 500
// with a fixed body.
func ErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < fiber.StatusInternalServerError {
			body := fiber.Map{"error": appErr.Message, "type": appErr.Type}
			if appErr.Code != "" {
				body["code"] = appErr.Code
			}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}
			return c.Status(appErr.HTTPCode).JSON(body)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.WithContext(c.UserContext()).Errorf("HTTP Error: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}
}
