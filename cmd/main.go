package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	authconfig "restaurant-management/internal/auth/config"
	"restaurant-management/internal/di"
	restaurantconfig "restaurant-management/internal/restaurant/config"
	"restaurant-management/internal/server"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

const connectTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	serverCfg, err := server.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load server configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithConfig(serverCfg.LogLevel, logFormat(serverCfg))
	if envErr != nil {
		appLogger.Debugf("no .env file loaded: %v", envErr)
	}

	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		appLogger.Fatalf("Failed to load auth configuration: %v", err)
	}
	restaurantCfg, err := restaurantconfig.LoadConfig()
	if err != nil {
		appLogger.Fatalf("Failed to load restaurant configuration: %v", err)
	}
	appLogger.Info("Application configuration loaded successfully")

	accessLog, err := logger.NewAccessLogger(serverCfg.LogLevel, serverCfg.IsProduction())
	if err != nil {
		appLogger.Fatalf("Failed to build access logger: %v", err)
	}
	defer func() { _ = accessLog.Sync() }()

	appMetrics := metrics.New()
	container := di.NewContainer(appLogger, appMetrics)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	mongoClient, err := di.ConnectMongo(ctx, restaurantCfg)
	if err != nil {
		appLogger.Fatalf("%v", err)
	}
	container.UseMongo(mongoClient, restaurantCfg.DatabaseName)
	appLogger.Info("MongoDB connection established successfully")

	if restaurantCfg.RedisEnabled {
		redisClient, err := di.ConnectRedis(ctx, restaurantCfg)
		if err != nil {
			appLogger.Fatalf("%v", err)
		}
		container.UseRedis(redisClient)
		appLogger.Infof("Redis connected, placed orders stream to %s", restaurantCfg.OrderStream)
	}

	if err := container.InitializeAuth(authCfg); err != nil {
		appLogger.Fatalf("Failed to initialize auth module: %v", err)
	}
	if err := container.InitializeRestaurant(restaurantCfg); err != nil {
		appLogger.Fatalf("Failed to initialize restaurant module: %v", err)
	}

	app := server.New(serverCfg, server.Options{
		Logger:    appLogger.WithComponent("http"),
		AccessLog: accessLog,
		Metrics:   appMetrics,
		Health:    container,
		Modules:   container.Modules(),
	})

	authModule := container.GetAuthModule()
	authModule.RegisterRoutes(app)

	var guard fiber.Handler
	if authModule.GuardEnabled() {
		guard = authModule.GetMiddleware().Protect()
		appLogger.Info("Session guard enabled on owner-scoped routes")
	}
	container.GetRestaurantModule().RegisterRoutes(app, guard)

	serverAddr := serverCfg.Address()
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.Errorf("Server failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownGrace)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
}

func logFormat(cfg *server.Config) string {
	if cfg.IsProduction() || os.Getenv("LOG_FORMAT") == "json" {
		return "json"
	}
	return "text"
}
