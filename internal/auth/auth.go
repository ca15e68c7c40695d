package auth

import (
	"fmt"

	authhttp "restaurant-management/internal/auth/adapter/http"
	"restaurant-management/internal/auth/adapter/security"
	"restaurant-management/internal/auth/config"
	"restaurant-management/internal/auth/domain/repository"
	"restaurant-management/internal/auth/usecase"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
)

// AuthModule represents the complete session module
type AuthModule struct {
	tokenSvc   repository.TokenService
	usecase    usecase.SessionUsecaseInterface
	handler    *authhttp.SessionHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates a new session module instance. publisher and m may be nil.
func NewAuthModule(cfg *config.Config, log logger.Logger, publisher eventbus.Publisher, m *metrics.Metrics) (*AuthModule, error) {
	if log == nil {
		log = logger.Noop()
	}

	tokenSvc, err := security.NewJWTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	sessionUsecase := usecase.NewSessionUsecase(tokenSvc, publisher, m, log)

	handler := authhttp.NewSessionHTTPHandler(sessionUsecase, authhttp.CookieSettings{
		Name:     cfg.CookieName,
		Path:     cfg.CookiePath,
		Domain:   cfg.CookieDomain,
		MaxAge:   cfg.TokenTTL,
		Secure:   cfg.CookieSecure(),
		SameSite: cfg.CookieSameSite(),
	})

	return &AuthModule{
		tokenSvc:   tokenSvc,
		usecase:    sessionUsecase,
		handler:    handler,
		middleware: authhttp.NewAuthMiddleware(sessionUsecase, cfg.CookieName, log),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers POST /jwt and GET /logout with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupSessionRoutes(router, am.middleware, am.config.IssueRateLimit)
}

// GetUsecase returns the session usecase for external access
func (am *AuthModule) GetUsecase() usecase.SessionUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth guard
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// GuardEnabled reports whether owner-scoped resource routes must be guarded.
func (am *AuthModule) GuardEnabled() bool {
	return am.config.GuardEnabled
}

// Stop performs cleanup when the module is shut down. Sessions are stateless.
func (am *AuthModule) Stop() error {
	return nil
}
