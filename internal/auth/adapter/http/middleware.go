package http

import (
	"context"
	"time"

	"restaurant-management/internal/auth/domain/model"
	"restaurant-management/internal/auth/usecase"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const unauthorizedMessage = "unauthorized access"

// AuthMiddleware guards routes with the session cookie.
type AuthMiddleware struct {
	usecase    usecase.SessionUsecaseInterface
	cookieName string
	log        logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.SessionUsecaseInterface, cookieName string, log logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.Noop()
	}
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
		log:        log.WithComponent("auth_guard"),
	}
}

// Authenticate verifies token and returns ctx extended with the identity.
// It is the transport-independent half of Protect.
func (m *AuthMiddleware) Authenticate(ctx context.Context, token string) (context.Context, model.Identity, error) {
	identity, err := m.usecase.ValidateToken(ctx, token)
	if err != nil {
		return ctx, nil, err
	}
	return utils.WithIdentity(ctx, identity), identity, nil
}

// Protect returns middleware that requires a valid session cookie. The token
// is read from the cookie only; headers and query parameters are ignored.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return unauthorized(c)
		}

		ctx, identity, err := m.Authenticate(c.UserContext(), token)
		if err != nil {
			m.log.WithContext(c.UserContext()).Debugf("rejected %s %s: %v", c.Method(), c.Path(), err)
			return unauthorized(c)
		}

		c.SetUserContext(ctx)
		m.log.WithContext(ctx).Debugf("session %s admitted to %s", identity.Email(), c.Path())
		return c.Next()
	}
}

// RateLimiter limits session issuance per client address.
func (m *AuthMiddleware) RateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		// c.IP honours the app's ProxyHeader only for trusted proxies.
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": unauthorizedMessage,
	})
}
