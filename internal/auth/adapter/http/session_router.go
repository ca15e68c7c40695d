package http

import (
	"time"

	"restaurant-management/internal/auth/domain/model"
	"restaurant-management/internal/auth/usecase"

	"github.com/gofiber/fiber/v2"
)

// CookieSettings describes the session cookie.
type CookieSettings struct {
	Name     string
	Path     string
	Domain   string
	MaxAge   time.Duration
	Secure   bool
	SameSite string
}

// SessionHTTPHandler handles POST /jwt and GET /logout.
type SessionHTTPHandler struct {
	usecase usecase.SessionUsecaseInterface
	cookie  CookieSettings
}

// NewSessionHTTPHandler creates a new session HTTP handler
func NewSessionHTTPHandler(uc usecase.SessionUsecaseInterface, cookie CookieSettings) *SessionHTTPHandler {
	return &SessionHTTPHandler{usecase: uc, cookie: cookie}
}

// SetupSessionRoutes registers the session routes. They are never guarded.
func (h *SessionHTTPHandler) SetupSessionRoutes(router fiber.Router, middleware *AuthMiddleware, issueLimit int) {
	if middleware != nil && issueLimit > 0 {
		router.Post("/jwt", middleware.RateLimiter(issueLimit), h.IssueToken)
	} else {
		router.Post("/jwt", h.IssueToken)
	}
	router.Get("/logout", h.Logout)
}

// IssueToken signs the request body as identity claims and sets the cookie.
func (h *SessionHTTPHandler) IssueToken(c *fiber.Ctx) error {
	identity := model.Identity{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&identity); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	token, err := h.usecase.IssueSession(c.UserContext(), identity)
	if err != nil {
		return err
	}

	h.setCookie(c, token)
	return c.JSON(fiber.Map{"success": true})
}

// Logout clears the session cookie. It always succeeds.
func (h *SessionHTTPHandler) Logout(c *fiber.Ctx) error {
	var identity model.Identity
	if token := c.Cookies(h.cookie.Name); token != "" {
		identity, _ = h.usecase.ValidateToken(c.UserContext(), token)
	}
	h.usecase.EndSession(c.UserContext(), identity)

	h.clearCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *SessionHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		Expires:  time.Now().Add(h.cookie.MaxAge),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
	})
}

func (h *SessionHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
	})
}
