package server

import (
	"time"

	apperrors "restaurant-management/internal/shared/errors"
	"restaurant-management/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDLocal = "requestid"

// RequestID assigns every request an X-Request-ID, keeping one the client sent.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	})
}

// RequestContext copies the request id into the user context so loggers and
// store calls downstream can see it. It must run after RequestID.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(requestIDLocal).(string); ok && rid != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// AccessLog writes one zap line per request.
func AccessLog(z *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", responseStatus(c, err)),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("request_id", utils.GetRequestIDOrDefault(c.UserContext(), "")),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch status := responseStatus(c, err); {
		case status >= fiber.StatusInternalServerError:
			z.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			z.Warn("request", fields...)
		default:
			z.Info("request", fields...)
		}
		return err
	}
}

// responseStatus predicts the status the error handler will write for err.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr.HTTPCode
	}
	return fiber.StatusInternalServerError
}
