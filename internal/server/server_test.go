package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "restaurant-management/internal/shared/errors"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"
	"restaurant-management/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubHealth struct{ err error }

func (s stubHealth) HealthCheck(ctx context.Context) error { return s.err }

func testConfig() *Config {
	return &Config{
		Port:           "5000",
		AppName:        "test",
		AllowedOrigins: "http://localhost:5173,http://localhost:5174",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		IdleTimeout:    time.Second,
	}
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRootGreeting(t *testing.T) {
	app := New(testConfig(), Options{})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello Bangladesh", string(body))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := New(testConfig(), Options{Health: stubHealth{}, Modules: map[string]string{"auth": "initialized"}})

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "HEALTHY", body["status"])
		assert.Equal(t, map[string]interface{}{"auth": "initialized"}, body["modules"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		app := New(testConfig(), Options{Health: stubHealth{err: errors.New("mongodb ping failed")}})

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "UNHEALTHY", decode(t, resp)["status"])
	})
}

func TestErrorHandler(t *testing.T) {
	app := New(testConfig(), Options{Logger: logger.Noop()})
	app.Get("/invalid", func(c *fiber.Ctx) error { return apperrors.NewInvalidIDError("xyz") })
	app.Get("/store", func(c *fiber.Ctx) error { return errors.New("connection reset by peer") })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return apperrors.NewInfrastructureError("mongo down").WithCause(errors.New("x"))
	})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrUpgradeRequired })

	resp, err := app.Test(httptest.NewRequest("GET", "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "invalid id", body["error"])
	assert.Equal(t, "INVALID_ID", body["code"])

	for _, path := range []string{"/store", "/wrapped"} {
		resp, err = app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
		assert.Equal(t, map[string]interface{}{"error": "Internal Server Error"}, decode(t, resp), path)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/no-such-route", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCORSAllowsFrontendWithCredentials(t *testing.T) {
	app := New(testConfig(), Options{})

	req := httptest.NewRequest("OPTIONS", "/foods", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest("OPTIONS", "/foods", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDReachesUserContext(t *testing.T) {
	app := New(testConfig(), Options{})
	app.Get("/rid", func(c *fiber.Ctx) error {
		return c.SendString(utils.GetRequestIDOrDefault(c.UserContext(), "missing"))
	})

	req := httptest.NewRequest("GET", "/rid", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "req-123", string(body))
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest("GET", "/rid", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.NotEqual(t, "missing", string(body))
	assert.Len(t, string(body), 36)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := New(testConfig(), Options{AccessLog: zap.New(core)})
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return apperrors.NewValidationError("nope") })

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(400), entries[1].ContextMap()["status"])
}

func TestMetricsRoute(t *testing.T) {
	app := New(testConfig(), Options{Metrics: metrics.New()})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `restaurant_http_requests_total{method="GET",path="/",status="200"} 1`)
}

func TestConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("PROXY_HEADER", "X-Forwarded-For")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:5173,http://localhost:5174", cfg.AllowedOrigins)
	assert.Equal(t, "X-Forwarded-For", cfg.ProxyHeader)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestNew_ClientIPFromTrustedProxyOnly(t *testing.T) {
	clientIP := func(cfg *Config) string {
		app := New(cfg, Options{})
		app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })

		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.NotEqual(t, "203.0.113.7", clientIP(testConfig()))

	trusted := testConfig()
	trusted.ProxyHeader = fiber.HeaderXForwardedFor
	trusted.TrustedProxies = []string{"0.0.0.0/0"}
	assert.Equal(t, "203.0.113.7", clientIP(trusted))

	untrusted := testConfig()
	untrusted.ProxyHeader = fiber.HeaderXForwardedFor
	untrusted.TrustedProxies = []string{"198.51.100.1"}
	assert.NotEqual(t, "203.0.113.7", clientIP(untrusted))
}
