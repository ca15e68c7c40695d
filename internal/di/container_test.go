package di

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	authconfig "restaurant-management/internal/auth/config"
	"restaurant-management/internal/auth/domain/model"
	"restaurant-management/internal/restaurant"
	restaurantconfig "restaurant-management/internal/restaurant/config"
	restaurantmodel "restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/testutil"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func authConfig() *authconfig.Config {
	return &authconfig.Config{
		TokenSecret:    "test-secret",
		TokenTTL:       time.Hour,
		CookieName:     "token",
		CookiePath:     "/",
		IssueRateLimit: 10,
	}
}

func restaurantConfig() *restaurantconfig.Config {
	return &restaurantconfig.Config{
		MongoURI:          "mongodb://localhost:27017",
		DatabaseName:      "restaurant-management",
		RedisAddr:         "cache:6380",
		RedisPassword:     "secret",
		RedisDB:           2,
		OrderStream:       "orders:placed",
		OrderStreamMaxLen: 100,
		OrderFeedBuffer:   4,
	}
}

func memoryRepositories() restaurant.Repositories {
	return restaurant.Repositories{
		Foods:   testutil.NewMemoryFoodRepository(),
		Orders:  testutil.NewMemoryOrderRepository(),
		Gallery: testutil.NewMemoryCollection(),
		Users:   testutil.NewMemoryCollection(),
	}
}

func TestContainer_Lifecycle(t *testing.T) {
	c := NewContainer(logger.Noop(), metrics.New())

	assert.Equal(t, map[string]string{
		"auth":         "disabled",
		"restaurant":   "disabled",
		"order_feed":   "disabled",
		"order_stream": "disabled",
	}, c.Modules())

	require.NoError(t, c.InitializeAuth(authConfig()))
	require.NoError(t, c.InitializeRestaurantWith(memoryRepositories(), restaurantConfig()))

	assert.NotNil(t, c.GetAuthModule())
	assert.NotNil(t, c.GetRestaurantModule())
	assert.Equal(t, "initialized", c.Modules()["auth"])
	assert.Equal(t, "initialized", c.Modules()["order_feed"])
	assert.Equal(t, "disabled", c.Modules()["order_stream"])
	assert.Equal(t, 1, c.Bus.SubscriberCount(eventbus.EventTypeOrderPlaced))

	assert.NoError(t, c.HealthCheck(context.Background()))
	require.NoError(t, c.Close())

	assert.Nil(t, c.GetAuthModule())
	assert.Nil(t, c.GetRestaurantModule())
	assert.Equal(t, 0, c.Bus.SubscriberCount(eventbus.EventTypeOrderPlaced))
}

func TestContainer_InitializeAuthRejectsMissingSecret(t *testing.T) {
	c := NewContainer(nil, nil)
	cfg := authConfig()
	cfg.TokenSecret = ""

	assert.Error(t, c.InitializeAuth(cfg))
	assert.Nil(t, c.GetAuthModule())
}

func TestContainer_InitializeRestaurantRequiresMongo(t *testing.T) {
	c := NewContainer(nil, nil)

	err := c.InitializeRestaurant(restaurantConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MongoDB")
}

func TestContainer_LogsSessionEvents(t *testing.T) {
	var buf bytes.Buffer
	c := NewContainer(logger.NewLoggerWithOutput("info", "json", &buf), nil)

	event := eventbus.NewEvent(eventbus.EventTypeUserAuthenticated, model.Identity{"email": "chef@example.com"}, "auth")
	require.NoError(t, c.Bus.Publish(context.Background(), event))

	assert.Contains(t, buf.String(), "session event")
	assert.Contains(t, buf.String(), "chef@example.com")
	assert.Contains(t, buf.String(), eventbus.EventTypeUserAuthenticated)
}

// lockedBuffer guards a buffer written by background event handlers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestContainer_LogsFoodEvents(t *testing.T) {
	var buf lockedBuffer
	c := NewContainer(logger.NewLoggerWithOutput("info", "json", &buf), nil)
	require.NoError(t, c.InitializeRestaurantWith(memoryRepositories(), restaurantConfig()))
	defer c.Close()

	app := fiber.New()
	c.GetRestaurantModule().RegisterRoutes(app, nil)

	req := httptest.NewRequest(http.MethodPost, "/foods", strings.NewReader(`{"name":"Pasta","price":10}`))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res restaurantmodel.InsertResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	// food events are published in the background
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "food event")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, buf.String(), eventbus.EventTypeFoodCreated)
	assert.Contains(t, buf.String(), res.InsertedID.(string))
}

func TestMongoClientOptions(t *testing.T) {
	opts := MongoClientOptions("mongodb://localhost:27017")

	require.NotNil(t, opts.ServerAPIOptions)
	assert.Equal(t, options.ServerAPIVersion1, opts.ServerAPIOptions.ServerAPIVersion)
	require.NotNil(t, opts.ServerAPIOptions.Strict)
	assert.True(t, *opts.ServerAPIOptions.Strict)
	require.NotNil(t, opts.BSONOptions)
	assert.True(t, opts.BSONOptions.DefaultDocumentM)
	assert.Equal(t, []string{"localhost:27017"}, opts.Hosts)
}

func TestRedisOptions(t *testing.T) {
	opts := RedisOptions(restaurantConfig())

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}
