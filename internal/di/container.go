package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant-management/internal/auth"
	authconfig "restaurant-management/internal/auth/config"
	"restaurant-management/internal/restaurant"
	restaurantconfig "restaurant-management/internal/restaurant/config"
	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const closeTimeout = 30 * time.Second

// Container owns the process-wide collaborators and the modules built on them.
// Stores are attached first, then modules are initialized; Cleanup tears
// everything down in reverse order.
type Container struct {
	mu sync.RWMutex

	// Module instances
	AuthModule       *auth.AuthModule
	RestaurantModule *restaurant.RestaurantModule

	// Store connections
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
	Redis       *redis.Client

	// Shared components
	Logger  logger.Logger
	Bus     *eventbus.EventBus
	Metrics *metrics.Metrics
}

// NewContainer creates a container with its own event bus. m may be nil.
func NewContainer(log logger.Logger, m *metrics.Metrics) *Container {
	if log == nil {
		log = logger.Noop()
	}
	bus := eventbus.NewEventBus(log)
	c := &Container{Logger: log, Bus: bus, Metrics: m}

	sessionLog := log.WithComponent("sessions")
	for _, eventType := range []string{eventbus.EventTypeUserAuthenticated, eventbus.EventTypeUserLoggedOut} {
		bus.Subscribe(eventType, logSessionEvent(sessionLog))
	}
	catalogLog := log.WithComponent("catalog")
	for _, eventType := range []string{eventbus.EventTypeFoodCreated, eventbus.EventTypeFoodUpdated, eventbus.EventTypeFoodDeleted} {
		bus.Subscribe(eventType, logFoodEvent(catalogLog))
	}
	return c
}

func logSessionEvent(log logger.Logger) eventbus.Handler {
	return func(ctx context.Context, event eventbus.Event) error {
		fields := map[string]interface{}{"event": event.Type()}
		if id, ok := event.Data().(interface{ Email() string }); ok && id.Email() != "" {
			fields["user_email"] = id.Email()
		}
		log.WithContext(ctx).WithFields(fields).Info("session event")
		return nil
	}
}

func logFoodEvent(log logger.Logger) eventbus.Handler {
	return func(ctx context.Context, event eventbus.Event) error {
		fields := map[string]interface{}{"event": event.Type()}
		switch data := event.Data().(type) {
		case *model.InsertResult:
			fields["food_id"] = model.IDString(data.InsertedID)
		case map[string]interface{}:
			if id, ok := data["id"].(string); ok {
				fields["food_id"] = id
			}
		}
		log.WithContext(ctx).WithFields(fields).Info("food event")
		return nil
	}
}

// UseMongo attaches the document store.
func (c *Container) UseMongo(client *mongo.Client, databaseName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoClient = client
	c.MongoDB = client.Database(databaseName)
}

// UseRedis attaches the order stream client.
func (c *Container) UseRedis(client *redis.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Redis = client
}

// InitializeAuth initializes the session module
func (c *Container) InitializeAuth(cfg *authconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	authModule, err := auth.NewAuthModule(cfg, c.Logger, c.Bus, c.Metrics)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = authModule
	return nil
}

// InitializeRestaurant initializes the restaurant module on the attached
// MongoDB database.
func (c *Container) InitializeRestaurant(cfg *restaurantconfig.Config) error {
	c.mu.RLock()
	db := c.MongoDB
	c.mu.RUnlock()

	if db == nil {
		return errors.New("MongoDB must be attached before the restaurant module")
	}
	return c.InitializeRestaurantWith(restaurant.MongoRepositories(db, cfg), cfg)
}

// InitializeRestaurantWith initializes the restaurant module on repos.
func (c *Container) InitializeRestaurantWith(repos restaurant.Repositories, cfg *restaurantconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	restaurantModule, err := restaurant.NewRestaurantModule(repos, cfg, restaurant.Dependencies{
		Logger:  c.Logger,
		Bus:     c.Bus,
		Metrics: c.Metrics,
		Redis:   c.Redis,
	})
	if err != nil {
		return fmt.Errorf("failed to create restaurant module: %w", err)
	}
	c.RestaurantModule = restaurantModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetRestaurantModule returns the restaurant module instance
func (c *Container) GetRestaurantModule() *restaurant.RestaurantModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RestaurantModule
}

// Modules reports the state of each module for the health endpoint.
func (c *Container) Modules() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := func(ok bool) string {
		if ok {
			return "initialized"
		}
		return "disabled"
	}
	rm := c.RestaurantModule
	return map[string]string{
		"auth":         state(c.AuthModule != nil),
		"restaurant":   state(rm != nil),
		"order_feed":   state(rm != nil && rm.OrderFeed() != nil),
		"order_stream": state(rm != nil && rm.StreamingOrders()),
	}
}

// HealthCheck pings the attached stores.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoClient != nil {
		if err := c.MongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup stops the modules and closes the stores, in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.RestaurantModule != nil {
		if err := c.RestaurantModule.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop restaurant module: %w", err))
		}
		c.RestaurantModule = nil
	}

	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
		c.Redis = nil
	}

	if c.MongoClient != nil {
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disconnect MongoDB: %w", err))
		}
		c.MongoClient = nil
		c.MongoDB = nil
	}

	return errors.Join(errs...)
}

// Close shuts the container down with a timeout.
func (c *Container) Close() error {
	c.Logger.Info("closing container resources")

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
		return err
	}

	c.Logger.Info("container resources closed")
	return nil
}
