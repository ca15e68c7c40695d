package restaurant

import (
	"context"
	"fmt"

	restauranthttp "restaurant-management/internal/restaurant/adapter/http"
	"restaurant-management/internal/restaurant/adapter/persistence"
	"restaurant-management/internal/restaurant/adapter/persistence/mongodb"
	"restaurant-management/internal/restaurant/config"
	"restaurant-management/internal/restaurant/domain/repository"
	"restaurant-management/internal/restaurant/usecase"
	"restaurant-management/internal/shared/eventbus"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups the store ports of the module.
type Repositories struct {
	Foods   repository.FoodRepository
	Orders  repository.OrderRepository
	Gallery repository.GalleryRepository
	Users   repository.UserRepository
}

// MongoRepositories binds the repositories to the collections of db.
func MongoRepositories(db *mongo.Database, cfg *config.Config) Repositories {
	return Repositories{
		Foods:   mongodb.NewFoodRepository(mongodb.NewMongoCollectionAdapter(db.Collection(cfg.FoodsCollection))),
		Orders:  mongodb.NewOrderRepository(mongodb.NewMongoCollectionAdapter(db.Collection(cfg.OrdersCollection))),
		Gallery: mongodb.NewGalleryRepository(mongodb.NewMongoCollectionAdapter(db.Collection(cfg.GalleryCollection))),
		Users:   mongodb.NewUserRepository(mongodb.NewMongoCollectionAdapter(db.Collection(cfg.UsersCollection))),
	}
}

// Dependencies are the process-wide collaborators. Bus, Metrics and Redis may be nil.
type Dependencies struct {
	Logger  logger.Logger
	Bus     eventbus.Bus
	Metrics *metrics.Metrics
	Redis   *redis.Client
}

// RestaurantModule wires the food, order, gallery and user resources.
type RestaurantModule struct {
	handler *restauranthttp.RestaurantHTTPHandler
	feed    *usecase.OrderFeed
	stream  *persistence.RedisOrderStream
	bus     eventbus.Bus
	config  *config.Config
	log     logger.Logger
}

// NewRestaurantModule creates a new restaurant module instance
func NewRestaurantModule(repos Repositories, cfg *config.Config, deps Dependencies) (*RestaurantModule, error) {
	if repos.Foods == nil || repos.Orders == nil || repos.Gallery == nil || repos.Users == nil {
		return nil, fmt.Errorf("restaurant module requires all four repositories")
	}
	log := deps.Logger
	if log == nil {
		log = logger.Noop()
	}

	m := &RestaurantModule{config: cfg, bus: deps.Bus, log: log.WithComponent("restaurant")}

	if deps.Bus != nil {
		m.feed = usecase.NewOrderFeed(cfg.OrderFeedBuffer, log)
		deps.Bus.Subscribe(eventbus.EventTypeOrderPlaced, m.feed.HandleOrderPlaced)

		if deps.Redis != nil {
			m.stream = persistence.NewRedisOrderStream(deps.Redis, cfg.OrderStream, cfg.OrderStreamMaxLen, log)
			deps.Bus.Subscribe(eventbus.EventTypeOrderPlaced, m.stream.HandleOrderPlaced)
		}
	}

	m.handler = restauranthttp.NewRestaurantHTTPHandler(
		usecase.NewFoodUsecase(repos.Foods, deps.Bus, log),
		usecase.NewOrderUsecase(repos.Orders, repos.Foods, deps.Bus, deps.Metrics, log),
		usecase.NewGalleryUsecase(repos.Gallery),
		usecase.NewUserUsecase(repos.Users),
		m.feed,
		log,
	)
	return m, nil
}

// RegisterRoutes mounts the resource routes. guard runs before owner-scoped
// routes when non-nil.
func (rm *RestaurantModule) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	restauranthttp.RegisterRoutes(router, rm.handler.Routes(), guard)
}

// OrderFeed returns the live order feed, nil without an event bus.
func (rm *RestaurantModule) OrderFeed() *usecase.OrderFeed {
	return rm.feed
}

// StreamingOrders reports whether placed orders are appended to Redis.
func (rm *RestaurantModule) StreamingOrders() bool {
	return rm.stream != nil
}

// Stop disconnects live feed subscribers.
func (rm *RestaurantModule) Stop(ctx context.Context) error {
	if rm.bus != nil {
		rm.bus.Unsubscribe(eventbus.EventTypeOrderPlaced)
	}
	if rm.feed != nil {
		rm.feed.Close()
	}
	return nil
}
