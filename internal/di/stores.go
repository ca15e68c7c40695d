package di

import (
	"context"
	"fmt"

	restaurantconfig "restaurant-management/internal/restaurant/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClientOptions pins the Stable API v1 and decodes nested documents as
// maps so they serialize as JSON objects.
func MongoClientOptions(uri string) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	return options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
}

// ConnectMongo connects to MongoDB and pings the deployment.
func ConnectMongo(ctx context.Context, cfg *restaurantconfig.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, MongoClientOptions(cfg.ConnectionURI()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// RedisOptions builds the client options of the order stream.
func RedisOptions(cfg *restaurantconfig.Config) *redis.Options {
	return &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// ConnectRedis connects to Redis and pings it.
func ConnectRedis(ctx context.Context, cfg *restaurantconfig.Config) (*redis.Client, error) {
	client := redis.NewClient(RedisOptions(cfg))
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
