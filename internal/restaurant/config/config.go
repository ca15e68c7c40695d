package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Config holds the document store and event stream settings of the restaurant module.
type Config struct {
	// MongoDB connection. MongoURI wins; otherwise the Atlas URI is assembled
	// from the credentials and cluster host.
	MongoURI      string `env:"MONGODB_URI" envDefault:""`
	DBUser        string `env:"DB_USER" envDefault:""`
	DBPass        string `env:"DB_PASS" envDefault:""`
	DBClusterHost string `env:"DB_CLUSTER_HOST" envDefault:"cluster0.vfffbgl.mongodb.net"`
	DBAppName     string `env:"DB_APP_NAME" envDefault:"Cluster0"`
	DatabaseName  string `env:"DATABASE_NAME" envDefault:"restaurant-management"`

	// Collections
	FoodsCollection   string `env:"FOODS_COLLECTION" envDefault:"foods"`
	OrdersCollection  string `env:"ORDERS_COLLECTION" envDefault:"orders"`
	GalleryCollection string `env:"GALLERY_COLLECTION" envDefault:"gallery"`
	UsersCollection   string `env:"USERS_COLLECTION" envDefault:"users"`

	// Redis order stream
	RedisEnabled      bool   `env:"REDIS_ENABLED" envDefault:"false"`
	RedisAddr         string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	OrderStream       string `env:"ORDER_STREAM" envDefault:"orders:placed"`
	OrderStreamMaxLen int64  `env:"ORDER_STREAM_MAXLEN" envDefault:"10000"`

	// Live order feed
	OrderFeedBuffer int `env:"ORDER_FEED_BUFFER" envDefault:"16"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load restaurant configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that a store connection can be derived.
func (c *Config) Validate() error {
	if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
		return errors.New("either MONGODB_URI or DB_USER and DB_PASS must be set")
	}
	if strings.TrimSpace(c.DatabaseName) == "" {
		return errors.New("database_name cannot be empty")
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		return errors.New("redis_addr is required when redis is enabled")
	}
	if c.OrderFeedBuffer <= 0 {
		c.OrderFeedBuffer = 16
	}
	return nil
}

// ConnectionURI returns the MongoDB connection string.
func (c *Config) ConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.UserPassword(c.DBUser, c.DBPass).String(), c.DBClusterHost, url.QueryEscape(c.DBAppName))
}
