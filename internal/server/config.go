package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds server configuration
type Config struct {
	Host           string        `env:"SERVER_HOST" envDefault:""`
	Port           string        `env:"PORT" envDefault:"5000"`
	AppName        string        `env:"APP_NAME" envDefault:"Restaurant Management API"`
	Environment    string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins string        `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:5174"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout    time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Client addresses come from ProxyHeader only when the peer is one of
	// TrustedProxies; otherwise the socket address is used.
	ProxyHeader    string   `env:"PROXY_HEADER" envDefault:""`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load server configuration from environment: " + err.Error())
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return nil, errors.New("port cannot be empty")
	}
	return cfg, nil
}

// Address is the listen address, e.g. ":5000".
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction reports whether the process runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
