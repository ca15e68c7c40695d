package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
)

const environmentProduction = "production"

// Config holds all configuration for the auth module.
type Config struct {
	// Token signing
	TokenSecret string        `env:"ACCESS_TOKEN_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Deployment environment; "production" switches the cookie to Secure + SameSite=None
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Cookie
	CookieName   string `env:"COOKIE_NAME" envDefault:"token"`
	CookiePath   string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`

	// Guard owner-scoped resource routes. Off by default: the public API is open.
	GuardEnabled bool `env:"AUTH_GUARD_ENABLED" envDefault:"false"`

	// Max POST /jwt requests per client and minute.
	IssueRateLimit int `env:"JWT_RATE_LIMIT" envDefault:"30"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load auth configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants env tags cannot express.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("access_token_secret is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.CookieName == "" {
		return errors.New("cookie_name cannot be empty")
	}
	if c.IssueRateLimit <= 0 {
		c.IssueRateLimit = 30
	}
	return nil
}

// IsProduction reports whether the process runs in the production environment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, environmentProduction)
}

// CookieSecure is true in production only.
func (c *Config) CookieSecure() bool {
	return c.IsProduction()
}

// CookieSameSite is None in production (cross-site frontend) and Strict elsewhere.
func (c *Config) CookieSameSite() string {
	if c.IsProduction() {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteStrictMode
}
