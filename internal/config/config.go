// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration. The JWT secret is injected from
// here into the token authority at construction; nothing reads it from the
// environment afterwards.
type Config struct {
	Addr         string        `env:"APP_ADDRESS" envDefault:"0.0.0.0:8080"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"600s"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
}

var ErrMissingSecret = errors.New("JWT_SECRET must be set and non-empty")

// Load parses the environment. A missing or empty JWT secret is a
// startup-fatal misconfiguration, not a runtime error.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return cfg, nil
}
