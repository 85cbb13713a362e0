package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Empty in local runs the in-memory user store.
	DatabaseURL string `env:"DATABASE_URL" validate:"required_if=Env production,required_if=Env staging"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=32"`
	// Zero issues tokens without an exp claim.
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"0s" validate:"min=0"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
