package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const devJWTSecret = "dev-secret-change-in-production"

// Config holds the runtime configuration, parsed from the environment.
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	Env         string        `env:"ENV" envDefault:"development"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/contactdesk?parseTime=true&multiStatements=true"`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	APIKey      string        `env:"API_KEY" envDefault:"dev-api-key"`
}

// Load parses the configuration from environment variables. Production
// refuses to start on dev credentials.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.JWTSecret == devJWTSecret {
			return nil, errors.New("JWT_SECRET must be set in production environment")
		}
		if cfg.APIKey == "dev-api-key" {
			return nil, errors.New("API_KEY must be set in production environment")
		}
	}

	return cfg, nil
}
