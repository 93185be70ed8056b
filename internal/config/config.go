package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server runtime configuration.
type Config struct {
	Addr         string        `envconfig:"APP_ADDR" default:":8080"`
	DatabasePath string        `envconfig:"DATABASE_PATH" default:"./mercadito.db"`
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &cfg, nil
}
