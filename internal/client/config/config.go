package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the client runtime configuration.
type Config struct {
	ServerURL   string `envconfig:"SERVER_URL" default:"http://localhost:8080"`
	SessionPath string `envconfig:"SESSION_PATH"`
}

// Load reads configuration from environment variables. When SESSION_PATH is
// unset the session file lives under the user config directory.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.SessionPath = filepath.Join(dir, "mercadito", "session.json")
	}
	return &cfg, nil
}
