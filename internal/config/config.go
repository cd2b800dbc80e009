package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"8081"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development"`
	SessionSecret  string        `envconfig:"SESSION_SECRET" default:"dev-secret-change-in-production"`
	AutoResetDelay time.Duration `envconfig:"AUTO_RESET_DELAY" default:"10s"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	APIURL         string        `envconfig:"API_URL" default:"http://localhost:8081"`
}

// Load reads KIOSK_* variables, after applying an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("kiosk", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
