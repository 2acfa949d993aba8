// Package config loads the ivy command's settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the command's settings.
type Config struct {
	Env         string // development | production
	LogLevel    string
	Addr        string
	DatabaseURL string
}

// Load reads the given .env files (default ".env") and builds a Config from
// IVY_* environment variables. Missing files are not an error; variables
// already set in the environment take precedence over file values.
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	return &Config{
		Env:         env("IVY_ENV", "development"),
		LogLevel:    env("IVY_LOG_LEVEL", "info"),
		Addr:        env("IVY_ADDR", ":8080"),
		DatabaseURL: env("IVY_DATABASE_URL", "postgres://localhost:5432/app"),
	}
}

// IsProduction reports whether Env is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Logger builds a zap logger for the configured environment and level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("IVY_LOG_LEVEL: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	if c.IsProduction() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	return zc.Build()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
