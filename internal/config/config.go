// Package config loads service configuration from the environment, with
// optional .env overrides for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the HTTP service and batch tools need at startup.
type Config struct {
	// Addr is the listen address for the HTTP service.
	Addr string
	// DatabaseURL is the Postgres connection string. Empty disables
	// persistence and the service falls back to in-memory storage.
	DatabaseURL string
	// RedisURL is the Redis connection string. Empty disables win
	// publication.
	RedisURL string
	// JWTSecret enables bearer-token auth on mutating endpoints when set.
	JWTSecret string
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over .env entries.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded environment overrides from .env")
	}

	cfg := Config{
		Addr:        getenv("SOLITAIRE_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("SOLITAIRE_JWT_SECRET"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, keeping %s", cfg.LogLevel, logrus.GetLevel())
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
