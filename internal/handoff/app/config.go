package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rentloop/handoff/internal/handoff/service"
)

type Config struct {
	TokenSecret string // Required: HMAC key for signing handover/return tokens
	AuthSecret  string // Required: HMAC key for verifying caller bearer tokens

	ExpiryMode          service.ExpiryMode // Optional: token expiry policy (dates, ttl) (default: dates)
	ExpiryGrace         time.Duration      // Optional: grace past booked dates in dates mode (default: 72h)
	TokenTTL            time.Duration      // Optional: fixed lifetime in ttl mode (default: 15m)
	DatabaseFile        string             // Optional: path to SQLite database file (default: ./handoff.db)
	Env                 string             // Environment (dev, staging, prod) (default: dev)
	LogLevel            string             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string             // Log format (json, text) (default: json)
	Port                int                // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration      // Graceful shutdown timeout (default: 10s)
}

var (
	ErrMissingTokenSecret = errors.New("HANDOFF_TOKEN_SECRET is required")
	ErrMissingAuthSecret  = errors.New("HANDOFF_AUTH_SECRET is required")
	ErrInvalidExpiryMode  = errors.New("HANDOFF_EXPIRY_MODE must be \"dates\" or \"ttl\"")
)

func LoadConfig() (Config, error) {
	cfg := Config{
		TokenSecret:         os.Getenv("HANDOFF_TOKEN_SECRET"),
		AuthSecret:          os.Getenv("HANDOFF_AUTH_SECRET"),
		ExpiryMode:          service.ExpiryMode(getEnvOrDefault("HANDOFF_EXPIRY_MODE", string(service.ExpiryModeDates))),
		ExpiryGrace:         getEnvDurationOrDefault("HANDOFF_EXPIRY_GRACE", service.DefaultExpiryGrace),
		TokenTTL:            getEnvDurationOrDefault("HANDOFF_TOKEN_TTL", service.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("HANDOFF_DATABASE_FILE", "handoff.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Both secrets are deployment credentials with no sane default: a
	// guessable token secret makes every token forgeable.
	if cfg.TokenSecret == "" {
		return cfg, ErrMissingTokenSecret
	}
	if cfg.AuthSecret == "" {
		return cfg, ErrMissingAuthSecret
	}

	switch cfg.ExpiryMode {
	case service.ExpiryModeDates, service.ExpiryModeTTL:
	default:
		return cfg, ErrInvalidExpiryMode
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
