package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret []byte        // Required: shared secret for HS256 token signing
	Issuer    string        // Issuer claim for tokens (default: pocketlist)
	TokenTTL  time.Duration // Bearer token lifetime (default: 24h)

	ResetTokenTTL time.Duration // Password-reset secret lifetime (default: 1h)

	DatabaseFile        string        // Path to SQLite database file (default: ./pocketlist.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var errMissingJWTSecret = errors.New("JWT_SECRET is required")

// LoadConfig reads configuration from environment variables. The signing
// secret has no default: refusing to boot beats silently signing tokens
// with a guessable key.
func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "pocketlist"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:       getEnvDurationOrDefault("RESET_TOKEN_TTL", time.Hour),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "pocketlist.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errMissingJWTSecret
	}
	cfg.JWTSecret = []byte(secret)

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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
