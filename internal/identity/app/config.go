package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer     string        // Issuer claim for session tokens (default: tenantauth)
	JWTSecret  string        // Required: HS256 signing secret, at least 32 bytes
	SessionTTL time.Duration // Optional: session token lifetime (default: 24h)
	LookupMode string        // Optional: login lookup mode (scoped, global) (default: scoped)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./tenantauth.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "tenantauth"),
		JWTSecret:           os.Getenv("AUTH_JWT_SECRET"),
		SessionTTL:          getEnvDurationOrDefault("AUTH_SESSION_TTL", 24*time.Hour),
		LookupMode:          getEnvOrDefault("AUTH_LOOKUP_MODE", "scoped"),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "tenantauth.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

	// Plain integers are read as hours for operator convenience.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
