// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is honored in
// development; real environments set variables directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RateLimitWindow and RateLimitMax bound booking submissions per client
	// identifier: at most RateLimitMax requests per sliding RateLimitWindow.
	// Defaults: 60s window, 10 requests.
	RateLimitWindow time.Duration
	RateLimitMax    int

	// RedisURL, when set, switches the rate limiter to a Redis-backed store
	// shared across instances. Empty means in-process memory store.
	RedisURL string

	// NotifyWebhookURL is the endpoint of the notification bridge that turns
	// structured messages into customer and staff email. Empty means
	// notification payloads are only logged.
	NotifyWebhookURL string

	// NotifyStaffEmail is the address staff booking notifications go to.
	// Defaults to "bookings@ybfstudio.com".
	NotifyStaffEmail string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Best effort; absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitWindow:  time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_MS", 60_000)) * time.Millisecond,
		RateLimitMax:     getEnvAsInt("RATE_LIMIT_MAX", 10),
		RedisURL:         os.Getenv("REDIS_URL"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyStaffEmail: getEnv("NOTIFY_STAFF_EMAIL", "bookings@ybfstudio.com"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvAsInt returns the integer value of the environment variable named by
// key, or fallback if the variable is unset or not a valid integer.
func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
