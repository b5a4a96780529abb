package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/traintrack-app/traintrack/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: traintrack-auth)
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens

	AccessTokenTTL      time.Duration // Optional: access token lifetime (default: 24h)
	RefreshTokenTTL     time.Duration // Optional: refresh token lifetime (default: 7 days)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./traintrack.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var ErrMissingSecrets = errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must be set")

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "traintrack-auth"),
		AccessSecret:        os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret:       os.Getenv("AUTH_REFRESH_SECRET"),
		AccessTokenTTL:      getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:     getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "traintrack.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Refuse to start with a guessable signing key.
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return Config{}, ErrMissingSecrets
	}

	return cfg, nil
}

// SecureCookies reports whether the refresh cookie should carry the Secure
// attribute. Only disabled for local development over plain HTTP.
func (c Config) SecureCookies() bool {
	return c.Env != "dev"
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
