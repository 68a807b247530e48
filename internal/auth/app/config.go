package app

import (
	"os"
	"strconv"
	"time"

	"github.com/flicknest/flicknest/pkg/jwtx"
)

// Refresh rotation modes. "reuse" keeps a consumed refresh token valid
// until its natural expiry; "rotate" retires it on first redemption.
const (
	RefreshRotationReuse  = "reuse"
	RefreshRotationRotate = "rotate"
)

type Config struct {
	TokenIssuer   string // Optional: issuer claim stamped into app tokens (default: flicknest)
	TokenAudience string // Optional: audience claim for app access tokens (default: flicknest-users)

	IdPSecret     string // Optional: IdP verification secret, usually base64-encoded
	AppSecret     string // Optional: app access-token secret (unsafe default if unset)
	RefreshSecret string // Optional: app refresh-token secret (unsafe default if unset)

	AccessTTL  time.Duration // Access-token lifetime (default: 15m)
	RefreshTTL time.Duration // Refresh-token lifetime (default: 168h)
	Leeway     time.Duration // Clock-skew tolerance for iat/exp checks (default: 10s)

	RefreshRotation string // "reuse" or "rotate" (default: reuse)

	DatabaseFile         string        // Path to SQLite database file (default: ./auth.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Revocation-ledger sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		TokenIssuer:   getEnvOrDefault("AUTH_ISSUER", "flicknest"),
		TokenAudience: getEnvOrDefault("AUTH_AUDIENCE", "flicknest-users"),

		IdPSecret:     os.Getenv("AUTH_IDP_JWT_SECRET"),
		AppSecret:     os.Getenv("AUTH_APP_JWT_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_JWT_SECRET"),

		AccessTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		Leeway:     getEnvDurationOrDefault("AUTH_JWT_LEEWAY", jwtx.DefaultLeeway),

		RefreshRotation: getEnvOrDefault("AUTH_REFRESH_ROTATION", RefreshRotationReuse),

		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("AUTH_HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.RefreshRotation != RefreshRotationRotate {
		cfg.RefreshRotation = RefreshRotationReuse
	}

	return cfg
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

	// Try parsing as integer seconds (for backwards compatibility)
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
