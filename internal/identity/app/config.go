package app

import (
	"os"
	"strconv"
	"time"

	"github.com/pulseboard/pulseboard/pkg/cryptox"
	"github.com/pulseboard/pulseboard/pkg/jwtx"
)

type Config struct {
	Issuer        string        // Issuer claim for session tokens
	SessionSecret string        // HS256 signing secret; ephemeral one generated when empty
	SessionTTL    time.Duration // Session token validity window (default: 24h)
	BcryptCost    int           // Password hashing work factor (default: 12)

	DatabaseFile string // Path to SQLite database file (default: ./identity.db)

	AdminEmail    string // Optional: bootstrap admin account email
	AdminPassword string // Optional: bootstrap admin account password
	AdminName     string // Optional: bootstrap admin display name

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	RequestTimeout      time.Duration // Per-request budget for store/hash work (default: 10s)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("IDENTITY_ISSUER", "pulseboard-identity"),
		SessionSecret: os.Getenv("IDENTITY_SESSION_SECRET"), // Optional: ephemeral when unset
		SessionTTL:    getEnvDurationOrDefault("IDENTITY_SESSION_TTL", jwtx.DefaultSessionTTL),
		BcryptCost:    getEnvIntOrDefault("IDENTITY_BCRYPT_COST", cryptox.DefaultCost),

		DatabaseFile: getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),

		AdminEmail:    os.Getenv("IDENTITY_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("IDENTITY_ADMIN_PASSWORD"),
		AdminName:     os.Getenv("IDENTITY_ADMIN_NAME"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		RequestTimeout:      getEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	// Try parsing as duration (e.g., "24h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes for convenience
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
