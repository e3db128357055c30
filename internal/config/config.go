package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL     string
	ServerAddr      string
	LogFile         string
	AuditSigningKey string
	RequestTimeout  time.Duration
}

// Load reads configuration from environment.
func Load() (*Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "pallet_insight")
		pass := getenv("POSTGRES_PASSWORD", "pallet_insight_pass")
		db := getenv("POSTGRES_DB", "pallet_insight")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}
	addr := getenv("SERVER_ADDR", "0.0.0.0:8080")
	timeout := parseDuration(getenv("REQUEST_TIMEOUT", "30s"), 30*time.Second)

	return &Config{
		DatabaseURL:     dsn,
		ServerAddr:      addr,
		LogFile:         os.Getenv("LOG_FILE"),
		AuditSigningKey: os.Getenv("AUDIT_SIGNING_KEY"),
		RequestTimeout:  timeout,
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
