// Package config loads server configuration from the environment.
// An optional .env file in the working directory is read first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures everything main needs to wire the server.
type Config struct {
	Addr string

	// SuicideTimeoutSeconds is the countdown length used at enrollment.
	SuicideTimeoutSeconds int

	StorageDriver string
	DBPath        string
	DatabaseURL   string

	LogLevel  string
	LogFormat string

	// Per-WebSocket outbound buffer.
	ClientSendBuffer int
	// How often online players are snapshotted to storage.
	SnapshotInterval time.Duration
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Addr:                  ":8080",
		SuicideTimeoutSeconds: 180,
		StorageDriver:         DriverSQLite,
		DBPath:                "data/countdown.db",
		LogLevel:              "info",
		LogFormat:             "text",
		ClientSendBuffer:      64,
		SnapshotInterval:      5 * time.Second,
	}
}

// FromEnv builds a Config from environment variables so main stays lean.
// Missing variables keep their defaults.
func FromEnv() (Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()
	cfg.Addr = stringEnv("COUNTDOWN_ADDR", cfg.Addr)
	cfg.StorageDriver = stringEnv("COUNTDOWN_STORAGE_DRIVER", cfg.StorageDriver)
	cfg.DBPath = stringEnv("COUNTDOWN_DB_PATH", cfg.DBPath)
	cfg.DatabaseURL = stringEnv("COUNTDOWN_DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = stringEnv("COUNTDOWN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = stringEnv("COUNTDOWN_LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.SuicideTimeoutSeconds, err = intEnv("COUNTDOWN_SUICIDE_TIMEOUT", cfg.SuicideTimeoutSeconds); err != nil {
		return cfg, err
	}
	if cfg.ClientSendBuffer, err = intEnv("COUNTDOWN_CLIENT_SEND_BUFFER", cfg.ClientSendBuffer); err != nil {
		return cfg, err
	}
	if v := os.Getenv("COUNTDOWN_SNAPSHOT_INTERVAL"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return cfg, fmt.Errorf("%w: COUNTDOWN_SNAPSHOT_INTERVAL: %v", ErrInvalidConfig, perr)
		}
		cfg.SnapshotInterval = d
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that would otherwise fail deep inside the server.
func (c Config) Validate() error {
	if c.SuicideTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: suicide timeout must be positive, got %d", ErrInvalidConfig, c.SuicideTimeoutSeconds)
	}
	switch c.StorageDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: sqlite driver needs a database path", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres driver needs a database url", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.ClientSendBuffer <= 0 {
		return fmt.Errorf("%w: client send buffer must be positive", ErrInvalidConfig)
	}
	if c.SnapshotInterval <= 0 {
		return fmt.Errorf("%w: snapshot interval must be positive", ErrInvalidConfig)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	return n, nil
}
