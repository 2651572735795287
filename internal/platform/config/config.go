package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultFill paints countries no overlay claims.
const DefaultFill = "#e0e0e0"

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// StoreBackend is one of memory, redis or postgres.
	StoreBackend string
	// Collection scopes stored overlays and trips.
	Collection string

	PaletteFile    string
	DefaultPalette string
	HomeCountry    string
	DefaultFill    string

	// WriteTimeout bounds each background overlay save.
	WriteTimeout time.Duration

	LogLevel  string
	LogFormat string

	Redis    RedisConfig
	Postgres PostgresConfig
}

// RedisConfig holds go-redis connection options.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds database/sql pool options.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:           envOr("VISITMAP_ADDR", ":8080"),
		StoreBackend:   strings.ToLower(envOr("STORE_BACKEND", BackendMemory)),
		Collection:     envOr("STORE_COLLECTION", "default"),
		PaletteFile:    os.Getenv("PALETTE_FILE"),
		DefaultPalette: os.Getenv("DEFAULT_PALETTE"),
		HomeCountry:    strings.ToUpper(strings.TrimSpace(os.Getenv("HOME_COUNTRY"))),
		DefaultFill:    envOr("DEFAULT_FILL", DefaultFill),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "text"),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
	}

	var err error
	if cfg.WriteTimeout, err = envDuration("OVERLAY_WRITE_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = envInt("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = envInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = envDuration("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Postgres.MaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return Server{}, err
	}
	if cfg.Postgres.MaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return Server{}, err
	}
	if cfg.Postgres.ConnMaxLifetime, err = envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return Server{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c Server) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("OVERLAY_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
