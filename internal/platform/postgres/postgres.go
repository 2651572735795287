// Package postgres opens the shared database/sql pool and owns the schema the
// trip and overlay stores write to.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// registers the "postgres" driver
	_ "github.com/lib/pq"

	"visitmap/internal/platform/config"
)

// Open connects to PostgreSQL and verifies the connection.
// Returns nil if the DSN is empty (Postgres not configured).
func Open(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		position INT NOT NULL,
		country_codes TEXT[] NOT NULL DEFAULT '{}',
		start_date TEXT NOT NULL,
		end_date TEXT NULL,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trips_collection_position ON trips(collection, position)`,
	`CREATE TABLE IF NOT EXISTS overlays (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		position INT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		countries TEXT[] NOT NULL DEFAULT '{}',
		visible BOOLEAN NOT NULL,
		paint_order INT NULL,
		tooltip TEXT NULL,
		timeline_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		timeline_snapshot BOOLEAN NULL,
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_overlays_collection_position ON overlays(collection, position)`,
}

// EnsureSchema creates the tables on first run. Statements use IF NOT EXISTS
// so it is safe to call on every start.
func EnsureSchema(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	for i, stmt := range schema {
		if log != nil {
			log.DebugContext(ctx, "schema_exec", "idx", i)
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema (statement %d): %w", i, err)
		}
	}
	return nil
}
