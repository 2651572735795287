package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"visitmap/internal/trips/models"
	"visitmap/pkg/platform/tx"
)

// PostgresStore persists trips in the trips table, ordered by position.
type PostgresStore struct {
	db         *sql.DB
	collection string
}

// NewPostgresStore constructs a PostgreSQL-backed trip store. An empty
// collection selects "default".
func NewPostgresStore(db *sql.DB, collection string) *PostgresStore {
	if collection == "" {
		collection = "default"
	}
	return &PostgresStore{db: db, collection: collection}
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, country_codes, start_date, end_date
		FROM trips
		WHERE collection = $1
		ORDER BY position`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var (
			t   models.Trip
			end sql.NullString
		)
		if err := rows.Scan(&t.ID, pq.Array(&t.CountryCodes), &t.StartDate, &end); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		t.EndDate = end.String
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// Replace swaps the whole log in one transaction using a single batched insert.
func (s *PostgresStore) Replace(ctx context.Context, trips []models.Trip) error {
	return tx.Run(ctx, s.db, func(ctx context.Context, t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM trips WHERE collection = $1`, s.collection); err != nil {
			return fmt.Errorf("clear trips: %w", err)
		}
		if len(trips) == 0 {
			return nil
		}
		stmt, err := t.PrepareContext(ctx, pq.CopyIn("trips",
			"collection", "id", "position", "country_codes", "start_date", "end_date"))
		if err != nil {
			return fmt.Errorf("prepare trip copy: %w", err)
		}
		for i, trip := range trips {
			codes := trip.CountryCodes
			if codes == nil {
				codes = []string{}
			}
			var end sql.NullString
			if trip.EndDate != "" {
				end = sql.NullString{String: trip.EndDate, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, s.collection, trip.ID, i, pq.Array(codes), trip.StartDate, end); err != nil {
				_ = stmt.Close()
				return fmt.Errorf("copy trip %q: %w", trip.ID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("flush trip copy: %w", err)
		}
		if err := stmt.Close(); err != nil {
			return fmt.Errorf("close trip copy: %w", err)
		}
		return nil
	})
}
