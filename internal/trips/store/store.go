// Package store persists the trip log. The log is owned by the trip manager
// and always replaced as a whole.
package store

import (
	"context"

	"visitmap/internal/trips/models"
)

// Store reads and replaces the trip log.
type Store interface {
	List(ctx context.Context) ([]models.Trip, error)
	Replace(ctx context.Context, trips []models.Trip) error
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*PostgresStore)(nil)
)

func cloneTrips(trips []models.Trip) []models.Trip {
	out := make([]models.Trip, len(trips))
	for i, t := range trips {
		out[i] = t
		out[i].CountryCodes = append([]string(nil), t.CountryCodes...)
	}
	return out
}
