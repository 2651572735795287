// Package store persists overlay lists. Every backend implements the same
// collaborator contract: Load and Save work on the whole ordered list, Add,
// Edit and Remove on one overlay keyed by id.
package store

import (
	"context"
	"fmt"

	"visitmap/internal/overlay/models"
	"visitmap/pkg/platform/sentinel"
)

// Store is the overlay persistence collaborator.
type Store interface {
	Load(ctx context.Context) ([]models.Overlay, error)
	Save(ctx context.Context, overlays []models.Overlay) error
	Add(ctx context.Context, overlay models.Overlay) error
	Edit(ctx context.Context, overlay models.Overlay) error
	Remove(ctx context.Context, id string) error
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// DefaultCollection keys the overlay list when a backend serves one user.
const DefaultCollection = "default"

func addOverlay(list []models.Overlay, o models.Overlay) ([]models.Overlay, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("overlay id is required: %w", sentinel.ErrInvalidState)
	}
	if models.IndexOf(list, o.ID) >= 0 {
		return nil, fmt.Errorf("overlay %q: %w", o.ID, sentinel.ErrConflict)
	}
	return append(list, o.Clone()), nil
}

func editOverlay(list []models.Overlay, o models.Overlay) ([]models.Overlay, error) {
	idx := models.IndexOf(list, o.ID)
	if idx < 0 {
		return nil, fmt.Errorf("overlay %q: %w", o.ID, sentinel.ErrNotFound)
	}
	list[idx] = o.Clone()
	return list, nil
}

func removeOverlay(list []models.Overlay, id string) ([]models.Overlay, error) {
	idx := models.IndexOf(list, id)
	if idx < 0 {
		return nil, fmt.Errorf("overlay %q: %w", id, sentinel.ErrNotFound)
	}
	return append(list[:idx], list[idx+1:]...), nil
}
