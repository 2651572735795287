package store

import (
	"context"
	"sync"

	"visitmap/internal/overlay/models"
)

// InMemory keeps the overlay list in process memory. Returned lists are
// copies; callers never alias stored state.
type InMemory struct {
	mu       sync.RWMutex
	overlays []models.Overlay
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Load(_ context.Context) ([]models.Overlay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overlays == nil {
		return []models.Overlay{}, nil
	}
	return models.CloneAll(s.overlays), nil
}

func (s *InMemory) Save(_ context.Context, overlays []models.Overlay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays = models.CloneAll(overlays)
	return nil
}

func (s *InMemory) Add(_ context.Context, overlay models.Overlay) error {
	return s.update(func(list []models.Overlay) ([]models.Overlay, error) {
		return addOverlay(list, overlay)
	})
}

func (s *InMemory) Edit(_ context.Context, overlay models.Overlay) error {
	return s.update(func(list []models.Overlay) ([]models.Overlay, error) {
		return editOverlay(list, overlay)
	})
}

func (s *InMemory) Remove(_ context.Context, id string) error {
	return s.update(func(list []models.Overlay) ([]models.Overlay, error) {
		return removeOverlay(list, id)
	})
}

func (s *InMemory) update(fn func([]models.Overlay) ([]models.Overlay, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(models.CloneAll(s.overlays))
	if err != nil {
		return err
	}
	s.overlays = next
	return nil
}
