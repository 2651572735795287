package store

import (
	"context"
	"sync"

	"visitmap/internal/trips/models"
)

// InMemory keeps the trip log in process memory.
type InMemory struct {
	mu    sync.RWMutex
	trips []models.Trip
}

func NewInMemory(seed ...models.Trip) *InMemory {
	return &InMemory{trips: cloneTrips(seed)}
}

func (s *InMemory) List(_ context.Context) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTrips(s.trips), nil
}

func (s *InMemory) Replace(_ context.Context, trips []models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = cloneTrips(trips)
	return nil
}
