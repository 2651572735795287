package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"visitmap/internal/overlay/models"
	"visitmap/pkg/platform/sentinel"
)

const (
	// Redis key prefix for overlay lists
	overlayKeyPrefix = "visitmap:overlays:"

	// Optimistic transaction attempts before reporting a conflict
	maxTxRetries = 5
)

// RedisStore keeps each collection's overlay list as one JSON document.
// Single-overlay edits run as WATCH/MULTI transactions so concurrent editors
// never lose each other's changes.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisStoreOption configures a RedisStore instance.
type RedisStoreOption func(*RedisStore)

// WithRedisCollection selects the collection (one list per collection).
func WithRedisCollection(collection string) RedisStoreOption {
	return func(s *RedisStore) {
		if collection != "" {
			s.key = overlayKeyPrefix + collection
		}
	}
}

// NewRedisStore constructs a Redis-backed overlay store.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    overlayKeyPrefix + DefaultCollection,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) read(ctx context.Context, c stringGetter) ([]models.Overlay, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.Overlay{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load overlays: %w", err)
	}
	var list []models.Overlay
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode overlays: %w", err)
	}
	if list == nil {
		list = []models.Overlay{}
	}
	return list, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Overlay, error) {
	return s.read(ctx, s.client)
}

// Save replaces the whole list; last write wins.
func (s *RedisStore) Save(ctx context.Context, overlays []models.Overlay) error {
	data, err := marshalList(overlays)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save overlays: %w", err)
	}
	return nil
}

func (s *RedisStore) Add(ctx context.Context, overlay models.Overlay) error {
	return s.update(ctx, func(list []models.Overlay) ([]models.Overlay, error) {
		return addOverlay(list, overlay)
	})
}

func (s *RedisStore) Edit(ctx context.Context, overlay models.Overlay) error {
	return s.update(ctx, func(list []models.Overlay) ([]models.Overlay, error) {
		return editOverlay(list, overlay)
	})
}

func (s *RedisStore) Remove(ctx context.Context, id string) error {
	return s.update(ctx, func(list []models.Overlay) ([]models.Overlay, error) {
		return removeOverlay(list, id)
	})
}

func (s *RedisStore) update(ctx context.Context, fn func([]models.Overlay) ([]models.Overlay, error)) error {
	txf := func(tx *redis.Tx) error {
		list, err := s.read(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		data, err := marshalList(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update overlays after %d attempts: %w", maxTxRetries, sentinel.ErrConflict)
}

func marshalList(overlays []models.Overlay) ([]byte, error) {
	if overlays == nil {
		overlays = []models.Overlay{}
	}
	data, err := json.Marshal(overlays)
	if err != nil {
		return nil, fmt.Errorf("encode overlays: %w", err)
	}
	return data, nil
}
