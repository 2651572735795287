//go:build integration

package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"visitmap/internal/overlay/models"
	"visitmap/pkg/testutil/containers"
)

func TestRedisStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.DeleteKeys(context.Background(), "visitmap:overlays:*"))

	exerciseStore(t, NewRedisStore(rc.Client, WithRedisCollection("contract")))
}

// Concurrent adds race on the same key; WATCH retries must keep every one.
func TestRedisStoreConcurrentAdds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.DeleteKeys(ctx, "visitmap:overlays:*"))
	st := NewRedisStore(rc.Client, WithRedisCollection("concurrent"))

	const writers = 4
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = st.Add(ctx, models.Overlay{ID: string(rune('a' + idx)), Countries: []string{}})
		}(i)
	}
	wg.Wait()

	list, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, writers)
}
