package reconcile

//go:generate mockgen -source=writer.go -destination=mocks/store.go -package=mocks Store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/models"
	"visitmap/internal/overlay/reconcile/mocks"
)

func TestWriterFlushesOnClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	list := []models.Overlay{models.NewVisitedOverlay(models.VisitedCountriesID, "#000000")}
	store.EXPECT().Save(gomock.Any(), list).Return(nil)

	w := NewWriter(store)
	w.Enqueue(context.Background(), list)
	w.Close()
}

func TestWriterConvergesOnLatestSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	var mu sync.Mutex
	var saved [][]models.Overlay
	store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, list []models.Overlay) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append(saved, list)
			return nil
		}).
		MinTimes(1)

	w := NewWriter(store)
	for i := 0; i < 50; i++ {
		w.Enqueue(context.Background(), []models.Overlay{{ID: "visited-countries", Countries: []string{string(rune('A' + i%26))}}})
	}
	final := []models.Overlay{{ID: "visited-countries", Countries: []string{"ZZ"}}}
	w.Enqueue(context.Background(), final)
	w.Close()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, saved)
	assert.LessOrEqual(t, len(saved), 51)
	assert.Equal(t, final, saved[len(saved)-1])
}

func TestWriterCopiesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	list := []models.Overlay{{ID: "visited-countries", Countries: []string{"FR"}}}
	store.EXPECT().Save(gomock.Any(), []models.Overlay{{ID: "visited-countries", Countries: []string{"FR"}}}).Return(nil)

	w := NewWriter(store)
	w.Enqueue(context.Background(), list)
	list[0].Countries[0] = "XX"
	w.Close()
}

func TestWriterCountsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	w := NewWriter(store, WithWriterMetrics(m))
	w.Enqueue(context.Background(), []models.Overlay{{ID: "visited-countries"}})
	w.Close()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistWrites.WithLabelValues("error")))
}

func TestWriterDropsAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	w := NewWriter(store)
	w.Close()
	w.Close()
	w.Enqueue(context.Background(), []models.Overlay{{ID: "visited-countries"}})
}

func TestWriterFlushWaitsForPendingSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	var saved bool
	store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []models.Overlay) error {
			saved = true
			return nil
		})

	w := NewWriter(store)
	defer w.Close()

	w.Enqueue(context.Background(), []models.Overlay{{ID: "visited-countries"}})
	require.NoError(t, w.Flush(context.Background()))
	assert.True(t, saved)
}

func TestWriterFlushAfterCloseReturns(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewWriter(mocks.NewMockStore(ctrl))
	w.Close()

	assert.NoError(t, w.Flush(context.Background()))
}

func TestSeedIsPersistedWithEmptyCountries(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	var saved []byte
	store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, list []models.Overlay) error {
			data, err := json.Marshal(list)
			saved = data
			return err
		})

	w := NewWriter(store)
	synchronizer, err := New(w)
	require.NoError(t, err)

	res := synchronizer.Sync(context.Background(), Input{Overlays: []models.Overlay{}})
	require.True(t, res.Written())
	w.Close()

	assert.Contains(t, string(saved), `"countries":[]`)
}

// syncBuffer lets the writer's logger and the test share one buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWriterAccountsForEverySnapshotWhenClosing(t *testing.T) {
	for round := 0; round < 20; round++ {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockStore(ctrl)
		m := metrics.New(prometheus.NewRegistry())
		logs := &syncBuffer{}

		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		w := NewWriter(store,
			WithWriterMetrics(m),
			WithWriterLogger(slog.New(slog.NewTextHandler(logs, nil))),
		)

		const producers, perProducer = 8, 25
		var wg sync.WaitGroup
		for p := 0; p < producers; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perProducer; i++ {
					w.Enqueue(context.Background(), []models.Overlay{{ID: "visited-countries"}})
				}
			}()
		}
		w.Close()
		wg.Wait()

		written := testutil.ToFloat64(m.PersistWrites.WithLabelValues("ok"))
		coalesced := testutil.ToFloat64(m.PersistCoalesced)
		dropped := strings.Count(logs.String(), "overlay writer closed")
		assert.Equal(t, float64(producers*perProducer), written+coalesced+float64(dropped), "round %d", round)
	}
}
