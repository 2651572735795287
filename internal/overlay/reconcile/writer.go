package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/models"
)

// Store is the persistence collaborator the writer saves full lists through.
type Store interface {
	Save(ctx context.Context, overlays []models.Overlay) error
}

const defaultWriteTimeout = 10 * time.Second

// Writer persists overlay lists in the background. It holds at most one
// pending list: a newer list replaces an unwritten older one, so the store
// always converges on the latest snapshot.
type Writer struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	pending chan []models.Overlay
	flush   chan chan struct{}
	quit    chan struct{}
	done    chan struct{}

	// mu orders Enqueue against Close: a snapshot accepted under the read
	// lock is in pending before quit is closed, so run drains it.
	mu     sync.RWMutex
	closed bool
}

type WriterOption func(*Writer)

func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

func WithWriterMetrics(m *metrics.Metrics) WriterOption {
	return func(w *Writer) {
		w.metrics = m
	}
}

// WithWriteTimeout bounds each Save call.
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// NewWriter starts a background writer. Call Close to flush and stop it.
func NewWriter(store Store, opts ...WriterOption) *Writer {
	w := &Writer{
		store:   store,
		logger:  slog.New(slog.DiscardHandler),
		timeout: defaultWriteTimeout,
		pending: make(chan []models.Overlay, 1),
		flush:   make(chan chan struct{}),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Enqueue schedules overlays for saving and returns immediately. The list is
// copied, so callers may keep using theirs.
func (w *Writer) Enqueue(ctx context.Context, overlays []models.Overlay) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.WarnContext(ctx, "overlay writer closed, dropping snapshot",
			"overlays", len(overlays),
		)
		return
	}
	snapshot := models.CloneAll(overlays)
	for {
		select {
		case w.pending <- snapshot:
			return
		default:
		}
		select {
		case <-w.pending:
			w.metrics.IncrementCoalesced()
		default:
		}
	}
}

// Flush blocks until every list enqueued before the call has been written
// (or failed). Callers use it to order a direct store edit after queued
// snapshots.
func (w *Writer) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case w.flush <- reply:
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending list and stops the writer.
func (w *Writer) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.quit)
	}
	w.mu.Unlock()
	<-w.done
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case list := <-w.pending:
			w.save(list)
		case reply := <-w.flush:
			select {
			case list := <-w.pending:
				w.save(list)
			default:
			}
			close(reply)
		case <-w.quit:
			select {
			case list := <-w.pending:
				w.save(list)
			default:
			}
			return
		}
	}
}

func (w *Writer) save(list []models.Overlay) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.store.Save(ctx, list); err != nil {
		w.metrics.IncrementPersist(false)
		w.logger.ErrorContext(ctx, "overlay list save failed",
			"overlays", len(list),
			"error", err,
		)
		return
	}
	w.metrics.IncrementPersist(true)
	w.logger.DebugContext(ctx, "overlay list saved",
		"overlays", len(list),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
