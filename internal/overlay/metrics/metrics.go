package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for overlay reconciliation and rendering.
type Metrics struct {
	// Reconcile passes by outcome: skipped, missing, unchanged, changed
	ReconcileOutcomes *prometheus.CounterVec

	// Persistence writes by result: ok, error
	PersistWrites *prometheus.CounterVec

	// Snapshots replaced by a newer one before they were written
	PersistCoalesced prometheus.Counter

	// Frame composition latency
	FrameLatency prometheus.Histogram
}

// New registers the overlay metrics on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReconcileOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visitmap_overlay_reconcile_total",
			Help: "Visited-countries reconcile passes by outcome",
		}, []string{"outcome"}),

		PersistWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "visitmap_overlay_persist_writes_total",
			Help: "Overlay list persistence writes by result",
		}, []string{"result"}),

		PersistCoalesced: factory.NewCounter(prometheus.CounterOpts{
			Name: "visitmap_overlay_persist_coalesced_total",
			Help: "Pending overlay snapshots superseded before being written",
		}),

		FrameLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "visitmap_map_frame_duration_seconds",
			Help:    "Duration of map frame composition including store reads",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementReconcile records one reconcile pass.
func (m *Metrics) IncrementReconcile(outcome string) {
	if m != nil {
		m.ReconcileOutcomes.WithLabelValues(outcome).Inc()
	}
}

// IncrementPersist records one persistence write.
func (m *Metrics) IncrementPersist(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.PersistWrites.WithLabelValues(result).Inc()
}

// IncrementCoalesced records a dropped intermediate snapshot.
func (m *Metrics) IncrementCoalesced() {
	if m != nil {
		m.PersistCoalesced.Inc()
	}
}

// ObserveFrameLatency records the duration of one frame composition.
func (m *Metrics) ObserveFrameLatency(d time.Duration) {
	if m != nil {
		m.FrameLatency.Observe(d.Seconds())
	}
}
