// Package reconcile keeps the derived visited-countries overlay in step with
// the trip log.
//
// The host calls Sync (or Reconcile) whenever trips, the palette or overlay
// visibility change. Each call receives a full snapshot of its inputs and
// returns the updated overlay list right away; persistence of a changed list
// is handed to a Persister and never awaited.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/models"
	"visitmap/internal/timeline"
	tripmodels "visitmap/internal/trips/models"
)

// Persister accepts a full overlay list for asynchronous storage.
type Persister interface {
	Enqueue(ctx context.Context, overlays []models.Overlay)
}

// Outcome describes what a reconcile pass did.
type Outcome string

const (
	// OutcomeSkipped: loading gate closed or empty overlay list.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeMissing: no derived overlay in the list.
	OutcomeMissing Outcome = "missing"
	// OutcomeUnchanged: derived overlay already up to date, nothing written.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeChanged: countries or color replaced and a write enqueued.
	OutcomeChanged Outcome = "changed"
)

// Input is the snapshot a pass works on.
type Input struct {
	Trips    []tripmodels.Trip
	Overlays []models.Overlay
	// Loading is true while the host is still reading trips or overlays.
	Loading bool
	// VisitedColor is the palette's visited color. Empty keeps the current color.
	VisitedColor string
	Now          time.Time
}

// Result is the outcome of a pass. Overlays is always safe to keep: it is
// either the input list or an updated copy.
type Result struct {
	Overlays []models.Overlay
	Outcome  Outcome
	Seeded   bool
	Visited  []string
}

// Written reports whether the pass handed a list to the persister.
func (r Result) Written() bool {
	return r.Seeded || r.Outcome == OutcomeChanged
}

// Synchronizer reconciles the derived overlay.
type Synchronizer struct {
	persister    Persister
	overlayID    string
	defaultColor string
	equal        Comparator
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Synchronizer)

// WithOverlayID sets the id of the derived overlay.
func WithOverlayID(id string) Option {
	return func(s *Synchronizer) {
		if id != "" {
			s.overlayID = id
		}
	}
}

// WithDefaultColor sets the color of a freshly seeded overlay.
func WithDefaultColor(color string) Option {
	return func(s *Synchronizer) {
		if color != "" {
			s.defaultColor = color
		}
	}
}

// WithComparator replaces the change-detection comparison of country lists.
func WithComparator(equal Comparator) Option {
	return func(s *Synchronizer) {
		if equal != nil {
			s.equal = equal
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Synchronizer) {
		s.metrics = m
	}
}

// New constructs a Synchronizer. Defaults: overlay id "visited-countries",
// OrderedEqual change detection.
func New(persister Persister, opts ...Option) (*Synchronizer, error) {
	if persister == nil {
		return nil, errors.New("overlay persister is required")
	}
	s := &Synchronizer{
		persister:    persister,
		overlayID:    models.VisitedCountriesID,
		defaultColor: models.DefaultVisitedColor,
		equal:        OrderedEqual,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OverlayID returns the id of the derived overlay.
func (s *Synchronizer) OverlayID() string {
	return s.overlayID
}

// Seed prepends the derived overlay when the list lacks it. The input list is
// never modified.
func (s *Synchronizer) Seed(overlays []models.Overlay) ([]models.Overlay, bool) {
	return Seed(overlays, s.overlayID, s.defaultColor)
}

// Seed prepends a fresh derived overlay with id when list lacks one.
func Seed(list []models.Overlay, id, color string) ([]models.Overlay, bool) {
	if models.IndexOf(list, id) >= 0 {
		return list, false
	}
	out := make([]models.Overlay, 0, len(list)+1)
	out = append(out, models.NewVisitedOverlay(id, color))
	out = append(out, models.CloneAll(list)...)
	return out, true
}

// Sync seeds the derived overlay if needed and reconciles it. At most one
// write is enqueued per call.
func (s *Synchronizer) Sync(ctx context.Context, in Input) Result {
	seeded := false
	if !in.Loading {
		in.Overlays, seeded = s.Seed(in.Overlays)
	}
	res := s.reconcile(ctx, in)
	res.Seeded = seeded
	if seeded && res.Outcome != OutcomeChanged {
		s.persister.Enqueue(ctx, res.Overlays)
	}
	return res
}

// Reconcile recomputes the visited set and updates the derived overlay when
// its countries or color differ. A write is enqueued only on change.
func (s *Synchronizer) Reconcile(ctx context.Context, in Input) Result {
	return s.reconcile(ctx, in)
}

func (s *Synchronizer) reconcile(ctx context.Context, in Input) Result {
	if in.Loading || len(in.Overlays) == 0 {
		return s.done(ctx, Result{Overlays: in.Overlays, Outcome: OutcomeSkipped})
	}

	idx := models.IndexOf(in.Overlays, s.overlayID)
	if idx < 0 {
		return s.done(ctx, Result{Overlays: in.Overlays, Outcome: OutcomeMissing})
	}

	visited := timeline.VisitedCountriesOverall(in.Trips, in.Now)
	current := in.Overlays[idx]
	color := in.VisitedColor
	if color == "" {
		color = current.Color
	}

	if s.equal(current.Countries, visited) && current.Color == color {
		return s.done(ctx, Result{Overlays: in.Overlays, Outcome: OutcomeUnchanged, Visited: visited})
	}

	next := models.CloneAll(in.Overlays)
	next[idx].Countries = visited
	next[idx].Color = color
	s.persister.Enqueue(ctx, next)

	return s.done(ctx, Result{Overlays: next, Outcome: OutcomeChanged, Visited: visited})
}

func (s *Synchronizer) done(ctx context.Context, res Result) Result {
	s.metrics.IncrementReconcile(string(res.Outcome))
	if res.Outcome == OutcomeChanged {
		s.logger.InfoContext(ctx, "visited overlay updated",
			"overlay_id", s.overlayID,
			"countries", len(res.Visited),
		)
	} else {
		s.logger.DebugContext(ctx, "visited overlay reconcile",
			"overlay_id", s.overlayID,
			"outcome", res.Outcome,
		)
	}
	return res
}
