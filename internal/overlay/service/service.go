// Package service hosts the overlay engine: it owns the loaded trip log and
// overlay list, keeps the derived overlay reconciled, and renders map frames.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"visitmap/internal/overlay/compositor"
	"visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/models"
	"visitmap/internal/overlay/reconcile"
	"visitmap/internal/palette"
	"visitmap/internal/timeline"
	tripmodels "visitmap/internal/trips/models"
	dErrors "visitmap/pkg/domain-errors"
	"visitmap/pkg/platform/sentinel"
	"visitmap/pkg/platform/strings"
	"visitmap/pkg/requestcontext"
)

// TripStore reads and replaces the trip log.
type TripStore interface {
	List(ctx context.Context) ([]tripmodels.Trip, error)
	Replace(ctx context.Context, trips []tripmodels.Trip) error
}

// OverlayStore is the overlay persistence collaborator.
type OverlayStore interface {
	Load(ctx context.Context) ([]models.Overlay, error)
	Edit(ctx context.Context, overlay models.Overlay) error
}

// Writer persists full overlay lists in the background.
type Writer interface {
	reconcile.Persister
	Flush(ctx context.Context) error
}

const tracerName = "visitmap/internal/overlay/service"

// Service is safe for concurrent use. Mutations are serialized; frames read a
// consistent snapshot.
type Service struct {
	trips    TripStore
	overlays OverlayStore
	writer   Writer
	catalog  *palette.Catalog
	sync     *reconcile.Synchronizer

	syncOpts    []reconcile.Option
	home        string
	defaultFill string
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer

	mu        sync.RWMutex
	loaded    bool
	tripLog   []tripmodels.Trip
	overlayLs []models.Overlay
	palette   palette.Palette
}

type Option func(*Service)

// WithHomeCountry sets the country always painted with the home color.
func WithHomeCountry(code string) Option {
	return func(s *Service) {
		s.home = code
	}
}

// WithDefaultFill sets the base map color for unclaimed countries.
func WithDefaultFill(color string) Option {
	return func(s *Service) {
		if color != "" {
			s.defaultFill = color
		}
	}
}

// WithPalette selects the starting palette. Unknown names keep the catalog
// default.
func WithPalette(name string) Option {
	return func(s *Service) {
		if p, err := s.catalog.Get(name); err == nil {
			s.palette = p
		}
	}
}

// WithSynchronizerOptions forwards options to the synchronizer (overlay id,
// comparator, seed color).
func WithSynchronizerOptions(opts ...reconcile.Option) Option {
	return func(s *Service) {
		s.syncOpts = append(s.syncOpts, opts...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New wires the service. Call Load before serving frames.
func New(trips TripStore, overlays OverlayStore, writer Writer, catalog *palette.Catalog, opts ...Option) (*Service, error) {
	if trips == nil || overlays == nil || writer == nil {
		return nil, errors.New("trip store, overlay store and writer are required")
	}
	if catalog == nil {
		return nil, errors.New("palette catalog is required")
	}
	s := &Service{
		trips:       trips,
		overlays:    overlays,
		writer:      writer,
		catalog:     catalog,
		palette:     catalog.Default(),
		defaultFill: "#e0e0e0",
		logger:      slog.New(slog.DiscardHandler),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	syncOpts := append([]reconcile.Option{
		reconcile.WithLogger(s.logger),
		reconcile.WithMetrics(s.metrics),
	}, s.syncOpts...)
	synchronizer, err := reconcile.New(writer, syncOpts...)
	if err != nil {
		return nil, err
	}
	s.sync = synchronizer
	return s, nil
}

// Load reads trips and overlays concurrently, seeds the derived overlay when
// missing and runs the first reconcile. Until Load succeeds the loading gate
// stays closed and no reconcile writes anything.
func (s *Service) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "overlay.Load")
	defer span.End()

	var (
		trips    []tripmodels.Trip
		overlays []models.Overlay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = s.trips.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		overlays, err = s.overlays.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load trips and overlays")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tripLog = trips
	s.overlayLs = overlays
	s.loaded = true
	res := s.syncLocked(ctx)

	span.SetAttributes(
		attribute.Int("trips.count", len(trips)),
		attribute.Int("overlays.count", len(res.Overlays)),
		attribute.Bool("overlay.seeded", res.Seeded),
	)
	s.logger.InfoContext(ctx, "overlay state loaded",
		"trips", len(trips),
		"overlays", len(res.Overlays),
		"seeded", res.Seeded,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// Trips returns a copy of the trip log.
func (s *Service) Trips(_ context.Context) []tripmodels.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tripmodels.Trip, len(s.tripLog))
	copy(out, s.tripLog)
	return out
}

// ReplaceTrips stores a new trip log and reconciles. Country codes are
// upper-cased and deduplicated per trip; trips without an id get one.
func (s *Service) ReplaceTrips(ctx context.Context, trips []tripmodels.Trip) ([]tripmodels.Trip, error) {
	ctx, span := s.tracer.Start(ctx, "overlay.ReplaceTrips", trace.WithAttributes(
		attribute.Int("trips.count", len(trips)),
	))
	defer span.End()

	normalized := make([]tripmodels.Trip, len(trips))
	for i, t := range trips {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		t.CountryCodes = strings.DedupeAndTrimUpper(t.CountryCodes)
		normalized[i] = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.trips.Replace(ctx, normalized); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "replace trips failed")
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store trips")
	}
	s.tripLog = normalized
	s.syncLocked(ctx)

	out := make([]tripmodels.Trip, len(normalized))
	copy(out, normalized)
	return out, nil
}

// Overlays returns a copy of the current overlay list.
func (s *Service) Overlays(_ context.Context) []models.Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := models.CloneAll(s.overlayLs)
	if list == nil {
		list = []models.Overlay{}
	}
	return list
}

// Palettes lists the catalog and the selected palette.
func (s *Service) Palettes() (selected palette.Palette, all []palette.Palette) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette, s.catalog.List()
}

// SelectPalette switches palettes; the derived overlay picks up the new
// visited color on the following reconcile.
func (s *Service) SelectPalette(ctx context.Context, name string) (palette.Palette, error) {
	p, err := s.catalog.Get(name)
	if err != nil {
		return palette.Palette{}, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown palette: "+name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette = p
	s.syncLocked(ctx)
	s.logger.InfoContext(ctx, "palette selected", "palette", p.Name)
	return p, nil
}

// SetVisibility toggles one overlay through the store. Queued list snapshots
// are flushed first so they cannot overwrite the edit.
func (s *Service) SetVisibility(ctx context.Context, id string, visible bool) (models.Overlay, error) {
	ctx, span := s.tracer.Start(ctx, "overlay.SetVisibility", trace.WithAttributes(
		attribute.String("overlay.id", id),
		attribute.Bool("overlay.visible", visible),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return models.Overlay{}, dErrors.New(dErrors.CodeUnavailable, "overlays are still loading")
	}
	idx := models.IndexOf(s.overlayLs, id)
	if idx < 0 {
		return models.Overlay{}, dErrors.New(dErrors.CodeNotFound, "overlay not found")
	}
	if s.overlayLs[idx].Visible == visible {
		return s.overlayLs[idx].Clone(), nil
	}

	updated := s.overlayLs[idx].Clone()
	updated.Visible = visible

	if err := s.writer.Flush(ctx); err != nil {
		return models.Overlay{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "pending overlay writes did not finish")
	}
	if err := s.overlays.Edit(ctx, updated); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "edit overlay failed")
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Overlay{}, dErrors.Wrap(err, dErrors.CodeNotFound, "overlay not found in store")
		}
		return models.Overlay{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to store overlay")
	}

	next := models.CloneAll(s.overlayLs)
	next[idx] = updated
	s.overlayLs = next
	s.syncLocked(ctx)
	return updated.Clone(), nil
}

// FrameRequest selects what a frame shows. Year 0 means the current year.
type FrameRequest struct {
	Year     int
	Mode     palette.Mode
	Timeline bool
}

// Frame is one rendered map state.
type Frame struct {
	Year     int                      `json:"year"`
	Mode     palette.Mode             `json:"mode"`
	Timeline bool                     `json:"timeline"`
	Palette  string                   `json:"palette"`
	Roles    palette.VisitColorRoles  `json:"roles"`
	Years    []int                    `json:"years"`
	Items    []models.Item            `json:"items"`
	Fills    []compositor.CountryFill `json:"fills"`
}

// Frame renders the current state for req.
func (s *Service) Frame(ctx context.Context, req FrameRequest) (*Frame, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveFrameLatency(time.Since(start))
	}()

	now := requestcontext.Now(ctx)
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Mode == "" {
		req.Mode = palette.ModeCumulative
	}
	_, span := s.tracer.Start(ctx, "overlay.Frame", trace.WithAttributes(
		attribute.Int("frame.year", req.Year),
		attribute.String("frame.mode", string(req.Mode)),
		attribute.Bool("frame.timeline", req.Timeline),
	))
	defer span.End()

	s.mu.RLock()
	if !s.loaded {
		s.mu.RUnlock()
		return nil, dErrors.New(dErrors.CodeUnavailable, "overlays are still loading")
	}
	trips := s.tripLog
	overlays := s.overlayLs
	p := s.palette
	s.mu.RUnlock()

	roles := palette.DeriveRoles(p)
	items := compositor.Expand(overlays, compositor.Frame{
		Year:        req.Year,
		Timeline:    req.Timeline,
		Mode:        req.Mode,
		Roles:       roles,
		Trips:       trips,
		Home:        s.home,
		DefaultFill: s.defaultFill,
		Now:         now,
		DerivedID:   s.sync.OverlayID(),
	})
	fills := compositor.Compose(items)
	span.SetAttributes(attribute.Int("frame.fills", len(fills)))

	return &Frame{
		Year:     req.Year,
		Mode:     req.Mode,
		Timeline: req.Timeline,
		Palette:  p.Name,
		Roles:    roles,
		Years:    timeline.YearsFromTrips(trips),
		Items:    items,
		Fills:    fills,
	}, nil
}

// syncLocked runs one seed+reconcile pass over the current state. Callers
// hold s.mu for writing.
func (s *Service) syncLocked(ctx context.Context) reconcile.Result {
	res := s.sync.Sync(ctx, reconcile.Input{
		Trips:        s.tripLog,
		Overlays:     s.overlayLs,
		Loading:      !s.loaded,
		VisitedColor: palette.DeriveRoles(s.palette).Visited(),
		Now:          requestcontext.Now(ctx),
	})
	s.overlayLs = res.Overlays
	return res
}
