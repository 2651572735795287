package reconcile

//go:generate mockgen -source=reconcile.go -destination=mocks/persister.go -package=mocks Persister

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"visitmap/internal/overlay/metrics"
	"visitmap/internal/overlay/models"
	"visitmap/internal/overlay/reconcile/mocks"
	tripmodels "visitmap/internal/trips/models"
)

type ReconcileSuite struct {
	suite.Suite
	ctx       context.Context
	now       time.Time
	persister *mocks.MockPersister
	metrics   *metrics.Metrics
	sync      *Synchronizer
}

func TestReconcileSuite(t *testing.T) {
	suite.Run(t, new(ReconcileSuite))
}

func (s *ReconcileSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.persister = mocks.NewMockPersister(ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	s.metrics = metrics.New(prometheus.NewRegistry())

	var err error
	s.sync, err = New(s.persister, WithMetrics(s.metrics))
	s.Require().NoError(err)
}

func (s *ReconcileSuite) trips() []tripmodels.Trip {
	return []tripmodels.Trip{
		{ID: "a", CountryCodes: []string{"FR", "BE"}, StartDate: "2023-04-01"},
		{ID: "b", CountryCodes: []string{"JP"}, StartDate: "2030-01-01"},
	}
}

func (s *ReconcileSuite) overlays() []models.Overlay {
	return []models.Overlay{
		models.NewVisitedOverlay(models.VisitedCountriesID, "#111111"),
		{ID: "wishlist", Name: "Wishlist", Color: "#00ff00", Countries: []string{"NZ"}, Visible: true},
	}
}

func (s *ReconcileSuite) TestScenarioEmptyStart() {
	in := Input{Overlays: nil, Trips: nil, VisitedColor: "#90e0ef", Now: s.now}

	s.persister.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Times(1)
	first := s.sync.Sync(s.ctx, in)

	s.Require().Len(first.Overlays, 1)
	s.Equal(models.VisitedCountriesID, first.Overlays[0].ID)
	s.Empty(first.Overlays[0].Countries)
	s.True(first.Seeded)
	s.True(first.Written())

	// No further EXPECT: a second identical pass must not write.
	in.Overlays = first.Overlays
	second := s.sync.Sync(s.ctx, in)
	s.Equal(OutcomeUnchanged, second.Outcome)
	s.False(second.Written())
}

func (s *ReconcileSuite) TestSeededListIsWrittenOnce() {
	s.persister.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Times(1)

	res := s.sync.Sync(s.ctx, Input{
		Overlays:     []models.Overlay{{ID: "wishlist", Countries: []string{"NZ"}}},
		Trips:        s.trips(),
		VisitedColor: "#90e0ef",
		Now:          s.now,
	})

	s.Require().Len(res.Overlays, 2)
	s.Equal(models.VisitedCountriesID, res.Overlays[0].ID, "seed goes first")
	s.Equal([]string{"FR", "BE"}, res.Overlays[0].Countries)
	s.Equal("wishlist", res.Overlays[1].ID)
}

func (s *ReconcileSuite) TestUpdatesOnlyDerivedFields() {
	var written []models.Overlay
	s.persister.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, list []models.Overlay) { written = list })

	in := Input{Overlays: s.overlays(), Trips: s.trips(), VisitedColor: "#90e0ef", Now: s.now}
	res := s.sync.Reconcile(s.ctx, in)

	s.Equal(OutcomeChanged, res.Outcome)
	s.Equal([]string{"FR", "BE"}, res.Overlays[0].Countries)
	s.Equal("#90e0ef", res.Overlays[0].Color)
	s.Equal("Visited countries", res.Overlays[0].Name)
	s.True(res.Overlays[0].IsSnapshot())
	s.Equal(in.Overlays[1], res.Overlays[1], "other overlays untouched")
	s.Equal(res.Overlays, written)

	s.Empty(in.Overlays[0].Countries, "input list is not mutated")
}

func (s *ReconcileSuite) TestColorChangeAloneWrites() {
	overlays := s.overlays()
	overlays[0].Countries = []string{"FR", "BE"}

	s.persister.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Times(1)
	res := s.sync.Reconcile(s.ctx, Input{Overlays: overlays, Trips: s.trips(), VisitedColor: "#caf0f8", Now: s.now})

	s.Equal(OutcomeChanged, res.Outcome)
	s.Equal("#caf0f8", res.Overlays[0].Color)
}

func (s *ReconcileSuite) TestEmptyColorKeepsCurrent() {
	overlays := s.overlays()
	overlays[0].Countries = []string{"FR", "BE"}

	res := s.sync.Reconcile(s.ctx, Input{Overlays: overlays, Trips: s.trips(), Now: s.now})
	s.Equal(OutcomeUnchanged, res.Outcome)
}

func (s *ReconcileSuite) TestOrderSensitiveChangeDetection() {
	overlays := s.overlays()
	overlays[0].Countries = []string{"BE", "FR"}
	overlays[0].Color = "#90e0ef"

	s.Run("ordered comparison sees a change", func() {
		s.persister.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Times(1)
		res := s.sync.Reconcile(s.ctx, Input{Overlays: overlays, Trips: s.trips(), VisitedColor: "#90e0ef", Now: s.now})
		s.Equal(OutcomeChanged, res.Outcome)
	})

	s.Run("set comparison does not", func() {
		setSync, err := New(s.persister, WithComparator(SetEqual))
		s.Require().NoError(err)
		res := setSync.Reconcile(s.ctx, Input{Overlays: overlays, Trips: s.trips(), VisitedColor: "#90e0ef", Now: s.now})
		s.Equal(OutcomeUnchanged, res.Outcome)
	})
}

func (s *ReconcileSuite) TestGates() {
	s.Run("loading", func() {
		res := s.sync.Sync(s.ctx, Input{Overlays: s.overlays(), Trips: s.trips(), Loading: true, Now: s.now})
		s.Equal(OutcomeSkipped, res.Outcome)
		s.False(res.Seeded)
	})

	s.Run("empty list", func() {
		res := s.sync.Reconcile(s.ctx, Input{Trips: s.trips(), Now: s.now})
		s.Equal(OutcomeSkipped, res.Outcome)
	})

	s.Run("no derived overlay", func() {
		res := s.sync.Reconcile(s.ctx, Input{
			Overlays: []models.Overlay{{ID: "wishlist"}},
			Trips:    s.trips(),
			Now:      s.now,
		})
		s.Equal(OutcomeMissing, res.Outcome)
	})

	s.Equal(float64(2), testutil.ToFloat64(s.metrics.ReconcileOutcomes.WithLabelValues("skipped")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.ReconcileOutcomes.WithLabelValues("missing")))
}

func (s *ReconcileSuite) TestCustomOverlayID() {
	custom, err := New(s.persister, WithOverlayID("trips-derived"), WithDefaultColor("#abcdef"))
	s.Require().NoError(err)

	list, seeded := custom.Seed(nil)
	s.True(seeded)
	s.Equal("trips-derived", list[0].ID)
	s.Equal("#abcdef", list[0].Color)

	again, seeded := custom.Seed(list)
	s.False(seeded)
	s.Len(again, 1)
}

func (s *ReconcileSuite) TestRequiresPersister() {
	_, err := New(nil)
	s.Error(err)
}

func TestComparators(t *testing.T) {
	cases := []struct {
		name    string
		a, b    []string
		ordered bool
		set     bool
	}{
		{"both empty", nil, []string{}, true, true},
		{"same order", []string{"FR", "DE"}, []string{"FR", "DE"}, true, true},
		{"different order", []string{"FR", "DE"}, []string{"DE", "FR"}, false, true},
		{"different length", []string{"FR"}, []string{"FR", "DE"}, false, false},
		{"different members", []string{"FR", "IT"}, []string{"FR", "DE"}, false, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderedEqual(tt.a, tt.b); got != tt.ordered {
				t.Fatalf("OrderedEqual = %v, want %v", got, tt.ordered)
			}
			if got := SetEqual(tt.a, tt.b); got != tt.set {
				t.Fatalf("SetEqual = %v, want %v", got, tt.set)
			}
		})
	}
}
