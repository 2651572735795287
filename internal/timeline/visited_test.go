package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"visitmap/internal/trips/models"
)

type VisitedSuite struct {
	suite.Suite
	now time.Time
}

func TestVisitedSuite(t *testing.T) {
	suite.Run(t, new(VisitedSuite))
}

func (s *VisitedSuite) SetupTest() {
	s.now = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
}

func trip(id, start, end string, codes ...string) models.Trip {
	return models.Trip{ID: id, CountryCodes: codes, StartDate: start, EndDate: end}
}

func (s *VisitedSuite) TestYearsFromTrips() {
	s.Run("unique ascending years", func() {
		trips := []models.Trip{
			trip("a", "2024-01-01", "", "FR"),
			trip("b", "2019-05-01", "", "US"),
			trip("c", "2024-09-01", "", "DE"),
			trip("d", "not a date", "", "JP"),
		}
		s.Equal([]int{2019, 2024}, YearsFromTrips(trips))
	})

	s.Run("empty log", func() {
		s.Empty(YearsFromTrips(nil))
	})
}

func (s *VisitedSuite) TestVisitedCountriesOverall() {
	trips := []models.Trip{
		trip("past", "2023-03-01", "2023-03-10", "FR", "BE"),
		trip("today", "2024-07-01", "", "NL"),
		trip("future", "2024-12-24", "", "AT"),
		trip("broken", "someday", "", "CH"),
		trip("dup", "2020-01-01", "", "FR"),
	}

	got := VisitedCountriesOverall(trips, s.now)

	s.Equal([]string{"FR", "BE", "NL"}, got)
	s.NotContains(got, "AT", "trips starting after now are excluded")
	s.NotContains(got, "CH", "unparsable trips are excluded")
}

func (s *VisitedSuite) TestScenarioSingleTrip() {
	trips := []models.Trip{trip("us", "2023-01-01", "2023-01-05", "US")}

	s.Equal([]string{"US"}, VisitedCountriesForYear(trips, 2023))
	s.Empty(VisitedCountriesUpToYear(trips, 2022, s.now))
	s.Equal([]string{"US"}, VisitedCountriesUpToYear(trips, 2023, s.now))
}

func (s *VisitedSuite) TestVisitedCountriesForYear() {
	s.Run("multi-year span covers every year", func() {
		trips := []models.Trip{trip("nye", "2022-12-30", "2024-01-02", "AU")}
		for _, y := range []int{2022, 2023, 2024} {
			s.Equal([]string{"AU"}, VisitedCountriesForYear(trips, y), "year %d", y)
		}
		s.Empty(VisitedCountriesForYear(trips, 2025))
	})

	s.Run("includes future trips of the year", func() {
		trips := []models.Trip{trip("xmas", "2024-12-24", "", "AT")}
		s.Equal([]string{"AT"}, VisitedCountriesForYear(trips, 2024))
	})

	s.Run("end before start counts for the start year only", func() {
		trips := []models.Trip{trip("odd", "2024-05-01", "2023-05-01", "IS")}
		s.Equal([]string{"IS"}, VisitedCountriesForYear(trips, 2024))
		s.Empty(VisitedCountriesForYear(trips, 2023))
		s.Equal([]string{"IS"}, VisitedCountriesUpToYear(trips, 2024, s.now))
		s.Equal(map[string]int{"IS": 1}, VisitCountsUpToYear(trips, 2024, s.now))
	})
}

func (s *VisitedSuite) TestVisitedCountriesUpToYear() {
	s.Run("excludes same-year trips that have not started", func() {
		trips := []models.Trip{
			trip("done", "2024-02-01", "", "PT"),
			trip("later", "2024-11-01", "", "ES"),
		}
		s.Equal([]string{"PT"}, VisitedCountriesUpToYear(trips, 2024, s.now))
	})

	s.Run("monotonic in year", func() {
		trips := []models.Trip{
			trip("a", "2018-01-01", "", "FR"),
			trip("b", "2020-06-01", "2021-02-01", "IT", "SM"),
			trip("c", "2023-04-01", "", "GR"),
			trip("d", "2024-03-01", "", "FR", "CH"),
			trip("e", "2026-01-01", "", "NZ"),
		}
		prev := VisitedCountriesUpToYear(trips, 2015, s.now)
		for y := 2016; y <= 2027; y++ {
			cur := VisitedCountriesUpToYear(trips, y, s.now)
			s.Subset(cur, prev, "year %d must contain year %d", y, y-1)
			prev = cur
		}
		s.NotContains(prev, "NZ")
	})
}

func (s *VisitedSuite) TestVisitCountsUpToYear() {
	trips := []models.Trip{
		trip("a", "2019-01-01", "", "FR"),
		trip("b", "2022-01-01", "", "FR", "FR", "DE"),
		trip("c", "2024-01-01", "", "FR"),
		trip("d", "2025-01-01", "", "FR"),
	}

	s.Equal(map[string]int{"FR": 2, "DE": 1}, VisitCountsUpToYear(trips, 2023, s.now))
	s.Equal(map[string]int{"FR": 3, "DE": 1}, VisitCountsUpToYear(trips, 2025, s.now))
}

func (s *VisitedSuite) TestNextUpcomingYears() {
	trips := []models.Trip{
		trip("a", "2026-01-01", "", "JP"),
		trip("b", "2025-03-01", "", "JP", "KR"),
		trip("c", "2023-01-01", "", "KR"),
	}
	s.Equal(map[string]int{"JP": 2025, "KR": 2025}, NextUpcomingYears(trips, s.now))
}

func TestVisitedCountriesOverallSubsetOfLog(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trips := []models.Trip{
		trip("a", "2020-01-01", "", "FR", "DE"),
		trip("b", "2030-01-01", "", "MX"),
		trip("c", "", "", "BR"),
	}
	assert.Subset(t, AllCountries(trips), VisitedCountriesOverall(trips, now))
	assert.NotContains(t, VisitedCountriesOverall(trips, now), "MX")
}
