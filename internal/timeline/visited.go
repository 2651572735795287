// Package timeline derives visited-country sets from a trip log and classifies
// countries relative to a selected calendar year.
//
// Everything here is pure: results depend only on the arguments, and "now" is
// always passed explicitly. Country lists are returned in first-seen order over
// the trip list so repeated calls over the same input are stable.
package timeline

import (
	"sort"
	"time"

	"visitmap/internal/trips/models"
)

// countrySet is an insertion-ordered set of country codes.
type countrySet struct {
	seen  map[string]struct{}
	order []string
}

func newCountrySet() *countrySet {
	return &countrySet{seen: make(map[string]struct{})}
}

func (s *countrySet) add(codes ...string) {
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := s.seen[c]; ok {
			continue
		}
		s.seen[c] = struct{}{}
		s.order = append(s.order, c)
	}
}

func (s *countrySet) has(code string) bool {
	_, ok := s.seen[code]
	return ok
}

func (s *countrySet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// YearsFromTrips returns the unique start years of trips with a parsable start
// date, ascending.
func YearsFromTrips(trips []models.Trip) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, t := range trips {
		start, ok := t.Start()
		if !ok {
			continue
		}
		if _, dup := seen[start.Year()]; dup {
			continue
		}
		seen[start.Year()] = struct{}{}
		years = append(years, start.Year())
	}
	sort.Ints(years)
	return years
}

// VisitedCountriesOverall returns every country from trips that started on or
// before now. Future trips and trips with unparsable dates are excluded.
func VisitedCountriesOverall(trips []models.Trip, now time.Time) []string {
	set := newCountrySet()
	for _, t := range trips {
		if t.StartedBy(now) {
			set.add(t.CountryCodes...)
		}
	}
	return set.list()
}

// VisitedCountriesForYear returns the union of countries of every trip whose
// [startYear, endYear] span includes year. Trips are not filtered by now, so a
// trip planned later in the year already counts.
func VisitedCountriesForYear(trips []models.Trip, year int) []string {
	set := newCountrySet()
	for _, t := range trips {
		if spansYear(t, year) {
			set.add(t.CountryCodes...)
		}
	}
	return set.list()
}

// VisitedCountriesUpToYear returns the union of VisitedCountriesForYear over
// every year <= year, restricted to trips that have started as of now. The
// result for Y always contains the result for Y-1.
func VisitedCountriesUpToYear(trips []models.Trip, year int, now time.Time) []string {
	set := newCountrySet()
	for _, t := range trips {
		if reachesYear(t, year) && t.StartedBy(now) {
			set.add(t.CountryCodes...)
		}
	}
	return set.list()
}

// VisitCountsUpToYear counts, per country, the trips that have started as of
// now and whose span reaches a year <= year. A trip listing a country twice
// counts once.
func VisitCountsUpToYear(trips []models.Trip, year int, now time.Time) map[string]int {
	counts := make(map[string]int)
	for _, t := range trips {
		if !reachesYear(t, year) || !t.StartedBy(now) {
			continue
		}
		trip := newCountrySet()
		trip.add(t.CountryCodes...)
		for _, c := range trip.order {
			counts[c]++
		}
	}
	return counts
}

// NextUpcomingYears maps each country to the smallest start year among its
// trips that start strictly after now.
func NextUpcomingYears(trips []models.Trip, now time.Time) map[string]int {
	next := make(map[string]int)
	for _, t := range trips {
		start, ok := t.Start()
		if !ok || !start.After(now) {
			continue
		}
		for _, c := range t.CountryCodes {
			if c == "" {
				continue
			}
			if y, seen := next[c]; !seen || start.Year() < y {
				next[c] = start.Year()
			}
		}
	}
	return next
}

// AllCountries returns every country code in the log regardless of dates.
func AllCountries(trips []models.Trip) []string {
	set := newCountrySet()
	for _, t := range trips {
		set.add(t.CountryCodes...)
	}
	return set.list()
}

func spansYear(t models.Trip, year int) bool {
	startYear, endYear, ok := t.YearSpan()
	return ok && startYear <= year && year <= endYear
}

// reachesYear reports whether some y <= year lies inside the trip's span.
func reachesYear(t models.Trip, year int) bool {
	startYear, endYear, ok := t.YearSpan()
	return ok && startYear <= min(year, endYear)
}
