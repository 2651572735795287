package timeline

import (
	"time"

	"visitmap/internal/trips/models"
)

// CountryClass is the classification of one country for a selected year.
type CountryClass struct {
	Code    string
	Signals Signals
	Role    Role
}

// Bucket is the cumulative-mode bucket of the country.
func (c CountryClass) Bucket() int {
	return CountBucket(c.Signals.CountUpToYear)
}

// Classification holds every country known to the trip log (plus the home
// country) classified for Year.
type Classification struct {
	Year      int
	Countries []CountryClass
	index     map[string]int
}

// Get returns the classification of code. Countries outside the trip log come
// back as unvisited.
func (c *Classification) Get(code string) CountryClass {
	if i, ok := c.index[code]; ok {
		return c.Countries[i]
	}
	sig := Signals{Year: c.Year}
	return CountryClass{Code: code, Signals: sig, Role: EvaluateRole(sig)}
}

// Classify computes the signals and role of every country for year.
// home may be empty.
func Classify(trips []models.Trip, year int, home string, now time.Time) *Classification {
	countsUpTo := VisitCountsUpToYear(trips, year, now)
	countsUpToPrev := VisitCountsUpToYear(trips, year-1, now)
	thisYear := newCountrySet()
	thisYear.add(VisitedCountriesForYear(trips, year)...)
	upcoming := NextUpcomingYears(trips, now)

	candidates := newCountrySet()
	candidates.add(home)
	candidates.add(AllCountries(trips)...)

	out := &Classification{
		Year:      year,
		Countries: make([]CountryClass, 0, len(candidates.order)),
		index:     make(map[string]int, len(candidates.order)),
	}
	for _, code := range candidates.order {
		sig := Signals{
			IsHome:            home != "" && code == home,
			CountUpToYear:     countsUpTo[code],
			CountUpToPrevYear: countsUpToPrev[code],
			NewThisYear:       thisYear.has(code),
			NextUpcomingYear:  upcoming[code],
			Year:              year,
		}
		out.index[code] = len(out.Countries)
		out.Countries = append(out.Countries, CountryClass{Code: code, Signals: sig, Role: EvaluateRole(sig)})
	}
	return out
}
