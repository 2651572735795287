package timeline

// Role is the yearly classification of one country.
type Role string

const (
	RoleHome            Role = "home"
	RoleUpcomingRevisit Role = "upcomingRevisit"
	RoleUpcoming        Role = "upcoming"
	RoleRevisit         Role = "revisit"
	RoleNew             Role = "new"
	RoleUnvisited       Role = "unvisited"
	RolePrevious        Role = "previous"
)

// MaxCountBucket is the highest cumulative bucket; counts above it share it.
const MaxCountBucket = 4

// Signals are the per-country facts the rule chain decides on.
type Signals struct {
	IsHome bool
	// CountUpToYear counts started trips reaching the selected year or earlier.
	CountUpToYear int
	// CountUpToPrevYear is the same count for the year before.
	CountUpToPrevYear int
	// NewThisYear is membership in VisitedCountriesForYear(selected year).
	NewThisYear bool
	// NextUpcomingYear is 0 when no trip to the country starts after now.
	NextUpcomingYear int
	Year             int
}

// IsRevisitThisYear reports a visit in the selected year to a country already
// visited in an earlier year.
func (s Signals) IsRevisitThisYear() bool {
	return s.NewThisYear && s.CountUpToPrevYear > 0
}

// IsUpcoming reports that the country's next future trip starts in the
// selected year.
func (s Signals) IsUpcoming() bool {
	return s.NextUpcomingYear != 0 && s.NextUpcomingYear == s.Year
}

// IsUpcomingVisit is an upcoming first visit.
func (s Signals) IsUpcomingVisit() bool {
	return s.IsUpcoming() && s.CountUpToYear == 0
}

// IsUpcomingRevisit is an upcoming trip to a country already visited.
func (s Signals) IsUpcomingRevisit() bool {
	return s.IsUpcoming() && s.CountUpToYear > 0
}

// EvaluateRole applies the yearly rule chain. This is pure domain logic.
// Rule priority (first match wins):
//  1. Home country overrides everything
//  2. Upcoming revisit
//  3. Upcoming first visit
//  4. Revisit in the selected year
//  5. New in the selected year
//  6. Never visited up to the selected year
//  7. Visited in an earlier year
func EvaluateRole(s Signals) Role {
	// Rule 1: Home
	if s.IsHome {
		return RoleHome
	}

	// Rule 2: Upcoming revisit
	if s.IsUpcomingRevisit() {
		return RoleUpcomingRevisit
	}

	// Rule 3: Upcoming
	if s.IsUpcoming() {
		return RoleUpcoming
	}

	// Rule 4: Revisit this year
	if s.IsRevisitThisYear() {
		return RoleRevisit
	}

	// Rule 5: New this year
	if s.NewThisYear {
		return RoleNew
	}

	// Rule 6: Unvisited
	if s.CountUpToYear == 0 {
		return RoleUnvisited
	}

	return RolePrevious
}

// CountBucket maps a visit count to the cumulative bucket 0..MaxCountBucket.
func CountBucket(count int) int {
	if count < 0 {
		return 0
	}
	return min(count, MaxCountBucket)
}
