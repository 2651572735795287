package palette

import (
	"fmt"
	"strings"
)

// Mode selects how visit data is turned into color.
type Mode string

const (
	// ModeCumulative colors by total visit count up to the selected year.
	ModeCumulative Mode = "cumulative"
	// ModeYearly colors by the country's role in the selected year.
	ModeYearly Mode = "yearly"
)

// ParseMode parses a mode name. The empty string selects cumulative.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCumulative, "":
		return ModeCumulative, nil
	case ModeYearly:
		return ModeYearly, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

// Flags are the yearly classification facts the resolver reads.
type Flags struct {
	UpcomingRevisit bool
	Upcoming        bool
	Revisit         bool
	New             bool
}

// ResolveColor maps a visit count or yearly flags to a display color.
//
// Home short-circuits in both modes. Cumulative mode buckets count; yearly
// mode walks the flags in precedence order: upcoming revisit, upcoming,
// revisit, new, unvisited (count 0), previous. A role with no color falls back
// to defaultFill. Unknown modes resolve as cumulative.
func ResolveColor(count int, isHome bool, defaultFill string, mode Mode, roles VisitColorRoles, flags Flags) string {
	if isHome {
		return orFill(roles.Home, defaultFill)
	}
	if mode == ModeYearly {
		return orFill(resolveYearly(count, defaultFill, roles.Yearly, flags), defaultFill)
	}
	return orFill(resolveCumulative(count, defaultFill, roles), defaultFill)
}

func resolveCumulative(count int, defaultFill string, roles VisitColorRoles) string {
	switch {
	case count <= 0:
		return defaultFill
	case count >= len(roles.VisitCounts):
		return roles.VisitCounts[len(roles.VisitCounts)-1]
	default:
		return roles.VisitCounts[count-1]
	}
}

func resolveYearly(count int, defaultFill string, y YearlyRoles, flags Flags) string {
	switch {
	case flags.UpcomingRevisit:
		return y.UpcomingRevisit
	case flags.Upcoming:
		return y.Upcoming
	case flags.Revisit:
		return y.Revisit
	case flags.New:
		return y.New
	case count == 0:
		return defaultFill
	default:
		return y.Previous
	}
}

func orFill(color, defaultFill string) string {
	if color == "" {
		return defaultFill
	}
	return color
}
