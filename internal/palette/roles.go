package palette

// HomeColor marks the home country. It does not come from the palette so home
// stays recognizable under every theme.
const HomeColor = "#d62828"

// YearlyRoles are the colors used when viewing one selected year.
type YearlyRoles struct {
	New             string `json:"new"`
	Revisit         string `json:"revisit"`
	Previous        string `json:"previous"`
	Upcoming        string `json:"upcoming"`
	UpcomingRevisit string `json:"upcomingRevisit"`
}

// VisitColorRoles is the fixed-size role set derived from a palette.
type VisitColorRoles struct {
	Home string `json:"home"`
	// VisitCounts holds the colors for 1, 2, 3 and 4-or-more visits.
	VisitCounts [4]string   `json:"visitCounts"`
	Yearly      YearlyRoles `json:"yearly"`
}

// DeriveRoles maps palette positions to roles.
//
// VisitCounts takes the first four colors in reverse order while Yearly takes
// the first five in index order. Both mappings are fixed; changing either
// recolors every saved map.
func DeriveRoles(p Palette) VisitColorRoles {
	return VisitColorRoles{
		Home: HomeColor,
		VisitCounts: [4]string{
			p.at(3),
			p.at(2),
			p.at(1),
			p.at(0),
		},
		Yearly: YearlyRoles{
			New:             p.at(0),
			Revisit:         p.at(1),
			Previous:        p.at(2),
			Upcoming:        p.at(3),
			UpcomingRevisit: p.at(4),
		},
	}
}

// Visited is the color written to the derived visited-countries overlay.
func (r VisitColorRoles) Visited() string {
	return r.VisitCounts[0]
}
