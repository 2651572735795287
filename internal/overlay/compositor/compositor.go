// Package compositor turns the overlay list into per-country render rows for
// one map frame and merges rows that claim the same country.
package compositor

import (
	"sort"
	"time"

	"visitmap/internal/overlay/models"
	"visitmap/internal/palette"
	"visitmap/internal/timeline"
	tripmodels "visitmap/internal/trips/models"
)

// Frame is everything one render pass depends on.
type Frame struct {
	Year int
	// Timeline selects timeline display: only timeline-enabled overlays are
	// drawn and the derived overlay is classified for Year.
	Timeline    bool
	Mode        palette.Mode
	Roles       palette.VisitColorRoles
	Trips       []tripmodels.Trip
	Home        string
	DefaultFill string
	Now         time.Time
	// DerivedID is the id of the visited-countries overlay.
	DerivedID string
}

// CountryFill is the final color of one country.
type CountryFill struct {
	IsoCode string `json:"isoCode"`
	Color   string `json:"color"`
	// OverlayIDs lists the claiming overlays in paint order.
	OverlayIDs []string `json:"overlayIds"`
}

// FlagsFor adapts classifier signals to the resolver's yearly flags.
func FlagsFor(sig timeline.Signals) palette.Flags {
	return palette.Flags{
		UpcomingRevisit: sig.IsUpcomingRevisit(),
		Upcoming:        sig.IsUpcoming(),
		Revisit:         sig.IsRevisitThisYear(),
		New:             sig.NewThisYear,
	}
}

// PaintOrder returns the overlays that are drawn in f, bottom layer first.
// Overlays without an explicit Order keep their list position as order; ties
// keep list order.
func PaintOrder(overlays []models.Overlay, f Frame) []models.Overlay {
	type ranked struct {
		overlay models.Overlay
		rank    int
	}
	drawn := make([]ranked, 0, len(overlays))
	for i, o := range overlays {
		if !o.Visible {
			continue
		}
		if f.Timeline && !o.TimelineEnabled {
			continue
		}
		rank := i
		if o.Order != nil {
			rank = *o.Order
		}
		drawn = append(drawn, ranked{overlay: o, rank: rank})
	}
	sort.SliceStable(drawn, func(a, b int) bool {
		return drawn[a].rank < drawn[b].rank
	})
	out := make([]models.Overlay, len(drawn))
	for i, d := range drawn {
		out[i] = d.overlay
	}
	return out
}

// Expand produces one row per (overlay, country) pair for the frame, in paint
// order.
func Expand(overlays []models.Overlay, f Frame) []models.Item {
	drawn := PaintOrder(overlays, f)
	var (
		items []models.Item
		class *timeline.Classification
	)
	for _, o := range drawn {
		if f.Timeline && o.ID == f.DerivedID {
			if class == nil {
				class = timeline.Classify(f.Trips, f.Year, f.Home, f.Now)
			}
			items = append(items, expandDerived(o, class, f)...)
			continue
		}
		items = append(items, expandStatic(o)...)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items
}

func expandStatic(o models.Overlay) []models.Item {
	items := make([]models.Item, 0, len(o.Countries))
	seen := make(map[string]struct{}, len(o.Countries))
	for _, code := range o.Countries {
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		items = append(items, models.Item{IsoCode: code, Color: o.Color, OverlayID: o.ID})
	}
	return items
}

// expandDerived colors the derived overlay through the classifier. A snapshot
// overlay shows everything reached up to the year; otherwise only countries
// visited in the year, upcoming in it, or home are shown.
func expandDerived(o models.Overlay, class *timeline.Classification, f Frame) []models.Item {
	items := make([]models.Item, 0, len(class.Countries))
	for _, c := range class.Countries {
		sig := c.Signals
		if !o.IsSnapshot() && !sig.IsHome && !sig.NewThisYear && !sig.IsUpcoming() {
			continue
		}
		if !shown(c, f.Mode) {
			continue
		}
		count := sig.CountUpToYear
		items = append(items, models.Item{
			IsoCode:   c.Code,
			Color:     palette.ResolveColor(count, sig.IsHome, f.DefaultFill, f.Mode, f.Roles, FlagsFor(sig)),
			OverlayID: o.ID,
			Count:     &count,
		})
	}
	return items
}

// shown drops rows that would only repaint the default fill.
func shown(c timeline.CountryClass, mode palette.Mode) bool {
	if c.Signals.IsHome {
		return true
	}
	if mode == palette.ModeYearly {
		return c.Role != timeline.RoleUnvisited
	}
	return c.Signals.CountUpToYear > 0
}

// Compose groups rows by country and produces one fill per country, in
// first-claim order. A country claimed once keeps its color as given; several
// claims are alpha-composited over white in row order.
func Compose(items []models.Item) []CountryFill {
	type group struct {
		colors []string
		ids    []string
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, it := range items {
		g, ok := groups[it.IsoCode]
		if !ok {
			g = &group{}
			groups[it.IsoCode] = g
			order = append(order, it.IsoCode)
		}
		g.colors = append(g.colors, it.Color)
		g.ids = append(g.ids, it.OverlayID)
	}

	fills := make([]CountryFill, 0, len(order))
	for _, code := range order {
		g := groups[code]
		color := g.colors[0]
		if len(g.colors) > 1 {
			color = palette.CompositeColors(g.colors)
		}
		fills = append(fills, CountryFill{IsoCode: code, Color: color, OverlayIDs: g.ids})
	}
	return fills
}
