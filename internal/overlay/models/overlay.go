package models

// VisitedCountriesID is the default id of the overlay derived from the trip log.
const VisitedCountriesID = "visited-countries"

// DefaultVisitedColor seeds the derived overlay before the first reconcile
// writes the palette's color.
const DefaultVisitedColor = "rgba(46, 134, 171, 0.6)"

// Overlay is a named, colored, toggleable set of country codes. Overlays with
// TimelineEnabled also take part in year-scoped display; TimelineSnapshot picks
// the cumulative-to-year view over the exact-year view.
type Overlay struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Color            string   `json:"color"`
	Countries        []string `json:"countries"`
	Visible          bool     `json:"visible"`
	Order            *int     `json:"order,omitempty"`
	Tooltip          *string  `json:"tooltip,omitempty"`
	TimelineEnabled  bool     `json:"timelineEnabled,omitempty"`
	TimelineSnapshot *bool    `json:"timelineSnapshot,omitempty"`
}

// IsSnapshot reports whether the overlay shows the cumulative-to-year view.
func (o Overlay) IsSnapshot() bool {
	return o.TimelineSnapshot != nil && *o.TimelineSnapshot
}

// Clone returns a deep copy so callers can edit without aliasing stored state.
func (o Overlay) Clone() Overlay {
	c := o
	if o.Countries != nil {
		c.Countries = append(make([]string, 0, len(o.Countries)), o.Countries...)
	}
	if o.Order != nil {
		v := *o.Order
		c.Order = &v
	}
	if o.Tooltip != nil {
		v := *o.Tooltip
		c.Tooltip = &v
	}
	if o.TimelineSnapshot != nil {
		v := *o.TimelineSnapshot
		c.TimelineSnapshot = &v
	}
	return c
}

// CloneAll deep-copies a list of overlays.
func CloneAll(list []Overlay) []Overlay {
	if list == nil {
		return nil
	}
	out := make([]Overlay, len(list))
	for i, o := range list {
		out[i] = o.Clone()
	}
	return out
}

// IndexOf returns the position of the overlay with id, or -1.
func IndexOf(list []Overlay, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// NewVisitedOverlay builds the seed for the derived overlay.
func NewVisitedOverlay(id, color string) Overlay {
	snapshot := true
	return Overlay{
		ID:               id,
		Name:             "Visited countries",
		Color:            color,
		Countries:        []string{},
		Visible:          true,
		TimelineEnabled:  true,
		TimelineSnapshot: &snapshot,
	}
}

// Item is one render row: a country claimed by an overlay for the current
// frame. Count is set for rows derived from visit counts.
type Item struct {
	IsoCode   string `json:"isoCode"`
	Color     string `json:"color"`
	OverlayID string `json:"overlayId"`
	Count     *int   `json:"count,omitempty"`
}
