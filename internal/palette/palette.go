// Package palette turns a user-selected color palette into display colors.
//
// A palette is an ordered list of colors whose positions carry meaning: the
// role a color plays is decided by its index, not by the user. Palettes are
// validated once when they are loaded (New, LoadCatalog); the resolver assumes
// a validated role set and never re-checks it at render time.
package palette

import (
	"errors"
	"fmt"
	"strings"
)

// MinColors is the number of colors a palette needs to fill every role.
const MinColors = 5

var (
	// ErrPaletteTooShort is returned for palettes that cannot fill every role.
	ErrPaletteTooShort = errors.New("palette has too few colors")
	// ErrPaletteUnnamed is returned for palettes without a name.
	ErrPaletteUnnamed = errors.New("palette name is required")
)

// Palette is a named, ordered list of colors.
type Palette struct {
	Name   string   `json:"name" yaml:"name"`
	Colors []string `json:"colors" yaml:"colors"`
}

// New validates and constructs a palette.
func New(name string, colors []string) (Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Palette{}, ErrPaletteUnnamed
	}
	if len(colors) < MinColors {
		return Palette{}, fmt.Errorf("palette %q: %w: got %d, need %d", name, ErrPaletteTooShort, len(colors), MinColors)
	}
	cleaned := make([]string, len(colors))
	for i, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			return Palette{}, fmt.Errorf("palette %q: color %d is empty", name, i)
		}
		cleaned[i] = c
	}
	return Palette{Name: name, Colors: cleaned}, nil
}

// at returns the color at i, or "" past the end of the list.
func (p Palette) at(i int) string {
	if i < 0 || i >= len(p.Colors) {
		return ""
	}
	return p.Colors[i]
}
