package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeColors(t *testing.T) {
	tests := []struct {
		name   string
		colors []string
		want   string
	}{
		{name: "empty is white", colors: nil, want: "#ffffff"},
		{name: "opaque red", colors: []string{"rgba(255,0,0,1)"}, want: "#ff0000"},
		{name: "two translucent layers", colors: []string{"rgba(255,0,0,0.5)", "rgba(0,255,0,0.5)"}, want: "#80c040"},
		{name: "opaque top layer wins", colors: []string{"rgba(255,0,0,0.5)", "#0000ff"}, want: "#0000ff"},
		{name: "transparent layer is invisible", colors: []string{"rgb(10, 20, 30)", "rgba(0,0,0,0)"}, want: "#0a141e"},
		{name: "unparsable color is opaque white", colors: []string{"#000000", "chartreuse"}, want: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompositeColors(tt.colors))
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want RGBA
	}{
		{in: "rgba(255, 0, 0, 0.5)", ok: true, want: RGBA{R: 255, A: 0.5}},
		{in: "RGB(1,2,3)", ok: true, want: RGBA{R: 1, G: 2, B: 3, A: 1}},
		{in: "rgba(300, -4, 0, 2)", ok: true, want: RGBA{R: 255, A: 1}},
		{in: "#fff", ok: true, want: RGBA{R: 255, G: 255, B: 255, A: 1}},
		{in: "#102030", ok: true, want: RGBA{R: 16, G: 32, B: 48, A: 1}},
		{in: "#ff000000", ok: true, want: RGBA{R: 255, A: 0}},
		{in: "rgba(1,2,3)", ok: false},
		{in: "rgb(1,2,3,0.5)", ok: false},
		{in: "#ggg", ok: false},
		{in: "#12345", ok: false},
		{in: "red", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
