package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitmap/internal/overlay/compositor"
)

// FillsByCountry indexes frame fills by ISO code. Duplicate codes fail the
// test: the compositor emits one fill per country.
func FillsByCountry(t *testing.T, fills []compositor.CountryFill) map[string]compositor.CountryFill {
	t.Helper()
	out := make(map[string]compositor.CountryFill, len(fills))
	for _, f := range fills {
		_, dup := out[f.IsoCode]
		require.False(t, dup, "country %s filled twice", f.IsoCode)
		out[f.IsoCode] = f
	}
	return out
}

// AssertFill checks the color and claiming overlays of one country.
func AssertFill(t *testing.T, fills []compositor.CountryFill, code, color string, overlayIDs ...string) {
	t.Helper()
	fill, ok := FillsByCountry(t, fills)[code]
	require.True(t, ok, "country %s is not painted", code)
	assert.Equal(t, color, fill.Color, "color of %s", code)
	if len(overlayIDs) > 0 {
		assert.Equal(t, overlayIDs, fill.OverlayIDs, "overlays claiming %s", code)
	}
}
