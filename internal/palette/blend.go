package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGBA is a parsed color: channels in 0..255, alpha in 0..1.
type RGBA struct {
	R, G, B float64
	A       float64
}

// White is the opaque base every composite starts from.
var White = RGBA{R: 255, G: 255, B: 255, A: 1}

var funcColorPattern = regexp.MustCompile(`^rgba?\(\s*([-+0-9.]+)\s*,\s*([-+0-9.]+)\s*,\s*([-+0-9.]+)\s*(?:,\s*([-+0-9.]+)\s*)?\)$`)

// ParseColor parses rgb(), rgba() and #rgb / #rrggbb / #rrggbbaa colors.
// Channels are clamped to their ranges. ok is false for anything else.
func ParseColor(s string) (RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	m := funcColorPattern.FindStringSubmatch(s)
	if m == nil {
		return RGBA{}, false
	}
	// rgb() takes exactly three channels, rgba() exactly four.
	if strings.HasPrefix(s, "rgba") != (m[4] != "") {
		return RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i := 1; i <= 4; i++ {
		if m[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i], 64)
		if err != nil || math.IsNaN(v) {
			return RGBA{}, false
		}
		ch[i-1] = v
	}
	return RGBA{
		R: clamp(ch[0], 0, 255),
		G: clamp(ch[1], 0, 255),
		B: clamp(ch[2], 0, 255),
		A: clamp(ch[3], 0, 1),
	}, true
}

func parseHex(h string) (RGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	a := 1.0
	if len(h) == 8 {
		a = float64(v&0xff) / 255
		v >>= 8
	}
	return RGBA{
		R: float64(v >> 16 & 0xff),
		G: float64(v >> 8 & 0xff),
		B: float64(v & 0xff),
		A: a,
	}, true
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

// CompositeColors alpha-blends colors in order over opaque white; the last
// color is painted on top. Each layer is rounded to whole channel values before
// the next one is applied. Unparsable colors count as opaque white. The result
// is always opaque.
func CompositeColors(colors []string) string {
	result := White
	for _, s := range colors {
		c, ok := ParseColor(s)
		if !ok {
			c = White
		}
		result = RGBA{
			R: roundHalfUp(c.R*c.A + result.R*(1-c.A)),
			G: roundHalfUp(c.G*c.A + result.G*(1-c.A)),
			B: roundHalfUp(c.B*c.A + result.B*(1-c.A)),
			A: 1,
		}
	}
	return result.Hex()
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func channel(v float64) uint8 {
	return uint8(clamp(roundHalfUp(v), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
