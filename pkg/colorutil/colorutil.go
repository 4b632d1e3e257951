// Package colorutil provides shared color utilities for the graph digitizer.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB holds a color with channels normalized to [0, 1].
type RGB struct {
	R, G, B float64
}

// Black is the fallback color for unparseable hex strings.
var Black = RGB{}

// DefaultPalette lists the colorblind-safe dataset colors, in assignment order.
var DefaultPalette = []string{
	"#0072B2", // blue
	"#E69F00", // orange
	"#009E73", // green
	"#CC79A7", // pink
	"#F0E442", // yellow
	"#56B4E9", // light blue
}

// ParseHex parses a hex color string into an RGB.
// Supported formats: "#RRGGBB", "RRGGBB", "#RGB", "RGB".
// Unparseable input yields Black.
func ParseHex(hex string) RGB {
	h := strings.TrimSpace(hex)
	h = strings.TrimPrefix(h, "#")

	if len(h) == 3 {
		// Expand shorthand: "f80" -> "ff8800"
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Black
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Black
	}
	return RGB{
		R: float64(v>>16&0xFF) / 255.0,
		G: float64(v>>8&0xFF) / 255.0,
		B: float64(v&0xFF) / 255.0,
	}
}

// FormatHex formats an RGB as a "#RRGGBB" hex string.
func FormatHex(c RGB) string {
	r := int(math.Round(clamp01(c.R) * 255))
	g := int(math.Round(clamp01(c.G) * 255))
	b := int(math.Round(clamp01(c.B) * 255))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Distance returns the Euclidean distance between two colors in normalized
// RGB space. Zero iff the colors are identical; commutative.
func Distance(a, b RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Blend linearly interpolates between two colors. t=0 yields a, t=1 yields b.
func Blend(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// FromColor converts a standard library color to a normalized RGB,
// discarding alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
}

// ToNRGBA converts a normalized RGB to an opaque 8-bit color.
func ToNRGBA(c RGB) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
