package colorutil

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF0000", RGB{R: 1}},
		{"00FF00", RGB{G: 1}},
		{"#00F", RGB{B: 1}},
		{"f80", RGB{R: 1, G: 136.0 / 255.0, B: 0}},
		{" #FFFFFF ", RGB{R: 1, G: 1, B: 1}},
		{"", Black},
		{"#12345", Black},
		{"zzzzzz", Black},
	}
	for _, tt := range tests {
		got := ParseHex(tt.in)
		assert.InDelta(t, tt.want.R, got.R, 1e-9, "R of %q", tt.in)
		assert.InDelta(t, tt.want.G, got.G, 1e-9, "G of %q", tt.in)
		assert.InDelta(t, tt.want.B, got.B, 1e-9, "B of %q", tt.in)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	for _, hex := range DefaultPalette {
		assert.Equal(t, hex, FormatHex(ParseHex(hex)))
	}
}

func TestDistance(t *testing.T) {
	assert.Zero(t, Distance(RGB{R: 0.5, G: 0.5, B: 0.5}, RGB{R: 0.5, G: 0.5, B: 0.5}))

	a := RGB{R: 1}
	b := RGB{G: 1}
	assert.InDelta(t, math.Sqrt2, Distance(a, b), 1e-12)
	assert.Equal(t, Distance(a, b), Distance(b, a), "commutative")

	white := RGB{R: 1, G: 1, B: 1}
	assert.InDelta(t, math.Sqrt(3), Distance(Black, white), 1e-12)
}

func TestBlend(t *testing.T) {
	a := RGB{R: 1}
	b := RGB{B: 1}
	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 1))

	mid := Blend(a, b, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-12)
	assert.InDelta(t, 0.5, mid.B, 1e-12)

	assert.Equal(t, a, Blend(a, b, -2), "t is clamped")
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{R: 255, G: 128, B: 0, A: 255})
	assert.InDelta(t, 1.0, got.R, 1e-3)
	assert.InDelta(t, 0.502, got.G, 1e-3)
	assert.InDelta(t, 0.0, got.B, 1e-3)
}

func TestToNRGBA(t *testing.T) {
	got := ToNRGBA(RGB{R: 1, G: 0.5})
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, uint8(128), got.G)
	assert.Equal(t, uint8(255), got.A)
}
