package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"graph-digitizer/pkg/geometry"
)

func TestSnapNearest(t *testing.T) {
	s := New()
	s.SetTargets([]float64{0, 1, 2.5, 4})

	tests := []struct {
		in   float64
		want float64
	}{
		{1.8, 2.5},
		{1.2, 1},
		{0.5, 0}, // exact tie resolves to the smaller target
		{-100, 0},
		{100, 4},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.SnapX(tt.in), "SnapX(%v)", tt.in)
	}
}

func TestSnapPassthroughWhenEmpty(t *testing.T) {
	s := New()
	for _, x := range []float64{-3.5, 0, 1e9} {
		assert.Equal(t, x, s.SnapX(x))
	}
}

func TestTargetsSortedDeduplicated(t *testing.T) {
	s := New()
	s.SetTargets([]float64{4, 1, 4, 0, 2.5, 1})
	assert.Equal(t, []float64{0, 1, 2.5, 4}, s.Targets())

	s.AddTarget(3)
	s.AddTarget(3)
	assert.Equal(t, []float64{0, 1, 2.5, 3, 4}, s.Targets())

	assert.True(t, s.RemoveTarget(2.5))
	assert.False(t, s.RemoveTarget(2.5))
	assert.Equal(t, []float64{0, 1, 3, 4}, s.Targets())

	s.Clear()
	assert.Empty(t, s.Targets())
}

func TestSnapPoint(t *testing.T) {
	s := New()
	s.SetTargets([]float64{0, 1, 2.5, 4})

	in := geometry.NewPoint2D(1.8, 7.7)
	got := s.SnapPoint(in)
	assert.Equal(t, geometry.NewPoint2D(2.5, 7.7), got)
	assert.Equal(t, geometry.NewPoint2D(1.8, 7.7), in, "input is not mutated")
}

func TestToleranceGate(t *testing.T) {
	s := New()
	s.SetTargets([]float64{10})

	// Default: nearest always snaps, however far.
	assert.Equal(t, 10.0, s.SnapX(500))

	s.SetTolerance(0.01)
	assert.Equal(t, 500.0, s.SnapX(500), "outside tolerance returns the input")
	assert.Equal(t, 10.0, s.SnapX(10.05), "|10.05-10| <= 0.01*max(1,10.05)")

	s.ClearTolerance()
	assert.Equal(t, 10.0, s.SnapX(500))

	assert.Panics(t, func() { s.SetTolerance(-1) })
}
