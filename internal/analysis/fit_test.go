package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-digitizer/pkg/geometry"
)

func pts(xy ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.NewPoint2D(xy[i], xy[i+1]))
	}
	return out
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	s := Summarize(pts(1, 10, 3, 30, 5, 20))
	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 3.0, s.MeanX, 1e-12)
	assert.InDelta(t, 20.0, s.MeanY, 1e-12)
	assert.Equal(t, 1.0, s.MinX)
	assert.Equal(t, 5.0, s.MaxX)
	assert.Equal(t, 10.0, s.MinY)
	assert.Equal(t, 30.0, s.MaxY)
	assert.InDelta(t, 2.0, s.StdX, 1e-12)
}

func TestSummarizeSinglePoint(t *testing.T) {
	s := Summarize(pts(4, 7))
	assert.Equal(t, 1, s.N)
	assert.Zero(t, s.StdX)
	assert.Equal(t, 4.0, s.MinX)
	assert.Equal(t, 4.0, s.MaxX)
}

func TestFitLineCollinear(t *testing.T) {
	// y = 2x + 1 exactly.
	fit, err := FitLine(pts(0, 1, 1, 3, 2, 5, 3, 7))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, fit.Slope, 1e-9)
	assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
}

func TestFitLineNoisy(t *testing.T) {
	fit, err := FitLine(pts(0, 0.1, 1, 0.9, 2, 2.1, 3, 2.9))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fit.Slope, 0.1)
	assert.Greater(t, fit.R2, 0.98)
}

func TestFitLineTooFewPoints(t *testing.T) {
	_, err := FitLine(pts(1, 1))
	assert.Error(t, err)

	_, err = FitLine(nil)
	assert.Error(t, err)
}

func TestFitLineConstantY(t *testing.T) {
	fit, err := FitLine(pts(0, 5, 1, 5, 2, 5))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, fit.Slope, 1e-9)
	assert.InDelta(t, 5.0, fit.Intercept, 1e-9)
	assert.Equal(t, 1.0, fit.R2, "perfect fit of a flat line")
}
