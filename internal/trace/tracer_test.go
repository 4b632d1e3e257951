package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-digitizer/internal/calibration"
	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

// gridSource is a synthetic image: white background with selected pixels
// painted a foreground color. Negative dimensions simulate an unreadable
// decode.
type gridSource struct {
	width, height int
	fg            colorutil.RGB
	fgPixels      map[[2]int]bool
	unreadable    map[int]bool // columns that fail to read
}

func newGridSource(w, h int, fg colorutil.RGB) *gridSource {
	return &gridSource{width: w, height: h, fg: fg, fgPixels: map[[2]int]bool{}, unreadable: map[int]bool{}}
}

func (g *gridSource) set(col, row int)  { g.fgPixels[[2]int{col, row}] = true }
func (g *gridSource) Width() int        { return g.width }
func (g *gridSource) Height() int       { return g.height }
func (g *gridSource) ColorAt(col, row int) (colorutil.RGB, bool) {
	if col < 0 || col >= g.width || row < 0 || row >= g.height || g.unreadable[col] {
		return colorutil.RGB{}, false
	}
	if g.fgPixels[[2]int{col, row}] {
		return g.fg, true
	}
	return colorutil.RGB{R: 1, G: 1, B: 1}, true
}

// cal10 maps dataX [0,10] to pixel x [0,10] and dataY [0,10] to pixel y
// [10,0] so pixel coordinates equal canvas coordinates 1:1.
func cal10() *calibration.Calibration {
	c := calibration.New()
	c.SetAnchor(calibration.AnchorXLeft, geometry.NewPoint2D(0, 0))
	c.SetAnchor(calibration.AnchorXRight, geometry.NewPoint2D(10, 0))
	c.SetAnchor(calibration.AnchorYBottom, geometry.NewPoint2D(0, 10))
	c.SetAnchor(calibration.AnchorYTop, geometry.NewPoint2D(0, 0))
	c.DataXMin, c.DataXMax = 0, 10
	c.DataYMin, c.DataYMax = 0, 10
	return c
}

func TestTraceDiagonal(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	// Paint the line row = col, which in data space is y = 10 - x.
	for col := 0; col <= 10; col++ {
		src.set(col, col)
	}

	tr := calibration.NewTransformer(cal10())
	points := NewTracer(src, tr, IdentityView()).Trace(red, false)

	require.Len(t, points, 11)
	for i, p := range points {
		assert.InDelta(t, float64(i), p.X, 1e-9)
		assert.InDelta(t, 10-float64(i), p.Y, 1e-9)
	}
}

func TestTraceUncalibratedReturnsEmpty(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	src.set(5, 5)

	tr := calibration.NewTransformer(calibration.New())
	assert.Empty(t, NewTracer(src, tr, IdentityView()).Trace(red, false))
}

func TestTraceSkipsUnreadableColumns(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	for col := 0; col <= 10; col++ {
		src.set(col, 5)
	}
	src.unreadable[3] = true
	src.unreadable[7] = true

	tr := calibration.NewTransformer(cal10())
	points := NewTracer(src, tr, IdentityView()).Trace(red, false)
	assert.Len(t, points, 9, "unreadable columns produce no sample")
}

func TestTraceEmptyImage(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(0, 0, red)
	tr := calibration.NewTransformer(cal10())
	assert.Empty(t, NewTracer(src, tr, IdentityView()).Trace(red, false))
}

func TestTraceFirstMinimumWins(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	// Two equally red pixels in the same column; the scan from row 0
	// downward must keep the upper one.
	src.set(5, 2)
	src.set(5, 8)

	c := cal10()
	c.SetAnchor(calibration.AnchorXLeft, geometry.NewPoint2D(5, 0))
	c.SetAnchor(calibration.AnchorXRight, geometry.NewPoint2D(5, 0))
	tr := calibration.NewTransformer(c)

	points := NewTracer(src, tr, IdentityView()).Trace(red, false)
	require.Len(t, points, 1)
	assert.InDelta(t, 8, points[0].Y, 1e-9, "row 2 maps to data y=8")
}

func TestTraceWithScaledView(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	for col := 0; col <= 10; col++ {
		src.set(col, 5)
	}

	// Canvas shows the image doubled and shifted: anchors live in canvas
	// space, so the view must bring columns back into image range.
	c := calibration.New()
	c.SetAnchor(calibration.AnchorXLeft, geometry.NewPoint2D(20, 0))
	c.SetAnchor(calibration.AnchorXRight, geometry.NewPoint2D(40, 0))
	c.SetAnchor(calibration.AnchorYBottom, geometry.NewPoint2D(0, 40))
	c.SetAnchor(calibration.AnchorYTop, geometry.NewPoint2D(0, 20))
	c.DataXMin, c.DataXMax = 0, 10
	c.DataYMin, c.DataYMax = 0, 10
	tr := calibration.NewTransformer(c)

	view := View{OffsetX: 20, OffsetY: 20, Scale: 2}
	points := NewTracer(src, tr, view).Trace(red, false)

	require.NotEmpty(t, points)
	for _, p := range points {
		assert.InDelta(t, 5.0, p.Y, 1e-9, "the traced row sits at data y=5")
	}
}

func TestTraceReversedAnchors(t *testing.T) {
	red := colorutil.RGB{R: 1}
	src := newGridSource(11, 11, red)
	for col := 0; col <= 10; col++ {
		src.set(col, col)
	}

	// X-left anchor to the right of X-right anchor; the scan walks
	// leftward and the transform still inverts correctly.
	c := cal10()
	c.SetAnchor(calibration.AnchorXLeft, geometry.NewPoint2D(10, 0))
	c.SetAnchor(calibration.AnchorXRight, geometry.NewPoint2D(0, 0))
	tr := calibration.NewTransformer(c)

	points := NewTracer(src, tr, IdentityView()).Trace(red, false)
	require.Len(t, points, 11)
	// First sampled column is image col 10, data x = 0 under the
	// reversed mapping.
	assert.InDelta(t, 0, points[0].X, 1e-9)
}

func TestNewTracerContract(t *testing.T) {
	tr := calibration.NewTransformer(cal10())
	assert.Panics(t, func() { NewTracer(nil, tr, IdentityView()) })
	src := newGridSource(1, 1, colorutil.RGB{})
	assert.Panics(t, func() { NewTracer(src, nil, IdentityView()) })
}

func TestColumnCount(t *testing.T) {
	src := newGridSource(11, 11, colorutil.RGB{})
	uncal := calibration.NewTransformer(calibration.New())
	assert.Zero(t, NewTracer(src, uncal, IdentityView()).ColumnCount())

	tr := calibration.NewTransformer(cal10())
	assert.Equal(t, 11, NewTracer(src, tr, IdentityView()).ColumnCount())
}
