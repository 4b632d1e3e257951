// Package trace extracts curve points from a plot image by per-column
// color matching.
package trace

import (
	"math"

	"graph-digitizer/internal/calibration"
	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

// PixelSource exposes read access to a decoded image. ColorAt reports
// ok=false for out-of-range or otherwise unreadable pixels so the tracer
// can skip them instead of failing.
type PixelSource interface {
	Width() int
	Height() int
	ColorAt(col, row int) (colorutil.RGB, bool)
}

// View maps image pixel coordinates to canvas coordinates: the rendering
// layer draws the image scaled by Scale and offset by (OffsetX, OffsetY).
// The zero value is not usable; use IdentityView when the canvas shows the
// image 1:1.
type View struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// IdentityView returns the 1:1 view with no offset.
func IdentityView() View {
	return View{Scale: 1}
}

// ImageToCanvas converts image pixel coordinates to canvas coordinates.
func (v View) ImageToCanvas(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: p.X*v.Scale + v.OffsetX, Y: p.Y*v.Scale + v.OffsetY}
}

// CanvasToImage converts canvas coordinates to image pixel coordinates.
// With a zero scale the offset point maps to the image origin.
func (v View) CanvasToImage(p geometry.Point2D) geometry.Point2D {
	if v.Scale == 0 {
		return geometry.Point2D{}
	}
	return geometry.Point2D{X: (p.X - v.OffsetX) / v.Scale, Y: (p.Y - v.OffsetY) / v.Scale}
}

// Tracer scans image columns between the calibrated X anchors and picks,
// per column, the pixel whose color is closest to a target. The scan is
// O(width*height) in the worst case and fully synchronous; interactive
// callers may run it off the UI thread.
type Tracer struct {
	src  PixelSource
	tr   *calibration.Transformer
	view View
}

// NewTracer creates a Tracer. src and tr must be non-nil; passing nil is a
// caller contract violation and panics.
func NewTracer(src PixelSource, tr *calibration.Transformer, view View) *Tracer {
	if src == nil {
		panic("trace: nil PixelSource")
	}
	if tr == nil {
		panic("trace: nil Transformer")
	}
	return &Tracer{src: src, tr: tr, view: view}
}

// Trace extracts one point per scanned column by minimum color distance to
// target. Y values are interpreted against the secondary axis when
// secondaryY is set. An uncalibrated model or an unreadable image yields
// an empty result, never an error.
func (t *Tracer) Trace(target colorutil.RGB, secondaryY bool) []geometry.Point2D {
	cal := t.tr.Calibration()
	if !cal.IsCalibrated() {
		return nil
	}

	width := t.src.Width()
	height := t.src.Height()
	if width <= 0 || height <= 0 {
		return nil
	}

	// One sample per integer pixel column between the X anchors, walking
	// in canvas space from the left anchor toward the right anchor.
	startX := cal.PixelXMin.X
	endX := cal.PixelXMax.X
	ncols := int(math.Round(math.Abs(endX - startX)))
	step := 1.0
	if endX < startX {
		step = -1.0
	}

	var points []geometry.Point2D
	for i := 0; i <= ncols; i++ {
		canvasX := startX + float64(i)*step
		imgPt := t.view.CanvasToImage(geometry.Point2D{X: canvasX})
		col := int(math.Round(imgPt.X))
		if col < 0 || col >= width {
			continue
		}

		bestRow := -1
		bestDist := math.MaxFloat64
		for row := 0; row < height; row++ {
			c, ok := t.src.ColorAt(col, row)
			if !ok {
				continue
			}
			// Strict less-than: the first minimum from row 0 downward wins.
			if d := colorutil.Distance(c, target); d < bestDist {
				bestDist = d
				bestRow = row
			}
		}
		if bestRow == -1 {
			// Whole column unreadable; no sample.
			continue
		}

		canvasPt := t.view.ImageToCanvas(geometry.NewPoint2D(float64(col), float64(bestRow)))
		points = append(points, t.tr.PixelToDataAxis(canvasPt.X, canvasPt.Y, secondaryY))
	}
	return points
}

// ColumnCount returns the number of canvas columns the trace will sample,
// or 0 while uncalibrated.
func (t *Tracer) ColumnCount() int {
	cal := t.tr.Calibration()
	if !cal.IsCalibrated() {
		return 0
	}
	return int(math.Round(math.Abs(cal.PixelXMax.X-cal.PixelXMin.X))) + 1
}
