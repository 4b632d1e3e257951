package calibration

import (
	"math"

	"graph-digitizer/pkg/geometry"
)

// Transformer converts between data space and image pixel space using a
// Calibration. Both directions return (0, 0) while the calibration is
// incomplete so that callers can invoke them unconditionally during early
// application states.
//
// The transformer works in the image's natural pixel coordinates; callers
// in the rendering layer convert between image pixels and on-screen canvas
// positions when drawing or handling mouse events.
type Transformer struct {
	cal *Calibration
}

// NewTransformer creates a Transformer for the given calibration.
// Panics if cal is nil; a missing calibration is a caller bug, not a
// runtime data condition.
func NewTransformer(cal *Calibration) *Transformer {
	if cal == nil {
		panic("calibration: nil Calibration passed to NewTransformer")
	}
	return &Transformer{cal: cal}
}

// Calibration returns the underlying calibration model.
func (t *Transformer) Calibration() *Calibration {
	return t.cal
}

// DataToPixel transforms data coordinates to pixel coordinates against the
// primary Y axis.
func (t *Transformer) DataToPixel(dataX, dataY float64) geometry.Point2D {
	return t.DataToPixelAxis(dataX, dataY, false)
}

// DataToPixelAxis transforms data coordinates to pixel coordinates,
// interpreting Y against the secondary axis when secondaryY is true and a
// secondary range is configured.
func (t *Transformer) DataToPixelAxis(dataX, dataY float64, secondaryY bool) geometry.Point2D {
	c := t.cal
	if !c.IsCalibrated() {
		return geometry.Point2D{}
	}

	xPixel1 := c.PixelXMin.X
	xPixel2 := c.PixelXMax.X
	fx := fraction(dataX, c.DataXMin, c.DataXMax, c.XLog)
	px := xPixel1 + fx*(xPixel2-xPixel1)

	yPixel1 := c.PixelYMin.Y
	yPixel2 := c.PixelYMax.Y
	minY, maxY, yLog := t.yRange(secondaryY)
	fy := fraction(dataY, minY, maxY, yLog)
	py := yPixel1 + fy*(yPixel2-yPixel1)

	return geometry.Point2D{X: px, Y: py}
}

// PixelToData transforms pixel coordinates to data coordinates against the
// primary Y axis.
func (t *Transformer) PixelToData(pixelX, pixelY float64) geometry.Point2D {
	return t.PixelToDataAxis(pixelX, pixelY, false)
}

// PixelToDataAxis transforms pixel coordinates to data coordinates,
// interpreting Y against the secondary axis when secondaryY is true and a
// secondary range is configured.
func (t *Transformer) PixelToDataAxis(pixelX, pixelY float64, secondaryY bool) geometry.Point2D {
	c := t.cal
	if !c.IsCalibrated() {
		return geometry.Point2D{}
	}

	xPixel1 := c.PixelXMin.X
	xPixel2 := c.PixelXMax.X
	denomX := xPixel2 - xPixel1
	fx := 0.0
	if denomX != 0 {
		fx = (pixelX - xPixel1) / denomX
	}
	dataX := invertFraction(fx, c.DataXMin, c.DataXMax, c.XLog)

	yPixel1 := c.PixelYMin.Y
	yPixel2 := c.PixelYMax.Y
	denomY := yPixel2 - yPixel1
	fy := 0.0
	if denomY != 0 {
		fy = (pixelY - yPixel1) / denomY
	}
	minY, maxY, yLog := t.yRange(secondaryY)
	dataY := invertFraction(fy, minY, maxY, yLog)

	return geometry.Point2D{X: dataX, Y: dataY}
}

// yRange selects the primary or secondary Y range and log flag.
func (t *Transformer) yRange(secondaryY bool) (min, max float64, logScale bool) {
	c := t.cal
	min, max, logScale = c.DataYMin, c.DataYMax, c.YLog
	if secondaryY && c.HasSecondaryY() {
		min, max = *c.DataY2Min, *c.DataY2Max
		if c.Y2Log != nil {
			logScale = *c.Y2Log
		}
	}
	return min, max, logScale
}

// fraction computes the fractional position of a data value within its
// range. Non-positive values on log axes and zero-length ranges clamp to 0
// rather than producing NaN or infinities.
func fraction(value, min, max float64, logScale bool) float64 {
	if logScale {
		if value <= 0 || min <= 0 {
			return 0.0
		}
		num := math.Log10(value) - math.Log10(min)
		den := math.Log10(max) - math.Log10(min)
		if den == 0 {
			return 0.0
		}
		return num / den
	}
	den := max - min
	if den == 0 {
		return 0.0
	}
	return (value - min) / den
}

// invertFraction maps a fractional position back to a data value.
func invertFraction(f, min, max float64, logScale bool) float64 {
	if logScale {
		logMin := math.Log10(min)
		logMax := math.Log10(max)
		return math.Pow(10, logMin+f*(logMax-logMin))
	}
	return min + f*(max-min)
}
