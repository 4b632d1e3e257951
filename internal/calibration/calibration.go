// Package calibration holds the pixel-anchor calibration model and the
// bidirectional mapping between data space and pixel space.
package calibration

import (
	"fmt"

	"graph-digitizer/pkg/geometry"
)

// AnchorRole identifies one of the four calibration anchor positions.
type AnchorRole int

const (
	AnchorXLeft AnchorRole = iota
	AnchorXRight
	AnchorYBottom
	AnchorYTop
)

func (r AnchorRole) String() string {
	switch r {
	case AnchorXLeft:
		return "X-left"
	case AnchorXRight:
		return "X-right"
	case AnchorYBottom:
		return "Y-bottom"
	case AnchorYTop:
		return "Y-top"
	default:
		return "unknown"
	}
}

// Calibration holds the four pixel anchors together with the numeric axis
// ranges and log-scale flags that define the pixel<->data mapping.
//
// Anchors are nil until captured. Ranges and flags may be set independently
// of anchor presence and default to [0, 1] linear. Degenerate numeric
// combinations (e.g. equal min and max) are permitted here; the Transformer
// handles them with deterministic fallbacks.
type Calibration struct {
	PixelXMin *geometry.Point2D // X-left anchor
	PixelXMax *geometry.Point2D // X-right anchor
	PixelYMin *geometry.Point2D // Y-bottom anchor
	PixelYMax *geometry.Point2D // Y-top anchor

	DataXMin float64
	DataXMax float64
	DataYMin float64
	DataYMax float64

	XLog bool
	YLog bool

	// Optional secondary Y axis. All three are nil unless configured.
	DataY2Min *float64
	DataY2Max *float64
	Y2Log     *bool
}

// New creates an uncalibrated Calibration with [0, 1] linear axes.
func New() *Calibration {
	return &Calibration{
		DataXMax: 1.0,
		DataYMax: 1.0,
	}
}

// SetAnchor stores the pixel position for one of the four anchor roles.
func (c *Calibration) SetAnchor(role AnchorRole, p geometry.Point2D) {
	pt := p
	switch role {
	case AnchorXLeft:
		c.PixelXMin = &pt
	case AnchorXRight:
		c.PixelXMax = &pt
	case AnchorYBottom:
		c.PixelYMin = &pt
	case AnchorYTop:
		c.PixelYMax = &pt
	}
}

// Anchor returns the pixel position for a role, or nil if not yet set.
func (c *Calibration) Anchor(role AnchorRole) *geometry.Point2D {
	switch role {
	case AnchorXLeft:
		return c.PixelXMin
	case AnchorXRight:
		return c.PixelXMax
	case AnchorYBottom:
		return c.PixelYMin
	case AnchorYTop:
		return c.PixelYMax
	default:
		return nil
	}
}

// IsCalibrated reports whether all four anchors have been captured.
func (c *Calibration) IsCalibrated() bool {
	return c.PixelXMin != nil && c.PixelXMax != nil &&
		c.PixelYMin != nil && c.PixelYMax != nil
}

// Reset clears the anchors only. Numeric ranges and log flags are kept,
// since users normally re-apply them after re-calibrating.
func (c *Calibration) Reset() {
	c.PixelXMin = nil
	c.PixelXMax = nil
	c.PixelYMin = nil
	c.PixelYMax = nil
}

// SetSecondaryY configures the secondary Y axis range and log flag.
func (c *Calibration) SetSecondaryY(min, max float64, logScale bool) {
	c.DataY2Min = &min
	c.DataY2Max = &max
	c.Y2Log = &logScale
}

// ClearSecondaryY removes the secondary Y axis configuration.
func (c *Calibration) ClearSecondaryY() {
	c.DataY2Min = nil
	c.DataY2Max = nil
	c.Y2Log = nil
}

// HasSecondaryY reports whether a secondary Y range is configured.
func (c *Calibration) HasSecondaryY() bool {
	return c.DataY2Min != nil && c.DataY2Max != nil
}

func (c *Calibration) String() string {
	return fmt.Sprintf("Calibration{xLeft=%v, xRight=%v, yBottom=%v, yTop=%v, dataX=[%.2f, %.2f], dataY=[%.2f, %.2f], xLog=%t, yLog=%t}",
		c.PixelXMin, c.PixelXMax, c.PixelYMin, c.PixelYMax,
		c.DataXMin, c.DataXMax, c.DataYMin, c.DataYMax, c.XLog, c.YLog)
}
