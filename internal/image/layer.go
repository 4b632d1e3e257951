// Package image provides plot image loading and pixel access.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"graph-digitizer/internal/trace"
	"graph-digitizer/pkg/colorutil"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Layer holds the decoded plot image together with its on-canvas view
// state (zoom and pan offset). It is the pixel source for auto-tracing.
type Layer struct {
	Path  string      // original file path
	Image image.Image // decoded image data

	// View state: the canvas draws the image scaled by Zoom and offset by
	// (OffsetX, OffsetY) canvas pixels.
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

var _ trace.PixelSource = (*Layer)(nil)

// NewLayer creates an empty layer at 1:1 zoom.
func NewLayer() *Layer {
	return &Layer{Zoom: 1.0}
}

// Load decodes an image from path and returns it as a Layer.
// PNG, JPEG, GIF, TIFF, and BMP are supported.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	layer := NewLayer()
	layer.Path = path
	layer.Image = img
	return layer, nil
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// ColorAt returns the normalized color at (col, row) in the image's own
// coordinate space, with (0, 0) at the top-left pixel. Out-of-range
// lookups and lookups on an unloaded layer report ok=false.
func (l *Layer) ColorAt(col, row int) (colorutil.RGB, bool) {
	if l.Image == nil {
		return colorutil.RGB{}, false
	}
	bounds := l.Image.Bounds()
	x := bounds.Min.X + col
	y := bounds.Min.Y + row
	if col < 0 || row < 0 || x >= bounds.Max.X || y >= bounds.Max.Y {
		return colorutil.RGB{}, false
	}
	return colorutil.FromColor(l.Image.At(x, y)), true
}

// View returns the current canvas view mapping for this layer.
func (l *Layer) View() trace.View {
	return trace.View{OffsetX: l.OffsetX, OffsetY: l.OffsetY, Scale: l.Zoom}
}

// ResetView restores 1:1 zoom with no offset.
func (l *Layer) ResetView() {
	l.Zoom = 1.0
	l.OffsetX = 0
	l.OffsetY = 0
}
