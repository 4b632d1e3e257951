// Package dataset provides the digitized point series owned by a session.
package dataset

import (
	"fmt"

	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

// MaxDatasets is the size of the fixed per-session dataset pool.
const MaxDatasets = 6

// Dataset holds a named, ordered series of data-space points along with
// its display color and flags. Point order is insertion order and is also
// the display and export order.
//
// The point list has a single writer at a time; edits normally go through
// the history engine so undo state stays consistent.
type Dataset struct {
	Name       string
	Visible    bool
	SecondaryY bool // interpret Y against the secondary axis

	hexColor string
	color    colorutil.RGB
	points   []geometry.Point2D
}

// New creates an empty visible dataset with the given name and hex color.
func New(name, hexColor string) *Dataset {
	d := &Dataset{
		Name:    name,
		Visible: true,
	}
	d.SetHexColor(hexColor)
	return d
}

// NewPool creates the session's dataset pool: n datasets named
// "Dataset 1".."Dataset n" colored from the default palette.
// n is clamped to MaxDatasets.
func NewPool(n int) []*Dataset {
	if n > MaxDatasets {
		n = MaxDatasets
	}
	pool := make([]*Dataset, 0, n)
	for i := 0; i < n; i++ {
		hex := colorutil.DefaultPalette[i%len(colorutil.DefaultPalette)]
		pool = append(pool, New(fmt.Sprintf("Dataset %d", i+1), hex))
	}
	return pool
}

// HexColor returns the dataset color as a hex string.
func (d *Dataset) HexColor() string {
	return d.hexColor
}

// SetHexColor sets the dataset color and refreshes the cached parsed value.
func (d *Dataset) SetHexColor(hex string) {
	d.hexColor = hex
	d.color = colorutil.ParseHex(hex)
}

// Color returns the cached parsed color.
func (d *Dataset) Color() colorutil.RGB {
	return d.color
}

// Points returns the underlying point slice. Callers must not reorder or
// resize it directly; use the mutation methods or history commands.
func (d *Dataset) Points() []geometry.Point2D {
	return d.points
}

// SetPoints replaces the point list wholesale.
func (d *Dataset) SetPoints(points []geometry.Point2D) {
	d.points = points
}

// Len returns the number of points.
func (d *Dataset) Len() int {
	return len(d.points)
}

// PointAt returns the point at index i.
func (d *Dataset) PointAt(i int) geometry.Point2D {
	return d.points[i]
}

// SetPointAt replaces the point at index i.
func (d *Dataset) SetPointAt(i int, p geometry.Point2D) {
	d.points[i] = p
}

// AddPoint appends a point.
func (d *Dataset) AddPoint(p geometry.Point2D) {
	d.points = append(d.points, p)
}

// InsertPointAt inserts a point at index i, shifting later points right.
func (d *Dataset) InsertPointAt(i int, p geometry.Point2D) {
	d.points = append(d.points, geometry.Point2D{})
	copy(d.points[i+1:], d.points[i:])
	d.points[i] = p
}

// RemovePointAt removes and returns the point at index i.
func (d *Dataset) RemovePointAt(i int) geometry.Point2D {
	p := d.points[i]
	d.points = append(d.points[:i], d.points[i+1:]...)
	return p
}

// RemoveLast removes the last occurrence of p, returning its former index
// or -1 if p is not present.
func (d *Dataset) RemoveLast(p geometry.Point2D) int {
	for i := len(d.points) - 1; i >= 0; i-- {
		if d.points[i] == p {
			d.RemovePointAt(i)
			return i
		}
	}
	return -1
}

// Clear removes all points.
func (d *Dataset) Clear() {
	d.points = d.points[:0]
}

// NearestPoint returns the index of the point closest to p in data space,
// or -1 if the dataset is empty.
func (d *Dataset) NearestPoint(p geometry.Point2D) int {
	best := -1
	bestDist := 0.0
	for i, q := range d.points {
		dist := p.Distance(q)
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

func (d *Dataset) String() string {
	return fmt.Sprintf("Dataset{name=%q, color=%q, points=%d}", d.Name, d.hexColor, len(d.points))
}
