package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"graph-digitizer/pkg/colorutil"
	"graph-digitizer/pkg/geometry"
)

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool(6)
	assert.Len(t, pool, 6)
	assert.Equal(t, "Dataset 1", pool[0].Name)
	assert.Equal(t, "#0072B2", pool[0].HexColor())
	assert.Equal(t, "#56B4E9", pool[5].HexColor())
	for _, d := range pool {
		assert.True(t, d.Visible)
		assert.Zero(t, d.Len())
	}

	assert.Len(t, NewPool(10), MaxDatasets, "pool size is clamped")
}

func TestColorCache(t *testing.T) {
	d := New("series", "#FF0000")
	assert.Equal(t, colorutil.RGB{R: 1}, d.Color())

	d.SetHexColor("#00FF00")
	assert.Equal(t, colorutil.RGB{G: 1}, d.Color())

	d.SetHexColor("not a color")
	assert.Equal(t, colorutil.Black, d.Color())
}

func TestPointMutations(t *testing.T) {
	d := New("s", "#000000")
	a := geometry.NewPoint2D(1, 1)
	b := geometry.NewPoint2D(2, 2)
	c := geometry.NewPoint2D(3, 3)

	d.AddPoint(a)
	d.AddPoint(c)
	d.InsertPointAt(1, b)
	assert.Equal(t, []geometry.Point2D{a, b, c}, d.Points())

	got := d.RemovePointAt(1)
	assert.Equal(t, b, got)
	assert.Equal(t, []geometry.Point2D{a, c}, d.Points())

	d.SetPointAt(0, b)
	assert.Equal(t, b, d.PointAt(0))

	d.Clear()
	assert.Zero(t, d.Len())
}

func TestRemoveLast(t *testing.T) {
	d := New("s", "#000000")
	p := geometry.NewPoint2D(1, 2)
	d.AddPoint(p)
	d.AddPoint(geometry.NewPoint2D(5, 5))
	d.AddPoint(p)

	idx := d.RemoveLast(p)
	assert.Equal(t, 2, idx, "removes the last occurrence")
	assert.Equal(t, 2, d.Len())

	assert.Equal(t, -1, d.RemoveLast(geometry.NewPoint2D(9, 9)))
}

func TestNearestPoint(t *testing.T) {
	d := New("s", "#000000")
	assert.Equal(t, -1, d.NearestPoint(geometry.NewPoint2D(0, 0)))

	d.AddPoint(geometry.NewPoint2D(0, 0))
	d.AddPoint(geometry.NewPoint2D(10, 10))
	assert.Equal(t, 1, d.NearestPoint(geometry.NewPoint2D(8, 9)))
}
