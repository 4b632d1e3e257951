package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint2DArithmetic(t *testing.T) {
	a := NewPoint2D(1, 2)
	b := NewPoint2D(4, 6)

	assert.Equal(t, NewPoint2D(5, 8), a.Add(b))
	assert.Equal(t, NewPoint2D(3, 4), b.Sub(a))
	assert.Equal(t, NewPoint2D(2, 4), a.Scale(2))
	assert.InDelta(t, 5.0, a.Distance(b), 1e-12)
}

func TestPointIntToFloat(t *testing.T) {
	assert.Equal(t, NewPoint2D(3, -7), PointInt{X: 3, Y: -7}.ToFloat())
}

func TestRect(t *testing.T) {
	r := NewRect(0, 0, 10, 4)
	assert.True(t, r.Contains(NewPoint2D(5, 2)))
	assert.True(t, r.Contains(NewPoint2D(10, 4)), "edges are inside")
	assert.False(t, r.Contains(NewPoint2D(11, 2)))
	assert.Equal(t, NewPoint2D(5, 2), r.Center())
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))

	box := BoundingBox([]Point2D{{X: 2, Y: -1}, {X: -3, Y: 4}, {X: 0, Y: 0}})
	assert.Equal(t, NewRect(-3, -1, 5, 5), box)
}
