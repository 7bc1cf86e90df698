package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/scenekit/internal/vec"
)

func TestPointInRegion(t *testing.T) {
	tl, br := vec.New(0, 0), vec.New(10, 10)

	tests := []struct {
		name string
		p    vec.Vector2
		want bool
	}{
		{"inside", vec.New(5, 5), true},
		{"top left corner", vec.New(0, 0), true},
		{"bottom right corner", vec.New(10, 10), true},
		{"left of region", vec.New(-0.1, 5), false},
		{"below region", vec.New(5, 10.1), false},
		{"sentinel", NoPoint, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInRegion(tt.p, tl, br))
		})
	}
}

func TestRegionsOverlap(t *testing.T) {
	a := NewBox(0, 0, 10, 10)

	assert.True(t, RegionsOverlap(a, NewBox(5, 5, 15, 15)), "corner inside")
	assert.True(t, RegionsOverlap(a, NewBox(2, 2, 3, 3)), "fully inside")
	assert.True(t, RegionsOverlap(NewBox(2, 2, 3, 3), a), "fully containing")
	assert.True(t, RegionsOverlap(a, NewBox(10, 10, 20, 20)), "touching corner")
	assert.True(t, RegionsOverlap(NewBox(4, -5, 6, 15), NewBox(-5, 4, 15, 6)), "plus shape")
	assert.False(t, RegionsOverlap(a, NewBox(11, 0, 20, 10)))
	assert.False(t, RegionsOverlap(a, Empty()))
}

func TestSegmentIntersection(t *testing.T) {
	p := SegmentIntersection(vec.New(0, 0), vec.New(10, 10), vec.New(0, 10), vec.New(10, 0))
	assert.True(t, p.Equal(vec.New(5, 5)), "got %v", p)

	// first line vertical
	p = SegmentIntersection(vec.New(3, -5), vec.New(3, 5), vec.New(0, 0), vec.New(10, 10))
	assert.True(t, p.Equal(vec.New(3, 3)), "got %v", p)

	// second line vertical
	p = SegmentIntersection(vec.New(0, 1), vec.New(10, 1), vec.New(4, 0), vec.New(4, 9))
	assert.True(t, p.Equal(vec.New(4, 1)), "got %v", p)

	// lines meet outside the segments; the caller has to check
	p = SegmentIntersection(vec.New(0, 0), vec.New(1, 0), vec.New(5, -1), vec.New(5, 1))
	assert.True(t, p.Equal(vec.New(5, 0)))
	assert.False(t, WithinSegment(p, vec.New(0, 0), vec.New(1, 0)))
}

func TestSegmentIntersectionParallel(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 vec.Vector2
	}{
		{"same slope", vec.New(0, 0), vec.New(10, 10), vec.New(0, 1), vec.New(10, 11)},
		{"both vertical", vec.New(1, 0), vec.New(1, 10), vec.New(2, 0), vec.New(2, 10)},
		{"both horizontal", vec.New(0, 1), vec.New(10, 1), vec.New(0, 2), vec.New(10, 2)},
		{"degenerate segment", vec.New(1, 1), vec.New(1, 1), vec.New(0, 0), vec.New(5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SegmentIntersection(tt.s1, tt.e1, tt.s2, tt.e2)
			assert.Equal(t, NoPoint, p)
			assert.False(t, p.IsFinite())
		})
	}
}

func TestWithinSegment(t *testing.T) {
	start, end := vec.New(0, 0), vec.New(100, 0)

	assert.True(t, WithinSegment(vec.New(50, 0), start, end))
	assert.True(t, WithinSegment(vec.New(0, 0), start, end))
	assert.True(t, WithinSegment(vec.New(50, 5), start, end), "within pixel slack")
	assert.False(t, WithinSegment(vec.New(50, 10), start, end))
	assert.False(t, WithinSegment(vec.New(102, 0), start, end))
	assert.False(t, WithinSegment(NoPoint, start, end))
}

func TestSegmentsCross(t *testing.T) {
	assert.True(t, SegmentsCross(vec.New(0, 0), vec.New(10, 10), vec.New(0, 10), vec.New(10, 0)))
	assert.False(t, SegmentsCross(vec.New(0, 0), vec.New(1, 1), vec.New(0, 10), vec.New(10, 0)))

	region := NewBox(0, 0, 10, 10)
	assert.True(t, SegmentCrossesRegion(vec.New(-5, 5), vec.New(5, 5), region))
	assert.False(t, SegmentCrossesRegion(vec.New(2, 2), vec.New(8, 8), region), "inside, touches no side")
	assert.False(t, SegmentCrossesRegion(vec.New(20, 0), vec.New(30, 10), region))
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]vec.Vector2{{X: 5, Y: 120}, {X: 130, Y: 140}, {X: 340, Y: 100}, {X: -4, Y: 432}})
	assert.Equal(t, vec.New(-4, 100), b.TopLeft)
	assert.Equal(t, vec.New(340, 432), b.BottomRight)

	assert.Equal(t, Box{}, BoundingBox(nil))
	assert.Equal(t, Box{}, BoundingBox([]vec.Vector2{{X: 1, Y: 1}, {X: 9, Y: 9}}))
}

func TestBox(t *testing.T) {
	b := NewBox(10, 20, 0, 5)
	assert.Equal(t, vec.New(0, 5), b.TopLeft)
	assert.Equal(t, vec.New(10, 20), b.BottomRight)
	assert.Equal(t, 10.0, b.Width())
	assert.Equal(t, 15.0, b.Height())
	assert.Equal(t, vec.New(5, 12.5), b.Center())
	assert.True(t, b.Contains(10, 20))
	assert.False(t, b.Contains(11, 20))

	corners := b.Corners()
	assert.Equal(t, vec.New(10, 5), corners[1])
	assert.Equal(t, vec.New(0, 20), corners[3])

	moved := b.Translate(1, -1)
	assert.Equal(t, vec.New(1, 4), moved.TopLeft)
}

func TestEmptyBoxUnion(t *testing.T) {
	e := Empty()
	require.True(t, e.IsEmpty())
	assert.True(t, math.IsInf(e.TopLeft.X, 1))
	assert.True(t, math.IsInf(e.BottomRight.Y, -1))

	b := NewBox(0, 0, 1, 1)
	assert.Equal(t, b, e.Union(b))
	assert.Equal(t, b, b.Union(e))
	assert.Equal(t, NewBox(0, 0, 5, 6), b.Union(NewBox(4, 4, 5, 6)))
	assert.False(t, e.Contains(0, 0))
}
