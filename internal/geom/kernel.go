// Package geom holds the free-standing geometry used by every shape:
// region membership, line intersection, segment proximity and bounding boxes.
package geom

import (
	"math"

	"github.com/inamate/scenekit/internal/vec"
)

// SegmentSlack is how far, in pixels, the detour through a point may exceed
// the segment length before WithinSegment rejects it.
const SegmentSlack = 1.0

// NoPoint is returned when no real intersection exists. It compares unequal
// to every finite coordinate and fails every region test.
var NoPoint = vec.Vector2{X: math.Inf(1), Y: math.Inf(1)}

// PointInRegion reports whether point lies inside the axis-aligned region, edges included.
func PointInRegion(point, topLeft, bottomRight vec.Vector2) bool {
	return point.X >= topLeft.X && point.Y >= topLeft.Y &&
		point.X <= bottomRight.X && point.Y <= bottomRight.Y
}

// RegionsOverlap reports whether the two boxes share at least one point.
// Besides one box holding a corner of the other, this also catches two
// boxes crossing like a plus sign, where neither holds a corner.
func RegionsOverlap(a, b Box) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.TopLeft.X <= b.BottomRight.X && b.TopLeft.X <= a.BottomRight.X &&
		a.TopLeft.Y <= b.BottomRight.Y && b.TopLeft.Y <= a.BottomRight.Y
}

// line returns the slope and y-intercept of the line through a and b.
func line(a, b vec.Vector2) (slope, intercept float64) {
	slope = (b.Y - a.Y) / (b.X - a.X)
	return slope, b.Y - slope*b.X
}

// SegmentIntersection returns the point where the infinite lines through
// (start1, end1) and (start2, end2) meet. Parallel lines, including two
// vertical ones, and zero-length segments give NoPoint. Callers that care
// about the finite segments must confirm the result with WithinSegment.
func SegmentIntersection(start1, end1, start2, end2 vec.Vector2) vec.Vector2 {
	if start1.Equal(end1) || start2.Equal(end2) {
		return NoPoint
	}

	vertical1 := start1.X == end1.X
	vertical2 := start2.X == end2.X

	switch {
	case vertical1 && vertical2:
		return NoPoint
	case vertical1:
		slope, intercept := line(start2, end2)
		return vec.New(start1.X, slope*start1.X+intercept)
	case vertical2:
		slope, intercept := line(start1, end1)
		return vec.New(start2.X, slope*start2.X+intercept)
	}

	slope1, intercept1 := line(start1, end1)
	slope2, intercept2 := line(start2, end2)
	if slope1 == slope2 {
		return NoPoint
	}
	x := (intercept1 - intercept2) / (slope2 - slope1)
	return vec.New(x, slope1*x+intercept1)
}

// WithinSegment reports whether point sits on the segment from start to end,
// allowing SegmentSlack pixels of detour. It is a proximity test, not an
// exact collinearity test.
func WithinSegment(point, start, end vec.Vector2) bool {
	if !point.IsFinite() {
		return false
	}
	length := start.Magnitude(end)
	detour := start.Magnitude(point) + end.Magnitude(point)
	return detour-length < SegmentSlack
}

// SegmentsCross reports whether the two finite segments meet.
func SegmentsCross(start1, end1, start2, end2 vec.Vector2) bool {
	p := SegmentIntersection(start1, end1, start2, end2)
	if p == NoPoint {
		return false
	}
	return WithinSegment(p, start1, end1) && WithinSegment(p, start2, end2)
}

// SegmentCrossesRegion reports whether the segment meets any side of the region.
func SegmentCrossesRegion(start, end vec.Vector2, region Box) bool {
	for _, side := range region.Sides() {
		if SegmentsCross(start, end, side[0], side[1]) {
			return true
		}
	}
	return false
}

// BoundingBox reduces points to their enclosing box. Fewer than three
// points yield the zero box; that is the documented degenerate result,
// not an error.
func BoundingBox(points []vec.Vector2) Box {
	if len(points) < 3 {
		return Box{}
	}
	b := Box{TopLeft: points[0], BottomRight: points[0]}
	for _, p := range points[1:] {
		b.TopLeft.X = min(b.TopLeft.X, p.X)
		b.TopLeft.Y = min(b.TopLeft.Y, p.Y)
		b.BottomRight.X = max(b.BottomRight.X, p.X)
		b.BottomRight.Y = max(b.BottomRight.Y, p.Y)
	}
	return b
}
