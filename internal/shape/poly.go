package shape

import (
	"math"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/vec"
)

// HorizontalSlack is the vertical distance, in pixels, within which a point
// still counts as on a horizontal polyline segment.
const HorizontalSlack = 3.0

// inPolygon is the crossing-number test over the closed vertex ring. The
// strict > on both y comparisons means horizontal edges never toggle.
func (s *Shape) inPolygon(p vec.Vector2) bool {
	inside := false
	v := s.Vertices
	for i, j := 0, len(v)-1; i < len(v); j, i = i, i+1 {
		if (v[i].Y > p.Y) != (v[j].Y > p.Y) {
			crossX := (v[j].X-v[i].X)*(p.Y-v[i].Y)/(v[j].Y-v[i].Y) + v[i].X
			if p.X < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// edges returns consecutive vertex pairs, closing the ring when closed is set.
func (s *Shape) edges(closed bool) [][2]vec.Vector2 {
	n := len(s.Vertices)
	if n < 2 {
		return nil
	}
	out := make([][2]vec.Vector2, 0, n)
	for i := 0; i < n-1; i++ {
		out = append(out, [2]vec.Vector2{s.Vertices[i], s.Vertices[i+1]})
	}
	if closed && n > 2 {
		out = append(out, [2]vec.Vector2{s.Vertices[n-1], s.Vertices[0]})
	}
	return out
}

func (s *Shape) anyVertexIn(region geom.Box) bool {
	for _, v := range s.Vertices {
		if geom.PointInRegion(v, region.TopLeft, region.BottomRight) {
			return true
		}
	}
	return false
}

func (s *Shape) anyEdgeCrosses(region geom.Box, closed bool) bool {
	for _, e := range s.edges(closed) {
		if geom.SegmentCrossesRegion(e[0], e[1], region) {
			return true
		}
	}
	return false
}

// anyCornerInside reports whether a corner of region is contained by s.
func (s *Shape) anyCornerInside(region geom.Box) bool {
	for _, c := range region.Corners() {
		if s.ContainsPoint(c.X, c.Y) {
			return true
		}
	}
	return false
}

func (s *Shape) polygonOverlapsRegion(region geom.Box) bool {
	return s.anyVertexIn(region) || s.anyCornerInside(region) || s.anyEdgeCrosses(region, true)
}

func (s *Shape) polylineOverlapsRegion(region geom.Box) bool {
	return s.anyVertexIn(region) || s.anyEdgeCrosses(region, false)
}

func (s *Shape) onPolyline(p vec.Vector2) bool {
	for _, e := range s.edges(false) {
		if onSegment(p, e[0], e[1], s.Style.PenSize) {
			return true
		}
	}
	return false
}

// onSegment reports whether p is close enough to the segment to count as
// a hit. Thicker pens widen the band for slanted segments.
func onSegment(p, start, end vec.Vector2, penSize int) bool {
	if !geom.WithinSegment(p, start, end) {
		return false
	}
	switch {
	case start.X == end.X && start.X == p.X:
		return true
	case start.Y == end.Y:
		return math.Abs(start.Y-p.Y) < HorizontalSlack
	}
	length := start.Magnitude(end)
	dist := math.Abs((end.X-start.X)*(start.Y-p.Y)-(start.X-p.X)*(end.Y-start.Y)) / length
	return dist < 1+float64(penSize)
}
