package shape

import (
	"math"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/vec"
)

// ArcTolerance is how far ellipseValue may stray from 1 for a point to be
// on an Arc outline.
const ArcTolerance = 0.02

// NormalizeAngle folds any angle in degrees into [0, 360).
func NormalizeAngle(degrees float64) float64 {
	a := math.Mod(degrees, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// NormalizeSweep folds a sweep into [0, 360]. A non-zero whole number of
// turns stays a full turn (360) instead of collapsing to nothing.
func NormalizeSweep(degrees float64) float64 {
	if degrees != 0 && math.Mod(degrees, 360) == 0 {
		return 360
	}
	return NormalizeAngle(degrees)
}

// AngleFromCoordinate returns the counter-clockwise angle, in [0, 360),
// between the horizontal line through the bounding box center and the ray
// from the center through (x, y). Screen y grows down, so "up" is 90.
func (s *Shape) AngleFromCoordinate(x, y float64) float64 {
	c := s.BoundingBox().Center()
	switch {
	case x == c.X:
		if y < c.Y {
			return 90
		}
		return 270
	case y == c.Y:
		if x < c.X {
			return 180
		}
		return 0
	}

	between := math.Atan((c.Y-y)/(c.X-x)) * 180 / math.Pi
	if between > 0 {
		if y < c.Y {
			return 180 - between
		}
		return 360 - between
	}
	if y < c.Y {
		return -between
	}
	return 180 - between
}

// CoordinateFromAngle returns the point where the ray from the bounding box
// center at the given angle meets the ellipse. It inverts AngleFromCoordinate
// for points on the circumference.
func (s *Shape) CoordinateFromAngle(degrees float64) vec.Vector2 {
	a, b := s.semiAxes()
	c := s.BoundingBox().Center()
	angle := NormalizeAngle(degrees)

	switch angle {
	case 0:
		return vec.New(c.X+a, c.Y)
	case 90:
		return vec.New(c.X, c.Y-b)
	case 180:
		return vec.New(c.X-a, c.Y)
	case 270:
		return vec.New(c.X, c.Y+b)
	}

	t := math.Tan(vec.ToRadians(angle))
	x := a * b / math.Sqrt(b*b+a*a*t*t)
	if angle > 90 && angle < 270 {
		x = -x
	}
	y := x * t
	if math.IsNaN(x) || math.IsNaN(y) {
		return c
	}
	return vec.New(c.X+x, c.Y-y)
}

// StartPoint is the circumference point at StartAngle.
func (s *Shape) StartPoint() vec.Vector2 {
	return s.CoordinateFromAngle(s.StartAngle)
}

// EndPoint is the circumference point at StartAngle + SweepAngle.
func (s *Shape) EndPoint() vec.Vector2 {
	return s.CoordinateFromAngle(s.StartAngle + s.SweepAngle)
}

// InSweep reports whether angle falls inside [StartAngle, StartAngle+SweepAngle],
// wrapping past 360 when the sweep crosses the positive x-axis.
func (s *Shape) InSweep(angle float64) bool {
	end := s.StartAngle + s.SweepAngle
	if end <= 360 {
		return angle >= s.StartAngle && angle <= end
	}
	return angle >= s.StartAngle || angle <= end-360
}

func (s *Shape) inSector(p vec.Vector2) bool {
	if !s.BoundingBox().Contains(p.X, p.Y) {
		return false
	}
	switch s.Arc {
	case Arc:
		return s.onArc(p)
	case Chord:
		return s.inChord(p)
	case Pie:
		// the apex has no angle of its own
		return p.Equal(s.BoundingBox().Center()) || s.inPie(p)
	}
	return false
}

func (s *Shape) onArc(p vec.Vector2) bool {
	return math.Abs(s.ellipseValue(p)-1) < ArcTolerance && s.InSweep(s.AngleFromCoordinate(p.X, p.Y))
}

func (s *Shape) inPie(p vec.Vector2) bool {
	return s.inEllipse(p) && s.InSweep(s.AngleFromCoordinate(p.X, p.Y))
}

// inChord cuts the triangle (center, start, end) off the pie when the sweep
// is at most half a turn, and adds it back when the sweep is larger. At
// exactly 180 the triangle is flat and the chord equals the pie.
func (s *Shape) inChord(p vec.Vector2) bool {
	c := s.BoundingBox().Center()
	inTriangle := pointInTriangle(p, c, s.StartPoint(), s.EndPoint())
	if s.SweepAngle > 180 {
		return s.inPie(p) || inTriangle
	}
	return s.inPie(p) && !inTriangle
}

func sign(p1, p2, p3 vec.Vector2) float64 {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

// pointInTriangle is the same-side test: p is inside when it lies on the
// same side of all three edges.
func pointInTriangle(p, v1, v2, v3 vec.Vector2) bool {
	b1 := sign(p, v1, v2) < 0
	b2 := sign(p, v2, v3) < 0
	b3 := sign(p, v3, v1) < 0
	return b1 == b2 && b2 == b3
}

// sectorOverlapsRegion probes where the ellipse crosses the lines through
// the region sides, keeping probes that are inside the region and inside
// the sweep. The straight edges of chords and pies are tested separately.
func (s *Shape) sectorOverlapsRegion(region geom.Box) bool {
	inRegion := func(p vec.Vector2) bool {
		return geom.PointInRegion(p, region.TopLeft, region.BottomRight)
	}

	probes := [4][2]vec.Vector2{
		s.PointsAtY(region.TopLeft.Y),
		s.PointsAtY(region.BottomRight.Y),
		s.PointsAtX(region.TopLeft.X),
		s.PointsAtX(region.BottomRight.X),
	}
	for _, pair := range probes {
		for _, p := range pair {
			if p == geom.NoPoint {
				continue
			}
			if inRegion(p) && s.InSweep(s.AngleFromCoordinate(p.X, p.Y)) {
				return true
			}
		}
	}

	start, end := s.StartPoint(), s.EndPoint()
	if inRegion(start) || inRegion(end) {
		return true
	}

	switch s.Arc {
	case Chord:
		if geom.SegmentCrossesRegion(start, end, region) {
			return true
		}
		return s.anyCornerInside(region)
	case Pie:
		c := s.BoundingBox().Center()
		if inRegion(c) ||
			geom.SegmentCrossesRegion(c, start, region) ||
			geom.SegmentCrossesRegion(c, end, region) {
			return true
		}
		return s.anyCornerInside(region)
	}
	return false
}
