package shape

import (
	"math"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/vec"
)

// semiAxes returns the half width and half height of the bounding box.
func (s *Shape) semiAxes() (a, b float64) {
	box := s.BoundingBox()
	return box.Width() / 2, box.Height() / 2
}

// ellipseValue evaluates ((x-cx)/a)² + ((y-cy)/b)². It is 1 on the
// circumference, below 1 inside. A flat ellipse yields +Inf everywhere.
func (s *Shape) ellipseValue(p vec.Vector2) float64 {
	a, b := s.semiAxes()
	if a == 0 || b == 0 {
		return math.Inf(1)
	}
	c := s.BoundingBox().Center()
	dx := (p.X - c.X) / a
	dy := (p.Y - c.Y) / b
	return dx*dx + dy*dy
}

func (s *Shape) inEllipse(p vec.Vector2) bool {
	return s.ellipseValue(p) <= 1
}

// ellipseOverlapsRegion clamps the ellipse center into the region; the
// result is the region point nearest the center in the ellipse's own
// scaled metric, so the region overlaps exactly when that point is inside.
func (s *Shape) ellipseOverlapsRegion(region geom.Box) bool {
	c := s.BoundingBox().Center()
	nearest := vec.New(
		math.Max(region.TopLeft.X, math.Min(c.X, region.BottomRight.X)),
		math.Max(region.TopLeft.Y, math.Min(c.Y, region.BottomRight.Y)),
	)
	return s.inEllipse(nearest)
}

// PointsAtY returns the two circumference points on the horizontal line y,
// right one first. When the line misses the ellipse both are geom.NoPoint.
func (s *Shape) PointsAtY(y float64) [2]vec.Vector2 {
	a, b := s.semiAxes()
	c := s.BoundingBox().Center()
	dy := y - c.Y
	under := 1 - (dy*dy)/(b*b)
	if b == 0 || under < 0 || math.IsNaN(under) {
		return [2]vec.Vector2{geom.NoPoint, geom.NoPoint}
	}
	x := a * math.Sqrt(under)
	return [2]vec.Vector2{vec.New(c.X+x, y), vec.New(c.X-x, y)}
}

// PointsAtX returns the two circumference points on the vertical line x,
// lower one first. When the line misses the ellipse both are geom.NoPoint.
func (s *Shape) PointsAtX(x float64) [2]vec.Vector2 {
	a, b := s.semiAxes()
	c := s.BoundingBox().Center()
	dx := x - c.X
	under := 1 - (dx*dx)/(a*a)
	if a == 0 || under < 0 || math.IsNaN(under) {
		return [2]vec.Vector2{geom.NoPoint, geom.NoPoint}
	}
	y := b * math.Sqrt(under)
	return [2]vec.Vector2{vec.New(x, c.Y+y), vec.New(x, c.Y-y)}
}
