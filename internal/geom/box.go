package geom

import (
	"math"

	"github.com/inamate/scenekit/internal/vec"
)

// Box is an axis-aligned region described by its top-left and bottom-right corners.
type Box struct {
	TopLeft     vec.Vector2 `json:"topLeft"`
	BottomRight vec.Vector2 `json:"bottomRight"`
}

// NewBox builds a box from any two opposite corners, swapping
// coordinates so TopLeft <= BottomRight componentwise.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{TopLeft: vec.New(x1, y1), BottomRight: vec.New(x2, y2)}
}

// BoxFromCorners is NewBox for two points.
func BoxFromCorners(a, b vec.Vector2) Box {
	return NewBox(a.X, a.Y, b.X, b.Y)
}

// Empty returns the inverted box {+Inf, +Inf, -Inf, -Inf}. It is returned by
// group queries that match nothing and acts as the identity for Union.
func Empty() Box {
	return Box{
		TopLeft:     vec.New(math.Inf(1), math.Inf(1)),
		BottomRight: vec.New(math.Inf(-1), math.Inf(-1)),
	}
}

// IsEmpty reports whether the box is inverted (no point can lie in it).
func (b Box) IsEmpty() bool {
	return b.TopLeft.X > b.BottomRight.X || b.TopLeft.Y > b.BottomRight.Y
}

// Contains checks if a point is inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return PointInRegion(vec.New(x, y), b.TopLeft, b.BottomRight)
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box{
		TopLeft:     vec.New(min(b.TopLeft.X, other.TopLeft.X), min(b.TopLeft.Y, other.TopLeft.Y)),
		BottomRight: vec.New(max(b.BottomRight.X, other.BottomRight.X), max(b.BottomRight.Y, other.BottomRight.Y)),
	}
}

// TopRight returns the top right corner.
func (b Box) TopRight() vec.Vector2 {
	return vec.New(b.BottomRight.X, b.TopLeft.Y)
}

// BottomLeft returns the bottom left corner.
func (b Box) BottomLeft() vec.Vector2 {
	return vec.New(b.TopLeft.X, b.BottomRight.Y)
}

// Corners lists the corners clockwise from the top left.
func (b Box) Corners() [4]vec.Vector2 {
	return [4]vec.Vector2{b.TopLeft, b.TopRight(), b.BottomRight, b.BottomLeft()}
}

// Sides returns the four edges as start/end pairs: top, right, bottom, left.
func (b Box) Sides() [4][2]vec.Vector2 {
	c := b.Corners()
	return [4][2]vec.Vector2{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// Center returns the center point of the box.
func (b Box) Center() vec.Vector2 {
	return vec.New((b.TopLeft.X+b.BottomRight.X)/2, (b.TopLeft.Y+b.BottomRight.Y)/2)
}

// Width of the box.
func (b Box) Width() float64 {
	return b.BottomRight.X - b.TopLeft.X
}

// Height of the box.
func (b Box) Height() float64 {
	return b.BottomRight.Y - b.TopLeft.Y
}

// Translate shifts both corners by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	d := vec.New(dx, dy)
	return Box{TopLeft: b.TopLeft.Add(d), BottomRight: b.BottomRight.Add(d)}
}
