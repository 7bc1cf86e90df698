// Package shape is the closed set of geometric shapes a scene can hold.
//
// Every operation dispatches on Kind with an exhaustive switch; there is no
// interface to implement and no way to add a variant outside this package.
package shape

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/vec"
)

var ErrGeometryArity = errors.New("wrong number of points for shape geometry")

// Kind discriminates the shape variants.
type Kind int

const (
	Rectangle Kind = iota
	Ellipse
	Circle
	Polygon
	Polyline
	Sector
	Text
)

var kindNames = [...]string{"rectangle", "ellipse", "circle", "polygon", "polyline", "sector", "text"}

func (k Kind) String() string {
	if k < Rectangle || k > Text {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown shape kind %q", text)
	}
	*k = parsed
	return nil
}

// ParseKind maps a kind name back to its value.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Rectangle, false
}

// DefaultTag is the tag every new shape of this kind starts with, next to AllTag.
func (k Kind) DefaultTag() string {
	if k == Sector {
		return "arc"
	}
	return k.String()
}

// ArcKind selects which region of a Sector is filled.
type ArcKind int

const (
	Arc   ArcKind = iota // outline only
	Chord                // circumference closed by the start-end chord
	Pie                  // circumference closed by two radii
)

var arcNames = [...]string{"arc", "chord", "pie"}

func (a ArcKind) String() string {
	if a < Arc || a > Pie {
		return fmt.Sprintf("ArcKind(%d)", int(a))
	}
	return arcNames[a]
}

func (a ArcKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ArcKind) UnmarshalText(text []byte) error {
	for i, n := range arcNames {
		if n == string(text) {
			*a = ArcKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown arc kind %q", text)
}

// Shape is a single scene entry. Which geometry fields are meaningful
// depends on Kind:
//
//	Rectangle, Ellipse, Sector  TopLeft, BottomRight
//	Circle                      Center, Radius
//	Polygon, Polyline           Vertices
//	Sector                      StartAngle, SweepAngle, Arc
//	Text                        TopLeft, Width (0 = sized by the text)
type Shape struct {
	ID      int
	Kind    Kind
	Style   Style
	Tags    Tags
	Visible bool

	TopLeft     vec.Vector2
	BottomRight vec.Vector2
	Center      vec.Vector2
	Radius      float64
	Vertices    []vec.Vector2
	StartAngle  float64
	SweepAngle  float64
	Arc         ArcKind
	Width       float64
}

func newShape(kind Kind) *Shape {
	return &Shape{
		Kind:    kind,
		Style:   DefaultStyle(),
		Tags:    Tags{AllTag, kind.DefaultTag()},
		Visible: true,
	}
}

func newBoxShape(kind Kind, a, b vec.Vector2) *Shape {
	s := newShape(kind)
	box := geom.BoxFromCorners(a, b)
	s.TopLeft, s.BottomRight = box.TopLeft, box.BottomRight
	return s
}

// NewRectangle builds a rectangle from any two opposite corners.
func NewRectangle(a, b vec.Vector2) *Shape {
	return newBoxShape(Rectangle, a, b)
}

// NewEllipse builds the ellipse inscribed in the box spanned by a and b.
func NewEllipse(a, b vec.Vector2) *Shape {
	return newBoxShape(Ellipse, a, b)
}

// NewCircle builds a circle. A negative radius is taken by magnitude.
func NewCircle(center vec.Vector2, radius float64) *Shape {
	s := newShape(Circle)
	s.Center = center
	s.Radius = math.Abs(radius)
	return s
}

// NewPolygon builds a closed polygon; the last vertex joins the first.
func NewPolygon(vertices []vec.Vector2) *Shape {
	s := newShape(Polygon)
	s.Vertices = slices.Clone(vertices)
	return s
}

// NewPolyline builds an open chain of segments.
func NewPolyline(vertices []vec.Vector2) *Shape {
	s := newShape(Polyline)
	s.Vertices = slices.Clone(vertices)
	return s
}

// NewSector builds an arc, chord or pie of the ellipse inscribed in the box
// spanned by a and b. Angles are in degrees and are normalized.
func NewSector(a, b vec.Vector2, startAngle, sweepAngle float64, kind ArcKind) *Shape {
	s := newBoxShape(Sector, a, b)
	s.StartAngle = NormalizeAngle(startAngle)
	s.SweepAngle = NormalizeSweep(sweepAngle)
	s.Arc = kind
	return s
}

// NewText places text with its top-left corner at position.
func NewText(position vec.Vector2, text string, width float64) *Shape {
	s := newShape(Text)
	s.TopLeft = position
	s.Style.Text = text
	s.Width = max(width, 0)
	return s
}

// Clone returns a deep copy that shares no slices with s.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Tags = slices.Clone(s.Tags)
	c.Vertices = slices.Clone(s.Vertices)
	return &c
}

func (s *Shape) unknownKind() string {
	return fmt.Sprintf("shape %d: unknown kind %v", s.ID, s.Kind)
}

// --- Contract operations ---

// BoundingBox returns the tightest axis-aligned box around the shape.
// Polygons and polylines with fewer than three vertices report the zero box.
func (s *Shape) BoundingBox() geom.Box {
	switch s.Kind {
	case Rectangle, Ellipse, Sector:
		return geom.Box{TopLeft: s.TopLeft, BottomRight: s.BottomRight}
	case Circle:
		r := vec.New(s.Radius, s.Radius)
		return geom.Box{TopLeft: s.Center.Sub(r), BottomRight: s.Center.Add(r)}
	case Polygon, Polyline:
		return geom.BoundingBox(s.Vertices)
	case Text:
		return s.textBox()
	}
	panic(s.unknownKind())
}

// ContainsPoint reports whether (x, y) is inside the shape, or on it for
// outline-only variants.
func (s *Shape) ContainsPoint(x, y float64) bool {
	p := vec.New(x, y)
	switch s.Kind {
	case Rectangle, Text:
		return s.BoundingBox().Contains(x, y)
	case Ellipse, Circle:
		return s.inEllipse(p)
	case Polygon:
		return s.inPolygon(p)
	case Polyline:
		return s.onPolyline(p)
	case Sector:
		return s.inSector(p)
	}
	panic(s.unknownKind())
}

// OverlapsRegion reports whether the shape and region share any point.
func (s *Shape) OverlapsRegion(region geom.Box) bool {
	if region.IsEmpty() {
		return false
	}
	switch s.Kind {
	case Rectangle, Text:
		return geom.RegionsOverlap(s.BoundingBox(), region)
	case Ellipse, Circle:
		return s.ellipseOverlapsRegion(region)
	case Polygon:
		return s.polygonOverlapsRegion(region)
	case Polyline:
		return s.polylineOverlapsRegion(region)
	case Sector:
		return s.sectorOverlapsRegion(region)
	}
	panic(s.unknownKind())
}

// EnclosedBy reports whether the shape lies entirely inside region.
// Box-shaped variants test their bounding box; polygons and polylines
// require every vertex inside.
func (s *Shape) EnclosedBy(region geom.Box) bool {
	switch s.Kind {
	case Rectangle, Ellipse, Circle, Sector, Text:
		b := s.BoundingBox()
		return geom.PointInRegion(b.TopLeft, region.TopLeft, region.BottomRight) &&
			geom.PointInRegion(b.BottomRight, region.TopLeft, region.BottomRight)
	case Polygon, Polyline:
		for _, v := range s.Vertices {
			if !geom.PointInRegion(v, region.TopLeft, region.BottomRight) {
				return false
			}
		}
		return true
	}
	panic(s.unknownKind())
}

// Translate moves the shape by (dx, dy).
func (s *Shape) Translate(dx, dy float64) {
	d := vec.New(dx, dy)
	switch s.Kind {
	case Rectangle, Ellipse, Sector:
		s.TopLeft = s.TopLeft.Add(d)
		s.BottomRight = s.BottomRight.Add(d)
	case Text:
		s.TopLeft = s.TopLeft.Add(d)
	case Circle:
		s.Center = s.Center.Add(d)
	case Polygon, Polyline:
		for i := range s.Vertices {
			s.Vertices[i] = s.Vertices[i].Add(d)
		}
	default:
		panic(s.unknownKind())
	}
}

// ReplaceGeometry swaps the shape's defining points:
//
//	Rectangle, Ellipse, Sector  two opposite corners
//	Circle                      center, then a point whose X is the radius
//	Polygon, Polyline           one or more vertices
//	Text                        the top-left position
//
// The shape is left untouched when the point count is wrong.
func (s *Shape) ReplaceGeometry(points []vec.Vector2) error {
	switch s.Kind {
	case Rectangle, Ellipse, Sector:
		if len(points) != 2 {
			return fmt.Errorf("%w: %v takes 2 corners, got %d", ErrGeometryArity, s.Kind, len(points))
		}
		box := geom.BoxFromCorners(points[0], points[1])
		s.TopLeft, s.BottomRight = box.TopLeft, box.BottomRight
	case Circle:
		if len(points) != 2 {
			return fmt.Errorf("%w: circle takes center and radius, got %d points", ErrGeometryArity, len(points))
		}
		s.Center = points[0]
		s.Radius = math.Abs(points[1].X)
	case Polygon, Polyline:
		if len(points) == 0 {
			return fmt.Errorf("%w: %v needs at least one vertex", ErrGeometryArity, s.Kind)
		}
		s.Vertices = slices.Clone(points)
	case Text:
		if len(points) != 1 {
			return fmt.Errorf("%w: text takes 1 position, got %d", ErrGeometryArity, len(points))
		}
		s.TopLeft = points[0]
	default:
		panic(s.unknownKind())
	}
	return nil
}

// ClosestVertex returns the shape vertex nearest to (x, y): a bounding box
// corner for box-shaped variants, an actual vertex for polygons and
// polylines. Ties go to the first candidate.
func (s *Shape) ClosestVertex(x, y float64) vec.Vector2 {
	var candidates []vec.Vector2
	switch s.Kind {
	case Rectangle, Ellipse, Circle, Sector, Text:
		corners := s.BoundingBox().Corners()
		candidates = corners[:]
	case Polygon, Polyline:
		candidates = s.Vertices
	default:
		panic(s.unknownKind())
	}
	if len(candidates) == 0 {
		return geom.NoPoint
	}

	closest := candidates[0]
	least := closest.MagnitudeTo(x, y)
	for _, c := range candidates[1:] {
		if d := c.MagnitudeTo(x, y); d < least {
			least, closest = d, c
		}
	}
	return closest
}

// Coords lists the points that define the shape: the four bounding box
// corners clockwise from the top left for box-shaped variants (followed by
// the start and end points for sectors), and the vertices for polygons and
// polylines.
func (s *Shape) Coords() []vec.Vector2 {
	switch s.Kind {
	case Rectangle, Ellipse, Circle, Text:
		corners := s.BoundingBox().Corners()
		return corners[:]
	case Sector:
		corners := s.BoundingBox().Corners()
		return append(corners[:], s.StartPoint(), s.EndPoint())
	case Polygon, Polyline:
		return slices.Clone(s.Vertices)
	}
	panic(s.unknownKind())
}

// Equal reports whether two shapes are the same variant with the same
// geometry, compared point by point with vec.Vector2.Equal. Style, tags and
// ids are ignored.
func (s *Shape) Equal(other *Shape) bool {
	if s.Kind != other.Kind {
		return false
	}
	if s.Kind == Sector && s.Arc != other.Arc {
		return false
	}
	return slices.EqualFunc(s.Coords(), other.Coords(), vec.Vector2.Equal)
}
