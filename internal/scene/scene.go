// Package scene is the retained shape registry: it owns every shape, keeps
// paint order, and answers group queries by id or tag.
//
// A Scene is not safe for concurrent use. Hosts that share one between
// goroutines must serialize access themselves.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/vec"
)

var (
	ErrDuplicateShape = errors.New("an identical shape is already in the scene")
	ErrSceneFull      = errors.New("scene has reached its shape limit")
)

// Scene holds shapes by id plus the paint order (later ids paint on top).
type Scene struct {
	shapes    map[int]*shape.Shape
	order     []int
	lastID    int
	maxShapes int
	logger    *slog.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger routes the scene's debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxShapes caps the number of shapes; 0 means no cap.
func WithMaxShapes(n int) Option {
	return func(s *Scene) {
		s.maxShapes = max(n, 0)
	}
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		shapes: make(map[int]*shape.Shape),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of shapes present, hidden ones included.
func (s *Scene) Len() int {
	return len(s.order)
}

// Insert takes a copy of sh, gives it the next id and paints it on top.
// The insert is refused with ErrDuplicateShape when a present shape of the
// same kind has the same geometry; Text is never considered a duplicate.
func (s *Scene) Insert(sh *shape.Shape) (int, error) {
	if s.maxShapes > 0 && len(s.order) >= s.maxShapes {
		return 0, fmt.Errorf("insert %v: %w", sh.Kind, ErrSceneFull)
	}
	if (sh.Kind == shape.Polygon || sh.Kind == shape.Polyline) && len(sh.Vertices) == 0 {
		s.logger.Debug("rejected shape without vertices", "kind", sh.Kind)
		return 0, fmt.Errorf("insert %v: %w: need at least 1 vertex", sh.Kind, shape.ErrGeometryArity)
	}
	if sh.Kind != shape.Text {
		for _, id := range s.order {
			if s.shapes[id].Equal(sh) {
				s.logger.Debug("rejected duplicate shape", "kind", sh.Kind, "existing", id)
				return 0, fmt.Errorf("insert %v: %w (id %d)", sh.Kind, ErrDuplicateShape, id)
			}
		}
	}

	s.lastID++
	stored := sh.Clone()
	stored.ID = s.lastID
	s.shapes[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.ID, nil
}

// --- Factories ---

// Rectangle adds the rectangle spanned by two opposite corners.
func (s *Scene) Rectangle(x1, y1, x2, y2 float64) (int, error) {
	return s.Insert(shape.NewRectangle(vec.New(x1, y1), vec.New(x2, y2)))
}

// Ellipse adds the ellipse inscribed in the box spanned by two corners.
func (s *Scene) Ellipse(x1, y1, x2, y2 float64) (int, error) {
	return s.Insert(shape.NewEllipse(vec.New(x1, y1), vec.New(x2, y2)))
}

func (s *Scene) Circle(x, y, radius float64) (int, error) {
	return s.Insert(shape.NewCircle(vec.New(x, y), radius))
}

func (s *Scene) Polygon(vertices []vec.Vector2) (int, error) {
	return s.Insert(shape.NewPolygon(vertices))
}

func (s *Scene) Polyline(vertices []vec.Vector2) (int, error) {
	return s.Insert(shape.NewPolyline(vertices))
}

// Sector adds an arc, chord or pie. Angles are degrees and may be negative
// or exceed a full turn.
func (s *Scene) Sector(x1, y1, x2, y2 float64, kind shape.ArcKind, startAngle, sweepAngle float64) (int, error) {
	return s.Insert(shape.NewSector(vec.New(x1, y1), vec.New(x2, y2), startAngle, sweepAngle, kind))
}

// Text adds a text shape; width 0 sizes the box to the text.
func (s *Scene) Text(x, y float64, text string, width float64) (int, error) {
	return s.Insert(shape.NewText(vec.New(x, y), text, width))
}

// --- Lookup helpers ---

// Get returns a copy of the shape with the given id.
func (s *Scene) Get(id int) (*shape.Shape, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return nil, false
	}
	return sh.Clone(), true
}

// Shapes returns copies of every shape in paint order.
func (s *Scene) Shapes() []*shape.Shape {
	out := make([]*shape.Shape, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.shapes[id].Clone())
	}
	return out
}

func (s *Scene) position(id int) int {
	return slices.Index(s.order, id)
}

// update applies fn to the shape with the given id.
func (s *Scene) update(id int, fn func(*shape.Shape)) bool {
	sh, ok := s.shapes[id]
	if !ok {
		return false
	}
	fn(sh)
	return true
}

// updateTag applies fn to every shape carrying tag, in paint order.
func (s *Scene) updateTag(tag string, fn func(*shape.Shape)) bool {
	found := false
	for _, id := range slices.Clone(s.order) {
		if sh := s.shapes[id]; sh != nil && sh.HasTag(tag) {
			fn(sh)
			found = true
		}
	}
	return found
}

// matching returns the ids, in paint order, of shapes for which keep is true.
func (s *Scene) matching(keep func(*shape.Shape) bool) []int {
	var ids []int
	for _, id := range s.order {
		if keep(s.shapes[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}

// --- Lifecycle ---

// Remove deletes the shape with the given id.
func (s *Scene) Remove(id int) bool {
	pos := s.position(id)
	if pos < 0 {
		return false
	}
	s.order = slices.Delete(s.order, pos, pos+1)
	delete(s.shapes, id)
	return true
}

// RemoveTag deletes every shape carrying tag.
func (s *Scene) RemoveTag(tag string) bool {
	ids := s.FindWithTag(tag)
	for _, id := range ids {
		s.Remove(id)
	}
	return len(ids) > 0
}

// Clear removes every shape. Ids keep counting from where they were.
func (s *Scene) Clear() {
	s.order = nil
	clear(s.shapes)
}

// --- Geometry ---

// BBox returns the bounding box of one shape.
func (s *Scene) BBox(id int) (geom.Box, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return geom.Box{}, false
	}
	return sh.BoundingBox(), true
}

// BoundingBoxOf unions the boxes of the listed shapes. Unknown ids are
// skipped; when nothing matches the result is geom.Empty().
func (s *Scene) BoundingBoxOf(ids []int) geom.Box {
	box := geom.Empty()
	for _, id := range ids {
		if sh, ok := s.shapes[id]; ok {
			box = box.Union(sh.BoundingBox())
		}
	}
	return box
}

// BoundingBoxOfTags unions the boxes of every shape carrying any of tags.
// When nothing matches the result is geom.Empty().
func (s *Scene) BoundingBoxOfTags(tags []string) geom.Box {
	ids := s.matching(func(sh *shape.Shape) bool {
		return slices.ContainsFunc(tags, sh.HasTag)
	})
	return s.BoundingBoxOf(ids)
}

// Coords returns the defining points of a shape, or nil when it is absent.
func (s *Scene) Coords(id int) []vec.Vector2 {
	sh, ok := s.shapes[id]
	if !ok {
		return nil
	}
	return sh.Coords()
}

// SetCoords replaces a shape's geometry. It reports false when the shape is
// absent or the point count does not suit its kind.
func (s *Scene) SetCoords(id int, points []vec.Vector2) bool {
	sh, ok := s.shapes[id]
	if !ok {
		return false
	}
	if err := sh.ReplaceGeometry(points); err != nil {
		s.logger.Debug("set coords", "id", id, "error", err)
		return false
	}
	return true
}

// Move translates one shape.
func (s *Scene) Move(id int, dx, dy float64) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Translate(dx, dy) })
}

// MoveTag translates every shape carrying tag.
func (s *Scene) MoveTag(tag string, dx, dy float64) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Translate(dx, dy) })
}

// ContainsPoint reports whether shape id contains (x, y). Absent shapes contain nothing.
func (s *Scene) ContainsPoint(id int, x, y float64) bool {
	sh, ok := s.shapes[id]
	return ok && sh.ContainsPoint(x, y)
}

// OverlapsRegion reports whether shape id overlaps region.
func (s *Scene) OverlapsRegion(id int, region geom.Box) bool {
	sh, ok := s.shapes[id]
	return ok && sh.OverlapsRegion(region)
}

// --- Visibility ---

func (s *Scene) Show(id int) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Visible = true })
}

func (s *Scene) Hide(id int) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Visible = false })
}

func (s *Scene) ShowTag(tag string) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Visible = true })
}

func (s *Scene) HideTag(tag string) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Visible = false })
}

// IsVisible is false for hidden and for absent shapes.
func (s *Scene) IsVisible(id int) bool {
	sh, ok := s.shapes[id]
	return ok && sh.Visible
}
