package scene

import (
	"slices"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/shape"
)

// FindAll returns every id in paint order.
func (s *Scene) FindAll() []int {
	return slices.Clone(s.order)
}

// FindWithTag returns the ids carrying tag, in paint order.
func (s *Scene) FindWithTag(tag string) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.HasTag(tag) })
}

// FindOverlapping returns the ids of shapes that overlap region.
func (s *Scene) FindOverlapping(region geom.Box) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.OverlapsRegion(region) })
}

// FindEnclosed returns the ids of shapes lying entirely inside region.
func (s *Scene) FindEnclosed(region geom.Box) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.EnclosedBy(region) })
}

// FindAbove returns the ids greater than id, in paint order. The comparison
// is on ids, not on paint position.
func (s *Scene) FindAbove(id int) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.ID > id })
}

// FindBelow returns the ids smaller than id, in paint order.
func (s *Scene) FindBelow(id int) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.ID < id })
}

// FindAt returns the ids of every shape containing (x, y), in paint order.
// Hidden shapes are included.
func (s *Scene) FindAt(x, y float64) []int {
	return s.matching(func(sh *shape.Shape) bool { return sh.ContainsPoint(x, y) })
}

// ClosestTo returns the shape whose closest vertex is nearest to (x, y).
// Ties go to the shape lowest in paint order.
func (s *Scene) ClosestTo(x, y float64) (int, bool) {
	best, found := 0, false
	var least float64
	for _, id := range s.order {
		d := s.shapes[id].ClosestVertex(x, y).MagnitudeTo(x, y)
		if !found || d < least {
			best, least, found = id, d, true
		}
	}
	return best, found
}

// FindClosest is ClosestTo shaped like the other finders: a list with at
// most one id.
func (s *Scene) FindClosest(x, y float64) []int {
	if id, ok := s.ClosestTo(x, y); ok {
		return []int{id}
	}
	return nil
}

// HitTest returns the topmost visible shape containing (x, y).
func (s *Scene) HitTest(x, y float64) (int, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		sh := s.shapes[s.order[i]]
		if sh.Visible && sh.ContainsPoint(x, y) {
			return sh.ID, true
		}
	}
	return 0, false
}
