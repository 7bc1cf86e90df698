package scene

import (
	"slices"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/shape"
)

// Tags returns a copy of a shape's tags, or nil when it is absent.
func (s *Scene) Tags(id int) []string {
	sh, ok := s.shapes[id]
	if !ok {
		return nil
	}
	return slices.Clone(sh.Tags)
}

// AddTag gives one shape a new tag. It reports whether the shape exists;
// re-adding a tag it already carries is not an error.
func (s *Scene) AddTag(id int, tag string) bool {
	return s.update(id, func(sh *shape.Shape) { sh.AddTag(tag) })
}

// DeleteTag removes tag from one shape. "all" is never removed.
func (s *Scene) DeleteTag(id int, tag string) bool {
	return s.update(id, func(sh *shape.Shape) { sh.RemoveTag(tag) })
}

// tagIDs adds tag to each listed shape and reports whether there were any.
func (s *Scene) tagIDs(ids []int, tag string) bool {
	for _, id := range ids {
		s.shapes[id].AddTag(tag)
	}
	return len(ids) > 0
}

// TagWithTag adds newTag to every shape already carrying tag.
func (s *Scene) TagWithTag(tag, newTag string) bool {
	return s.tagIDs(s.FindWithTag(tag), newTag)
}

// TagAbove adds tag to every shape FindAbove(id) returns.
func (s *Scene) TagAbove(tag string, id int) bool {
	return s.tagIDs(s.FindAbove(id), tag)
}

// TagBelow adds tag to every shape FindBelow(id) returns.
func (s *Scene) TagBelow(tag string, id int) bool {
	return s.tagIDs(s.FindBelow(id), tag)
}

// TagAll adds tag to every shape in the scene.
func (s *Scene) TagAll(tag string) bool {
	return s.tagIDs(s.FindAll(), tag)
}

// TagEnclosed adds tag to every shape lying inside region.
func (s *Scene) TagEnclosed(tag string, region geom.Box) bool {
	return s.tagIDs(s.FindEnclosed(region), tag)
}

// TagOverlapping adds tag to every shape overlapping region.
func (s *Scene) TagOverlapping(tag string, region geom.Box) bool {
	return s.tagIDs(s.FindOverlapping(region), tag)
}

// TagClosest adds tag to the shape ClosestTo picks.
func (s *Scene) TagClosest(tag string, x, y float64) bool {
	return s.tagIDs(s.FindClosest(x, y), tag)
}
