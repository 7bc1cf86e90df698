package scene

import "slices"

// Raise moves first so it paints immediately above second. It reports
// false when either shape is absent or first already paints above second.
func (s *Scene) Raise(first, second int) bool {
	firstPos, secondPos := s.position(first), s.position(second)
	if firstPos < 0 || secondPos < 0 || firstPos >= secondPos {
		return false
	}
	s.order = slices.Delete(s.order, firstPos, firstPos+1)
	// second shifted down by one when first was removed from below it
	s.order = slices.Insert(s.order, secondPos, first)
	return true
}

// Lower moves first so it paints immediately below second.
func (s *Scene) Lower(first, second int) bool {
	return s.Raise(second, first)
}

// RaiseTag raises every shape carrying tag above target.
func (s *Scene) RaiseTag(tag string, target int) bool {
	raised := false
	for _, id := range s.FindWithTag(tag) {
		if s.Raise(id, target) {
			raised = true
		}
	}
	return raised
}

// LowerTag lowers every shape carrying tag below target.
func (s *Scene) LowerTag(tag string, target int) bool {
	lowered := false
	for _, id := range s.FindWithTag(tag) {
		if s.Lower(id, target) {
			lowered = true
		}
	}
	return lowered
}

// PaintIndex returns the position of id in paint order, 0 at the bottom.
func (s *Scene) PaintIndex(id int) (int, bool) {
	pos := s.position(id)
	return pos, pos >= 0
}
