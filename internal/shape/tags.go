package shape

import "slices"

// AllTag is carried by every shape and can never be removed.
const AllTag = "all"

// Tags is an insertion-ordered set of labels.
type Tags []string

// Has reports whether tag is present.
func (t Tags) Has(tag string) bool {
	return slices.Contains(t, tag)
}

// AddTag appends tag unless it is already present.
func (s *Shape) AddTag(tag string) bool {
	if tag == "" || s.Tags.Has(tag) {
		return false
	}
	s.Tags = append(s.Tags, tag)
	return true
}

// RemoveTag drops tag from the set. AllTag is kept no matter what.
func (s *Shape) RemoveTag(tag string) bool {
	if tag == AllTag {
		return false
	}
	i := slices.Index(s.Tags, tag)
	if i < 0 {
		return false
	}
	s.Tags = slices.Delete(s.Tags, i, i+1)
	return true
}

// HasTag reports whether the shape carries tag.
func (s *Shape) HasTag(tag string) bool {
	return s.Tags.Has(tag)
}
