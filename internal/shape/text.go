package shape

import (
	"unicode/utf8"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/vec"
)

// Text extents are estimated, not measured: 96 dpi, and a monospace
// advance of 0.6em per rune. The renderer owns real font metrics.
const (
	pixelsPerPoint = 96.0 / 72.0
	advancePerEm   = 0.6
)

func (s *Shape) textBox() geom.Box {
	em := float64(s.Style.Font.Size) * pixelsPerPoint
	width := s.Width
	if width <= 0 {
		width = float64(utf8.RuneCountInString(s.Style.Text)) * em * advancePerEm
	}
	return geom.Box{
		TopLeft:     s.TopLeft,
		BottomRight: s.TopLeft.Add(vec.New(width, em)),
	}
}
