package scene

import "github.com/inamate/scenekit/internal/shape"

// Style setters come in pairs: by id and by tag. Each reports whether
// anything matched.

func (s *Scene) SetFill(id int, color string) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Style.FillColor = color })
}

func (s *Scene) SetFillTag(tag, color string) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.FillColor = color })
}

// SetPen changes the outline color; an empty color leaves it unchanged.
func (s *Scene) SetPen(id int, color string) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Style.SetPenColor(color) })
}

func (s *Scene) SetPenTag(tag, color string) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.SetPenColor(color) })
}

func (s *Scene) SetPenSize(id, size int) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Style.PenSize = max(size, 0) })
}

func (s *Scene) SetPenSizeTag(tag string, size int) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.PenSize = max(size, 0) })
}

func (s *Scene) SetBorder(id int, border shape.BorderStyle) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Style.Border = border })
}

func (s *Scene) SetBorderTag(tag string, border shape.BorderStyle) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.Border = border })
}

// SetFont replaces the font; decorations is a list like "bold underline".
func (s *Scene) SetFont(id int, family string, size int, decorations string) bool {
	f := shape.ParseFont(family, size, decorations)
	return s.update(id, func(sh *shape.Shape) { sh.Style.Font = f })
}

func (s *Scene) SetFontTag(tag, family string, size int, decorations string) bool {
	f := shape.ParseFont(family, size, decorations)
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.Font = f })
}

func (s *Scene) SetText(id int, text string) bool {
	return s.update(id, func(sh *shape.Shape) { sh.Style.Text = text })
}

func (s *Scene) SetTextTag(tag, text string) bool {
	return s.updateTag(tag, func(sh *shape.Shape) { sh.Style.Text = text })
}

// Getters return the zero value for absent shapes.

func (s *Scene) Fill(id int) string {
	return s.style(id).FillColor
}

func (s *Scene) Pen(id int) string {
	return s.style(id).PenColor
}

func (s *Scene) PenSize(id int) int {
	return s.style(id).PenSize
}

func (s *Scene) Border(id int) shape.BorderStyle {
	return s.style(id).Border
}

func (s *Scene) Font(id int) shape.Font {
	return s.style(id).Font
}

// TextOf returns the text payload; Text is the factory.
func (s *Scene) TextOf(id int) string {
	return s.style(id).Text
}

// Kind returns the variant of shape id.
func (s *Scene) Kind(id int) (shape.Kind, bool) {
	sh, ok := s.shapes[id]
	if !ok {
		return 0, false
	}
	return sh.Kind, true
}

func (s *Scene) style(id int) shape.Style {
	if sh, ok := s.shapes[id]; ok {
		return sh.Style
	}
	return shape.Style{}
}
