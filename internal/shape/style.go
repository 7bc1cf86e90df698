package shape

import (
	"fmt"
	"strings"
)

// BorderStyle is the pen pattern used to stroke a shape outline.
type BorderStyle int

const (
	Solid BorderStyle = iota
	Dash
	Dot
	DashDot
	DashDotDot
	NoBorder
)

var borderNames = [...]string{"solid", "dash", "dot", "dash-dot", "dash-dot-dot", "none"}

func (b BorderStyle) String() string {
	if b < Solid || b > NoBorder {
		return fmt.Sprintf("BorderStyle(%d)", int(b))
	}
	return borderNames[b]
}

// MarshalText encodes the border as its name so it reads well in JSON.
func (b BorderStyle) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (b *BorderStyle) UnmarshalText(text []byte) error {
	parsed, ok := ParseBorderStyle(string(text))
	if !ok {
		return fmt.Errorf("unknown border style %q", text)
	}
	*b = parsed
	return nil
}

// ParseBorderStyle maps a border name back to its value.
func ParseBorderStyle(name string) (BorderStyle, bool) {
	for i, n := range borderNames {
		if n == name {
			return BorderStyle(i), true
		}
	}
	return Solid, false
}

// Font holds the text attributes. Only Text shapes use it when drawing.
type Font struct {
	Family    string `json:"family"`
	Size      int    `json:"size"`
	Bold      bool   `json:"bold,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Strikeout bool   `json:"strikeout,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
}

// DefaultFont is Consolas at 12pt with no decorations.
func DefaultFont() Font {
	return Font{Family: "Consolas", Size: 12}
}

// ParseFont builds a Font from a family, a point size and a space separated
// list of decorations such as "bold italic". Unknown words are ignored.
func ParseFont(family string, size int, decorations string) Font {
	f := Font{Family: family, Size: size}
	for _, word := range strings.Fields(decorations) {
		switch word {
		case "bold":
			f.Bold = true
		case "underline":
			f.Underline = true
		case "strikeout":
			f.Strikeout = true
		case "italic":
			f.Italic = true
		}
	}
	return f
}

// Style is everything about a shape that affects how it is painted but not
// where it is.
type Style struct {
	PenColor  string      `json:"penColor"`
	FillColor string      `json:"fillColor,omitempty"` // empty = unfilled
	PenSize   int         `json:"penSize"`             // 0 = hairline
	Border    BorderStyle `json:"border"`
	Font      Font        `json:"font"`
	Text      string      `json:"text,omitempty"`
}

// DefaultStyle is a black hairline solid outline with no fill.
func DefaultStyle() Style {
	return Style{
		PenColor: "#000000",
		Border:   Solid,
		Font:     DefaultFont(),
	}
}

// SetPenColor changes the outline color. An empty color keeps the current one.
func (s *Style) SetPenColor(color string) {
	if color != "" {
		s.PenColor = color
	}
}
