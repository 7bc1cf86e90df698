package engine

import (
	"errors"
	"fmt"

	"github.com/inamate/scenekit/internal/scene"
	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/vec"
)

var ErrInvalidShape = errors.New("invalid shape")

// ShapeSpec is the wire form of a new shape.
//
//	rectangle, ellipse: points = two opposite corners
//	circle:             points = [center], radius
//	polygon, polyline:  points = vertices
//	sector:             points = two corners, start, sweep, arc
//	text:               points = [top-left], text, width
type ShapeSpec struct {
	Kind   shape.Kind    `json:"kind"`
	Points []vec.Vector2 `json:"points"`
	Radius float64       `json:"radius,omitempty"`
	Start  float64       `json:"start,omitempty"`
	Sweep  float64       `json:"sweep,omitempty"`
	Arc    shape.ArcKind `json:"arc,omitempty"`
	Text   string        `json:"text,omitempty"`
	Width  float64       `json:"width,omitempty"`
	Style  *StyleChange  `json:"style,omitempty"`
	Tags   []string      `json:"tags,omitempty"`
}

// StyleChange lists style fields to overwrite; nil fields are left alone.
type StyleChange struct {
	Fill    *string            `json:"fill,omitempty"`
	Pen     *string            `json:"pen,omitempty"`
	PenSize *int               `json:"penSize,omitempty"`
	Border  *shape.BorderStyle `json:"border,omitempty"`
	Font    *FontChange        `json:"font,omitempty"`
	Text    *string            `json:"text,omitempty"`
}

type FontChange struct {
	Family      string `json:"family"`
	Size        int    `json:"size"`
	Decorations string `json:"decorations,omitempty"` // "bold italic"
}

func (sp ShapeSpec) needPoints(n int) error {
	if len(sp.Points) != n {
		return fmt.Errorf("%w: %v takes %d points, got %d", ErrInvalidShape, sp.Kind, n, len(sp.Points))
	}
	return nil
}

// Build constructs the shape described by sp.
func (sp ShapeSpec) Build() (*shape.Shape, error) {
	var sh *shape.Shape
	switch sp.Kind {
	case shape.Rectangle, shape.Ellipse, shape.Sector:
		if err := sp.needPoints(2); err != nil {
			return nil, err
		}
		a, b := sp.Points[0], sp.Points[1]
		switch sp.Kind {
		case shape.Rectangle:
			sh = shape.NewRectangle(a, b)
		case shape.Ellipse:
			sh = shape.NewEllipse(a, b)
		default:
			sh = shape.NewSector(a, b, sp.Start, sp.Sweep, sp.Arc)
		}
	case shape.Circle:
		if err := sp.needPoints(1); err != nil {
			return nil, err
		}
		sh = shape.NewCircle(sp.Points[0], sp.Radius)
	case shape.Polygon, shape.Polyline:
		if len(sp.Points) == 0 {
			return nil, fmt.Errorf("%w: %v needs at least one vertex", ErrInvalidShape, sp.Kind)
		}
		if sp.Kind == shape.Polygon {
			sh = shape.NewPolygon(sp.Points)
		} else {
			sh = shape.NewPolyline(sp.Points)
		}
	case shape.Text:
		if err := sp.needPoints(1); err != nil {
			return nil, err
		}
		sh = shape.NewText(sp.Points[0], sp.Text, sp.Width)
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrInvalidShape, sp.Kind)
	}

	for _, p := range sp.Points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: point %v is not finite", ErrInvalidShape, p)
		}
	}
	if sp.Style != nil {
		sp.Style.apply(sh)
	}
	for _, tag := range sp.Tags {
		sh.AddTag(tag)
	}
	return sh, nil
}

func (c *StyleChange) apply(sh *shape.Shape) {
	if c.Fill != nil {
		sh.Style.FillColor = *c.Fill
	}
	if c.Pen != nil {
		sh.Style.SetPenColor(*c.Pen)
	}
	if c.PenSize != nil {
		sh.Style.PenSize = max(*c.PenSize, 0)
	}
	if c.Border != nil {
		sh.Style.Border = *c.Border
	}
	if c.Font != nil {
		sh.Style.Font = shape.ParseFont(c.Font.Family, c.Font.Size, c.Font.Decorations)
	}
	if c.Text != nil {
		sh.Style.Text = *c.Text
	}
}

func (c *StyleChange) applyByID(s *scene.Scene, id int) {
	if c.Fill != nil {
		s.SetFill(id, *c.Fill)
	}
	if c.Pen != nil {
		s.SetPen(id, *c.Pen)
	}
	if c.PenSize != nil {
		s.SetPenSize(id, *c.PenSize)
	}
	if c.Border != nil {
		s.SetBorder(id, *c.Border)
	}
	if c.Font != nil {
		s.SetFont(id, c.Font.Family, c.Font.Size, c.Font.Decorations)
	}
	if c.Text != nil {
		s.SetText(id, *c.Text)
	}
}

func (c *StyleChange) applyByTag(s *scene.Scene, tag string) {
	if c.Fill != nil {
		s.SetFillTag(tag, *c.Fill)
	}
	if c.Pen != nil {
		s.SetPenTag(tag, *c.Pen)
	}
	if c.PenSize != nil {
		s.SetPenSizeTag(tag, *c.PenSize)
	}
	if c.Border != nil {
		s.SetBorderTag(tag, *c.Border)
	}
	if c.Font != nil {
		s.SetFontTag(tag, c.Font.Family, c.Font.Size, c.Font.Decorations)
	}
	if c.Text != nil {
		s.SetTextTag(tag, *c.Text)
	}
}
