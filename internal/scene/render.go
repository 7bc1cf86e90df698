package scene

import (
	"encoding/json"
	"math"

	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/vec"
)

// PathCommand is a single path segment in Canvas2D terms:
// ["M", x, y], ["L", x, y], ["E", cx, cy, rx, ry, start, end, anticlockwise], ["Z"].
// Angles in "E" are radians measured the way Canvas2D measures them
// (clockwise on screen).
type PathCommand []any

// DrawCommand is one shape ready to paint. The frontend walks the list in
// order and paints each entry over the previous ones.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "path" or "text"
	ShapeID     int           `json:"shapeId"`               // For hit correlation
	Kind        shape.Kind    `json:"kind"`                  // Variant that produced the command
	Path        []PathCommand `json:"path,omitempty"`        // Outline for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color, empty = unfilled
	Stroke      string        `json:"stroke,omitempty"`      // Outline color
	StrokeWidth int           `json:"strokeWidth"`           // 0 = hairline
	Border      string        `json:"border,omitempty"`      // Dash pattern name
	Text        string        `json:"text,omitempty"`        // Payload for "text" ops
	Font        *shape.Font   `json:"font,omitempty"`        // Font for "text" ops
	Position    *vec.Vector2  `json:"position,omitempty"`    // Top-left for "text" ops
	Width       float64       `json:"width,omitempty"`       // Text wrap width, 0 = unbounded
}

// DrawList compiles the visible shapes, bottom to top. Hidden shapes keep
// their slot in the scene but produce no command.
func (s *Scene) DrawList() []DrawCommand {
	commands := make([]DrawCommand, 0, len(s.order))
	for _, id := range s.order {
		sh := s.shapes[id]
		if !sh.Visible {
			continue
		}
		commands = append(commands, compileShape(sh))
	}
	return commands
}

func compileShape(sh *shape.Shape) DrawCommand {
	cmd := DrawCommand{
		Op:          "path",
		ShapeID:     sh.ID,
		Kind:        sh.Kind,
		Fill:        sh.Style.FillColor,
		Stroke:      sh.Style.PenColor,
		StrokeWidth: sh.Style.PenSize,
		Border:      sh.Style.Border.String(),
	}

	switch sh.Kind {
	case shape.Rectangle:
		corners := sh.BoundingBox().Corners()
		cmd.Path = polyPath(corners[:], true)
	case shape.Ellipse, shape.Circle:
		cmd.Path = []PathCommand{ellipseCommand(sh, 0, 360)}
	case shape.Polygon:
		cmd.Path = polyPath(sh.Vertices, true)
	case shape.Polyline:
		cmd.Path = polyPath(sh.Vertices, false)
		cmd.Fill = ""
	case shape.Sector:
		cmd.Path = sectorPath(sh)
		if sh.Arc == shape.Arc {
			cmd.Fill = ""
		}
	case shape.Text:
		pos := sh.TopLeft
		font := sh.Style.Font
		cmd.Op = "text"
		cmd.Text = sh.Style.Text
		cmd.Font = &font
		cmd.Position = &pos
		cmd.Width = sh.Width
	}
	return cmd
}

func polyPath(points []vec.Vector2, closed bool) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(points)+1)
	path = append(path, PathCommand{"M", points[0].X, points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

// ellipseCommand emits an elliptical arc from startDeg sweeping sweepDeg
// counter-clockwise on screen. Canvas2D angles grow clockwise, hence the
// negation and the anticlockwise flag.
func ellipseCommand(sh *shape.Shape, startDeg, sweepDeg float64) PathCommand {
	box := sh.BoundingBox()
	c := box.Center()
	start := -vec.ToRadians(startDeg)
	end := -vec.ToRadians(startDeg + sweepDeg)
	if sweepDeg >= 360 {
		end = start - 2*math.Pi
	}
	return PathCommand{"E", c.X, c.Y, box.Width() / 2, box.Height() / 2, start, end, true}
}

func sectorPath(sh *shape.Shape) []PathCommand {
	arc := ellipseCommand(sh, sh.StartAngle, sh.SweepAngle)
	switch sh.Arc {
	case shape.Pie:
		c := sh.BoundingBox().Center()
		return []PathCommand{{"M", c.X, c.Y}, arc, {"Z"}}
	case shape.Chord:
		return []PathCommand{arc, {"Z"}}
	}
	return []PathCommand{arc}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
