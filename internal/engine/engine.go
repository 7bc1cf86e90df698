package engine

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/inamate/scenekit/internal/events"
	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/scene"
	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/vec"
)

// Engine owns one scene, the event router over it, and the local selection.
// It takes commands from a frontend and answers queries, mostly as JSON
// strings so the browser host can pass them straight through.
type Engine struct {
	scene     *scene.Scene
	router    *events.Router
	selection []int
	logger    *slog.Logger
}

// NewEngine creates an engine with an empty scene. maxShapes 0 means no cap.
func NewEngine(logger *slog.Logger, maxShapes int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	s := scene.New(scene.WithLogger(logger), scene.WithMaxShapes(maxShapes))
	return &Engine{
		scene:  s,
		router: events.NewRouter(s, events.DefaultKeyMap(), logger),
		logger: logger,
	}
}

func (e *Engine) Scene() *scene.Scene {
	return e.scene
}

func (e *Engine) Router() *events.Router {
	return e.router
}

// --- Commands (frontend → engine) ---

type applyResponse struct {
	OK      bool   `json:"ok"`
	ShapeID int    `json:"shapeId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ApplyJSON decodes and applies one Operation, reporting the outcome as
// JSON.
func (e *Engine) ApplyJSON(data string) string {
	var op Operation
	if err := json.Unmarshal([]byte(data), &op); err != nil {
		return toJSON(applyResponse{Error: "invalid operation: " + err.Error()})
	}
	res, err := e.Apply(op)
	if err != nil {
		e.logger.Debug("apply operation", "type", op.Type, "error", err)
		return toJSON(applyResponse{Error: err.Error()})
	}
	return toJSON(applyResponse{OK: true, ShapeID: res.ShapeID})
}

// SetSelection replaces the selection, dropping ids not in the scene.
func (e *Engine) SetSelection(ids []int) {
	e.selection = slices.DeleteFunc(slices.Clone(ids), func(id int) bool {
		_, ok := e.scene.Kind(id)
		return !ok
	})
}

// Dispatch routes an input event to the router's bindings.
func (e *Engine) Dispatch(ev events.Event) bool {
	return e.router.Dispatch(ev)
}

// --- Queries (frontend ← engine) ---

// Render returns the draw list as JSON.
func (e *Engine) Render() string {
	result, err := scene.DrawCommandsToJSON(e.scene.DrawList())
	if err != nil {
		e.logger.Error("render draw list", "error", err)
	}
	return result
}

// HitTest returns the topmost visible shape at (x, y), or 0.
func (e *Engine) HitTest(x, y float64) int {
	id, _ := e.scene.HitTest(x, y)
	return id
}

// Hits lists every shape a pointer event lands on, in paint order.
func (e *Engine) Hits(ev events.Event) []int {
	return e.router.Hits(ev, events.TagTarget(shape.AllTag))
}

// Selection returns the selected ids that still exist.
func (e *Engine) Selection() []int {
	e.SetSelection(e.selection)
	return slices.Clone(e.selection)
}

func (e *Engine) GetSelection() string {
	return toJSON(e.Selection())
}

// GetSelectionBounds returns the union of the selection's boxes as JSON.
func (e *Engine) GetSelectionBounds() string {
	return toJSON(BoundsOf(e.scene.BoundingBoxOf(e.Selection())))
}

// GetShape returns the shape's coordinates, tags and style as JSON, or
// "{}" when it is absent.
func (e *Engine) GetShape(id int) string {
	sh, ok := e.scene.Get(id)
	if !ok {
		return "{}"
	}
	return toJSON(ShapeInfo{
		ID:      sh.ID,
		Kind:    sh.Kind,
		Coords:  sh.Coords(),
		Tags:    sh.Tags,
		Visible: sh.Visible,
		Style:   sh.Style,
		Bounds:  BoundsOf(sh.BoundingBox()),
	})
}

// Bounds is a JSON-safe box: geom.Empty() has infinite corners, which JSON
// cannot carry, so it is reported as Empty instead.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Empty  bool    `json:"empty,omitempty"`
}

func BoundsOf(b geom.Box) Bounds {
	if b.IsEmpty() {
		return Bounds{Empty: true}
	}
	return Bounds{X: b.TopLeft.X, Y: b.TopLeft.Y, Width: b.Width(), Height: b.Height()}
}

type ShapeInfo struct {
	ID      int           `json:"id"`
	Kind    shape.Kind    `json:"kind"`
	Coords  []vec.Vector2 `json:"coords"`
	Tags    []string      `json:"tags"`
	Visible bool          `json:"visible"`
	Style   shape.Style   `json:"style"`
	Bounds  Bounds        `json:"bounds"`
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal engine response", "error", err)
		return "{}"
	}
	return string(data)
}
