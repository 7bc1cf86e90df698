package engine

import (
	"errors"
	"fmt"

	"github.com/inamate/scenekit/internal/vec"
)

var (
	ErrUnknownOp     = errors.New("unknown operation type")
	ErrShapeNotFound = errors.New("shape not found")
	ErrInvalidOp     = errors.New("invalid operation")
)

// Operation types.
const (
	OpCreate     = "shape.create"
	OpDelete     = "shape.delete"
	OpMove       = "shape.move"
	OpCoords     = "shape.coords"
	OpStyle      = "shape.style"
	OpVisibility = "shape.visibility"
	OpRaise      = "shape.raise"
	OpLower      = "shape.lower"
	OpTag        = "shape.tag"
	OpUntag      = "shape.untag"
	OpClear      = "scene.clear"
)

// Operation is one scene mutation. Most types select their shapes either by
// ShapeID or, when Tag is set, by tag.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`

	ShapeID int    `json:"shapeId,omitempty"`
	Tag     string `json:"tag,omitempty"`

	// shape.create
	Shape *ShapeSpec `json:"shape,omitempty"`

	// shape.move
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// shape.coords
	Points []vec.Vector2 `json:"points,omitempty"`

	// shape.style
	Style *StyleChange `json:"style,omitempty"`

	// shape.visibility
	Visible *bool `json:"visible,omitempty"`

	// shape.raise / shape.lower
	Target int `json:"target,omitempty"`

	// shape.tag / shape.untag
	Label string `json:"label,omitempty"`
}

// Result is what applying an operation produced.
type Result struct {
	ShapeID int `json:"shapeId,omitempty"` // set by shape.create
}

// Apply executes op against the engine's scene.
func (e *Engine) Apply(op Operation) (Result, error) {
	switch op.Type {
	case OpCreate:
		return e.applyCreate(op)
	case OpDelete:
		return Result{}, selected(op, e.scene.Remove, e.scene.RemoveTag)
	case OpMove:
		return Result{}, selected(op,
			func(id int) bool { return e.scene.Move(id, op.DX, op.DY) },
			func(tag string) bool { return e.scene.MoveTag(tag, op.DX, op.DY) })
	case OpCoords:
		if !e.scene.SetCoords(op.ShapeID, op.Points) {
			return Result{}, fmt.Errorf("%w: cannot set %d points on shape %d", ErrInvalidOp, len(op.Points), op.ShapeID)
		}
		return Result{}, nil
	case OpStyle:
		return Result{}, e.applyStyle(op)
	case OpVisibility:
		if op.Visible == nil {
			return Result{}, fmt.Errorf("%w: visibility requires visible", ErrInvalidOp)
		}
		if *op.Visible {
			return Result{}, selected(op, e.scene.Show, e.scene.ShowTag)
		}
		return Result{}, selected(op, e.scene.Hide, e.scene.HideTag)
	case OpRaise:
		return Result{}, applyOrder(op, e.scene.Raise, e.scene.RaiseTag)
	case OpLower:
		return Result{}, applyOrder(op, e.scene.Lower, e.scene.LowerTag)
	case OpTag:
		if op.Label == "" {
			return Result{}, fmt.Errorf("%w: tag requires label", ErrInvalidOp)
		}
		return Result{}, selected(op,
			func(id int) bool { return e.scene.AddTag(id, op.Label) },
			func(tag string) bool { return e.scene.TagWithTag(tag, op.Label) })
	case OpUntag:
		if !e.scene.DeleteTag(op.ShapeID, op.Label) {
			return Result{}, fmt.Errorf("%w: %d", ErrShapeNotFound, op.ShapeID)
		}
		return Result{}, nil
	case OpClear:
		e.scene.Clear()
		e.selection = nil
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownOp, op.Type)
	}
}

func (e *Engine) applyCreate(op Operation) (Result, error) {
	if op.Shape == nil {
		return Result{}, fmt.Errorf("%w: create requires shape", ErrInvalidOp)
	}
	sh, err := op.Shape.Build()
	if err != nil {
		return Result{}, err
	}
	id, err := e.scene.Insert(sh)
	if err != nil {
		return Result{}, err
	}
	return Result{ShapeID: id}, nil
}

func (e *Engine) applyStyle(op Operation) error {
	c := op.Style
	if c == nil {
		return fmt.Errorf("%w: style requires style", ErrInvalidOp)
	}
	return selected(op,
		func(id int) bool {
			if _, ok := e.scene.Kind(id); !ok {
				return false
			}
			c.applyByID(e.scene, id)
			return true
		},
		func(tag string) bool {
			if len(e.scene.FindWithTag(tag)) == 0 {
				return false
			}
			c.applyByTag(e.scene, tag)
			return true
		})
}

func applyOrder(op Operation, byID func(int, int) bool, byTag func(string, int) bool) error {
	var ok bool
	if op.Tag != "" {
		ok = byTag(op.Tag, op.Target)
	} else {
		ok = byID(op.ShapeID, op.Target)
	}
	if !ok {
		return fmt.Errorf("%w: %s did not change paint order", ErrInvalidOp, op.Type)
	}
	return nil
}

// selected runs byTag when op names a tag and byID otherwise, turning a
// miss into ErrShapeNotFound.
func selected(op Operation, byID func(int) bool, byTag func(string) bool) error {
	if op.Tag != "" {
		if !byTag(op.Tag) {
			return fmt.Errorf("%w: no shape tagged %q", ErrShapeNotFound, op.Tag)
		}
		return nil
	}
	if !byID(op.ShapeID) {
		return fmt.Errorf("%w: %d", ErrShapeNotFound, op.ShapeID)
	}
	return nil
}
