package collab

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/scenekit/internal/engine"
	"github.com/inamate/scenekit/internal/events"
	"github.com/inamate/scenekit/internal/typeid"
)

// SceneState holds the authoritative scene for a room. Every read and
// write goes through mu, which makes the room the scene's single writer.
type SceneState struct {
	mu        sync.Mutex
	engine    *engine.Engine
	serverSeq int64
	opLog     []Operation
}

// NewSceneState creates an empty scene capped at maxShapes (0 = no cap).
func NewSceneState(maxShapes int, logger *slog.Logger) *SceneState {
	return &SceneState{
		engine: engine.NewEngine(logger, maxShapes),
		opLog:  make([]Operation, 0),
	}
}

// ApplyOperation applies op and returns the server sequence and the id of
// any shape it created.
func (ss *SceneState) ApplyOperation(op Operation) (int64, int, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if op.ID == "" {
		op.ID = typeid.NewOpID()
	} else if err := typeid.Validate(op.ID, typeid.PrefixOp); err != nil {
		return 0, 0, fmt.Errorf("operation id: %w", err)
	}

	res, err := ss.engine.Apply(op)
	if err != nil {
		return 0, 0, err
	}

	ss.serverSeq++
	ss.opLog = append(ss.opLog, op)

	return ss.serverSeq, res.ShapeID, nil
}

// Sync returns the draw list together with the sequence it reflects.
func (ss *SceneState) Sync() SceneSyncPayload {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return SceneSyncPayload{
		ServerSeq: ss.serverSeq,
		Commands:  ss.engine.Scene().DrawList(),
	}
}

// Route resolves a pointer event to the shapes it lands on.
func (ss *SceneState) Route(ev events.Event) InputHitsPayload {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	out := InputHitsPayload{Event: ev, Hits: ss.engine.Hits(ev)}
	if ev.Position != nil {
		out.Top = ss.engine.HitTest(ev.Position.X, ev.Position.Y)
	}
	return out
}

// HitTest returns the topmost visible shape at (x, y), or 0.
func (ss *SceneState) HitTest(x, y float64) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.engine.HitTest(x, y)
}

// Bounds returns the bounding box of the shapes carrying any of tags.
func (ss *SceneState) Bounds(tags []string) engine.Bounds {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return engine.BoundsOf(ss.engine.Scene().BoundingBoxOfTags(tags))
}

// OpCount returns how many operations have been applied.
func (ss *SceneState) OpCount() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.opLog)
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
