package collab

import (
	"encoding/json"

	"github.com/inamate/scenekit/internal/engine"
	"github.com/inamate/scenekit/internal/events"
	"github.com/inamate/scenekit/internal/scene"
)

type Message struct {
	Type     string          `json:"type"`
	SceneID  string          `json:"sceneId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []int      `json:"selection,omitempty"`
	Hover       int        `json:"hover,omitempty"` // topmost shape under the cursor, filled in by the server
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Scene sync
	TypeSceneSync = "scene.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"

	// Pointer routing
	TypeInputEvent = "input.event"
	TypeInputHits  = "input.hits"
)

// Operation is a scene mutation as submitted by a client.
type Operation = engine.Operation

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	SceneID  string `json:"sceneId"`
}

// SceneSyncPayload carries the full paintable state of a scene.
type SceneSyncPayload struct {
	ServerSeq int64               `json:"serverSeq"`
	Commands  []scene.DrawCommand `json:"commands"`
}

// OperationSubmitPayload is the payload for op.submit messages
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ShapeID         int    `json:"shapeId,omitempty"` // assigned by shape.create
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	ShapeID   int       `json:"shapeId,omitempty"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// InputEventPayload is a pointer event to route against the room's scene.
type InputEventPayload struct {
	Event events.Event `json:"event"`
}

// InputHitsPayload answers an input.event with the shapes it landed on.
type InputHitsPayload struct {
	Event events.Event `json:"event"`
	Hits  []int        `json:"hits"`
	Top   int          `json:"top,omitempty"` // topmost visible hit
}

type ErrorPayload struct {
	Message string `json:"message"`
}
