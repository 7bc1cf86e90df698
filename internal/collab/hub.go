package collab

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/inamate/scenekit/internal/engine"
	"github.com/inamate/scenekit/internal/scene"
	"github.com/inamate/scenekit/internal/typeid"
)

type Room struct {
	sceneID  string
	state    *SceneState
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
}

func NewRoom(sceneID string, state *SceneState) *Room {
	return &Room{
		sceneID:  sceneID,
		state:    state,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room       // sceneID -> room with connected clients
	scenes     map[string]*SceneState // sceneID -> scene, kept after the room empties
	maxShapes  int
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a hub whose scenes hold at most maxShapes shapes each.
func NewHub(maxShapes int) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		scenes:     make(map[string]*SceneState),
		maxShapes:  maxShapes,
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Scene returns the scene with the given id, creating it on first use.
func (h *Hub) Scene(sceneID string) *SceneState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sceneLocked(sceneID)
}

// LookupScene returns an existing scene without creating one.
func (h *Hub) LookupScene(sceneID string) (*SceneState, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ss, ok := h.scenes[sceneID]
	return ss, ok
}

func (h *Hub) sceneLocked(sceneID string) *SceneState {
	ss, ok := h.scenes[sceneID]
	if ok {
		return ss
	}
	// dropped while clients are still connected
	if room, live := h.rooms[sceneID]; live {
		return room.state
	}
	ss = NewSceneState(h.maxShapes, slog.Default().With("scene", sceneID))
	h.scenes[sceneID] = ss
	return ss
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		room = NewRoom(client.SceneID, h.sceneLocked(client.SceneID))
		h.rooms[client.SceneID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, "", WelcomePayload{
		ClientID: client.ClientID,
		SceneID:  client.SceneID,
	}))
	client.Send(newMessage(TypeSceneSync, "", room.state.Sync()))

	// Send current presence state to new client
	stateMsg := room.presence.StateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinMsg := newMessage(TypePresenceJoin, client.UserID, PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	h.broadcastToRoom(client.SceneID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SceneID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Remove(client.UserID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.SceneID)
	}
	h.mu.Unlock()

	// Broadcast leave to remaining clients
	leaveMsg := newMessage(TypePresenceLeave, client.UserID, PresenceLeavePayload{
		UserID: client.UserID,
	})
	h.broadcastToRoom(client.SceneID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "scene", client.SceneID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeInputEvent:
		h.handleInputEvent(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		sender.Send(newMessage(TypeError, "", ErrorPayload{Message: "unknown message type " + msg.Type}))
	}
}

func (h *Hub) room(sceneID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[sceneID]
	return room, ok
}

// HoveringOver returns the connected users whose cursor is over shapeID.
func (h *Hub) HoveringOver(sceneID string, shapeID int) []string {
	room, ok := h.room(sceneID)
	if !ok {
		return nil
	}
	return room.presence.HoveringOver(shapeID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	room, ok := h.room(sender.SceneID)
	if !ok {
		return
	}

	presence.Hover = 0
	if presence.Cursor != nil {
		presence.Hover = room.state.HitTest(presence.Cursor.X, presence.Cursor.Y)
	}
	room.presence.Update(sender.UserID, &presence)

	// Broadcast to other clients in room
	outMsg := newMessage(TypePresenceUpdate, sender.UserID, presence)
	h.broadcastToRoom(sender.SceneID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		sender.Send(newMessage(TypeOpNack, "", OperationNackPayload{Reason: "invalid operation payload"}))
		return
	}

	ack, err := h.Submit(sender.SceneID, sender.UserID, sender.ClientID, submit.Operation)
	if err != nil {
		slog.Debug("operation rejected", "type", submit.Operation.Type, "user", sender.UserID, "error", err)
		sender.Send(newMessage(TypeOpNack, "", OperationNackPayload{
			OperationID: ack.OperationID,
			Reason:      NackReason(err),
		}))
		return
	}

	out := newMessage(TypeOpAck, "", ack)
	out.Seq = ack.ServerSeq
	sender.Send(out)
}

// Submit applies op to the scene on behalf of userID and broadcasts it to
// every client in the room except excludeClientID. The returned ack carries
// the operation id even when err is non-nil.
func (h *Hub) Submit(sceneID, userID, excludeClientID string, op Operation) (OperationAckPayload, error) {
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}

	seq, shapeID, err := h.Scene(sceneID).ApplyOperation(op)
	if err != nil {
		return OperationAckPayload{OperationID: op.ID}, err
	}

	out := newMessage(TypeOpBroadcast, userID, OperationBroadcastPayload{
		Operation: op,
		ShapeID:   shapeID,
		UserID:    userID,
		ServerSeq: seq,
	})
	out.Seq = seq
	h.broadcastToRoom(sceneID, out, excludeClientID)

	return OperationAckPayload{
		OperationID:     op.ID,
		ShapeID:         shapeID,
		ServerSeq:       seq,
		ServerTimestamp: GetServerTimestamp(),
	}, nil
}

// DropScene forgets a scene. While clients are still connected, Scene and
// Submit keep resolving to their room's copy; it is gone once they leave.
func (h *Hub) DropScene(sceneID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.scenes, sceneID)
}

// NackReason maps engine errors onto short machine-readable reasons.
func NackReason(err error) string {
	switch {
	case errors.Is(err, scene.ErrDuplicateShape):
		return "duplicate"
	case errors.Is(err, scene.ErrSceneFull):
		return "scene_full"
	case errors.Is(err, engine.ErrShapeNotFound):
		return "not_found"
	case errors.Is(err, engine.ErrUnknownOp):
		return "unknown_op"
	}
	return "invalid"
}

func (h *Hub) handleInputEvent(sender *Client, msg *Message) {
	var in InputEventPayload
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		slog.Warn("invalid input payload", "error", err)
		return
	}
	room, ok := h.room(sender.SceneID)
	if !ok {
		return
	}
	sender.Send(newMessage(TypeInputHits, "", room.state.Route(in.Event)))
}

func (h *Hub) broadcastToRoom(sceneID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[sceneID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func newMessage(msgType, userID string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "type", msgType, "error", err)
		data = []byte("null")
	}
	return &Message{Type: msgType, UserID: userID, Payload: data}
}
