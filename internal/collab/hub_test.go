package collab

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/scenekit/internal/engine"
	"github.com/inamate/scenekit/internal/events"
	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/typeid"
	"github.com/inamate/scenekit/internal/vec"
)

// join registers a client without a websocket and drains the greeting.
func join(t *testing.T, h *Hub, userID, sceneID string) *Client {
	t.Helper()
	c := NewClient(h, nil, userID, userID+" name", sceneID, typeid.NewSessionID())
	h.addClient(c)
	assert.Equal(t, TypeWelcome, next(t, c).Type)
	assert.Equal(t, TypeSceneSync, next(t, c).Type)
	assert.Equal(t, TypePresenceState, next(t, c).Type)
	return c
}

func next(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatalf("no message queued for %s", c.UserID)
		return Message{}
	}
}

func quiet(t *testing.T, c *Client) {
	t.Helper()
	assert.Empty(t, c.send, "unexpected message for %s", c.UserID)
}

func submit(t *testing.T, h *Hub, c *Client, op Operation) {
	t.Helper()
	payload, err := json.Marshal(OperationSubmitPayload{Operation: op})
	require.NoError(t, err)
	h.handleMessage(c, &Message{Type: TypeOpSubmit, Payload: payload})
}

func createRect(id string) Operation {
	return Operation{
		ID:   id,
		Type: engine.OpCreate,
		Shape: &engine.ShapeSpec{
			Kind:   shape.Rectangle,
			Points: []vec.Vector2{{X: 0, Y: 0}, {X: 100, Y: 100}},
		},
	}
}

func TestJoinBroadcastsPresence(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	bob := join(t, h, "bob", "scene_a")

	msg := next(t, alice)
	assert.Equal(t, TypePresenceJoin, msg.Type)
	assert.Equal(t, "bob", msg.UserID)
	quiet(t, bob)

	h.removeClient(bob)
	assert.Equal(t, TypePresenceLeave, next(t, alice).Type)
}

func TestOperationAckAndBroadcast(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	bob := join(t, h, "bob", "scene_a")
	next(t, alice) // bob joined

	opID := typeid.NewOpID()
	submit(t, h, alice, createRect(opID))

	ack := next(t, alice)
	require.Equal(t, TypeOpAck, ack.Type)
	var ackPayload OperationAckPayload
	require.NoError(t, json.Unmarshal(ack.Payload, &ackPayload))
	assert.Equal(t, opID, ackPayload.OperationID)
	assert.Equal(t, 1, ackPayload.ShapeID)
	assert.Equal(t, int64(1), ackPayload.ServerSeq)

	out := next(t, bob)
	require.Equal(t, TypeOpBroadcast, out.Type)
	var broadcast OperationBroadcastPayload
	require.NoError(t, json.Unmarshal(out.Payload, &broadcast))
	assert.Equal(t, "alice", broadcast.UserID)
	assert.Equal(t, engine.OpCreate, broadcast.Operation.Type)
	assert.Equal(t, 1, broadcast.ShapeID)
	quiet(t, alice)

	// same geometry again
	submit(t, h, alice, createRect(typeid.NewOpID()))
	nack := next(t, alice)
	require.Equal(t, TypeOpNack, nack.Type)
	var nackPayload OperationNackPayload
	require.NoError(t, json.Unmarshal(nack.Payload, &nackPayload))
	assert.Equal(t, "duplicate", nackPayload.Reason)
	quiet(t, bob)

	assert.Equal(t, 1, h.Scene("scene_a").OpCount())
}

func TestOperationNackReasons(t *testing.T) {
	h := NewHub(1)
	alice := join(t, h, "alice", "scene_a")

	submit(t, h, alice, Operation{ID: "bogus", Type: engine.OpDelete, ShapeID: 1})
	var nack OperationNackPayload
	require.NoError(t, json.Unmarshal(next(t, alice).Payload, &nack))
	assert.Equal(t, "invalid", nack.Reason, "operation ids must be op typeids")

	submit(t, h, alice, Operation{Type: engine.OpDelete, ShapeID: 7})
	require.NoError(t, json.Unmarshal(next(t, alice).Payload, &nack))
	assert.Equal(t, "not_found", nack.Reason)

	submit(t, h, alice, Operation{Type: "shape.teleport"})
	require.NoError(t, json.Unmarshal(next(t, alice).Payload, &nack))
	assert.Equal(t, "unknown_op", nack.Reason)

	submit(t, h, alice, createRect(""))
	assert.Equal(t, TypeOpAck, next(t, alice).Type)
	op := createRect("")
	op.Shape.Points[1] = vec.New(50, 50)
	submit(t, h, alice, op)
	require.NoError(t, json.Unmarshal(next(t, alice).Payload, &nack))
	assert.Equal(t, "scene_full", nack.Reason)
}

func TestSceneOutlivesRoom(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	submit(t, h, alice, createRect(""))
	next(t, alice)
	h.removeClient(alice)

	ss, ok := h.LookupScene("scene_a")
	require.True(t, ok)
	sync := ss.Sync()
	assert.Equal(t, int64(1), sync.ServerSeq)
	assert.Len(t, sync.Commands, 1)

	_, ok = h.LookupScene("scene_b")
	assert.False(t, ok)
}

func TestInputEventRouting(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	submit(t, h, alice, createRect(""))
	next(t, alice)

	payload, err := json.Marshal(InputEventPayload{Event: events.PointerEvent(events.Click, 50, 50)})
	require.NoError(t, err)
	h.handleMessage(alice, &Message{Type: TypeInputEvent, Payload: payload})

	msg := next(t, alice)
	require.Equal(t, TypeInputHits, msg.Type)
	var hits InputHitsPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &hits))
	assert.Equal(t, []int{1}, hits.Hits)
	assert.Equal(t, 1, hits.Top)
	assert.Equal(t, events.Click, hits.Event.Kind)
}

func TestPresenceHover(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	bob := join(t, h, "bob", "scene_a")
	next(t, alice)
	submit(t, h, alice, createRect(""))
	next(t, alice)
	next(t, bob)

	payload, err := json.Marshal(PresencePayload{Cursor: &CursorPos{X: 10, Y: 10}, Selection: []int{1}})
	require.NoError(t, err)
	h.handleMessage(bob, &Message{Type: TypePresenceUpdate, Payload: payload})

	msg := next(t, alice)
	require.Equal(t, TypePresenceUpdate, msg.Type)
	var p PresencePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	assert.Equal(t, 1, p.Hover)
	assert.Equal(t, "bob name", p.DisplayName)
	assert.Equal(t, []string{"bob"}, h.HoveringOver("scene_a", 1))
	assert.Empty(t, h.HoveringOver("scene_a", 2))
	assert.Nil(t, h.HoveringOver("scene_x", 1))
}

func TestUnknownMessageType(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	h.handleMessage(alice, &Message{Type: "shout"})
	assert.Equal(t, TypeError, next(t, alice).Type)
}

func TestSubmitWithoutSocket(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")

	ack, err := h.Submit("scene_a", "api-user", "", createRect(""))
	require.NoError(t, err)
	assert.Equal(t, 1, ack.ShapeID)
	assert.NoError(t, typeid.Validate(ack.OperationID, typeid.PrefixOp))

	msg := next(t, alice)
	require.Equal(t, TypeOpBroadcast, msg.Type)
	assert.Equal(t, "api-user", msg.UserID)
	assert.Equal(t, int64(1), msg.Seq)

	ack, err = h.Submit("scene_a", "api-user", "", Operation{Type: engine.OpDelete, ShapeID: 5})
	assert.ErrorIs(t, err, engine.ErrShapeNotFound)
	assert.NotEmpty(t, ack.OperationID)
	quiet(t, alice)

	h.DropScene("scene_a")
	_, ok := h.LookupScene("scene_a")
	assert.False(t, ok)
}

func TestSendAfterLeaveIsDropped(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	bob := join(t, h, "bob", "scene_a")
	next(t, alice)

	// the snapshot broadcastToRoom takes before releasing the lock
	h.mu.RLock()
	targets := []*Client{h.rooms["scene_a"].clients[bob.ClientID]}
	h.mu.RUnlock()

	h.removeClient(bob)
	assert.NotPanics(t, func() {
		for _, c := range targets {
			c.Send(newMessage(TypePresenceUpdate, "alice", PresencePayload{}))
		}
	})
	assert.NotPanics(t, func() { h.removeClient(bob) }, "leaving twice")

	_, open := <-bob.send
	assert.False(t, open)
}

func TestDroppedSceneFollowsLiveRoom(t *testing.T) {
	h := NewHub(0)
	alice := join(t, h, "alice", "scene_a")
	submit(t, h, alice, createRect(""))
	next(t, alice)

	h.DropScene("scene_a")
	op := createRect("")
	op.Shape.Points[1] = vec.New(40, 40)
	ack, err := h.Submit("scene_a", "api-user", "", op)
	require.NoError(t, err)
	assert.Equal(t, 2, ack.ShapeID, "same scene as the room, not a fresh one")
	assert.Equal(t, int64(2), ack.ServerSeq)
	assert.Equal(t, TypeOpBroadcast, next(t, alice).Type)

	h.removeClient(alice)
	assert.Equal(t, 0, h.Scene("scene_a").OpCount(), "gone once the room empties")
}
