// Package events routes normalized input events to handlers bound to
// shapes of a scene.
package events

import (
	"fmt"

	"github.com/inamate/scenekit/internal/vec"
)

// Kind classifies an input event. The windowing layer resolves raw device
// input, modifier state included, into one of these before dispatch.
type Kind int

const (
	Click Kind = iota
	CtrlClick
	AltClick
	RightClick
	WheelClick
	Hover
	Wheel
	Key
	CtrlKey
	CtrlShiftKey
	AltKey
	AltShiftKey
	Timer
)

var kindNames = [...]string{
	Click:        "click",
	CtrlClick:    "ctrl-click",
	AltClick:     "alt-click",
	RightClick:   "right-click",
	WheelClick:   "wheel-click",
	Hover:        "hover",
	Wheel:        "wheel",
	Key:          "key",
	CtrlKey:      "ctrl-key",
	CtrlShiftKey: "ctrl-shift-key",
	AltKey:       "alt-key",
	AltShiftKey:  "alt-shift-key",
	Timer:        "timer",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown event kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// IsPointer reports whether events of this kind carry a position and are
// routed by containment.
func (k Kind) IsPointer() bool {
	switch k {
	case Click, CtrlClick, AltClick, RightClick, WheelClick, Hover, Wheel:
		return true
	}
	return false
}

// Modifiers records which modifier keys were held. It is informational;
// routing uses Kind only.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// Event is one normalized input event.
type Event struct {
	Kind      Kind         `json:"kind"`
	Position  *vec.Vector2 `json:"position,omitempty"` // nil for key and timer events
	Delta     int          `json:"delta,omitempty"`    // wheel rotation
	Key       int          `json:"key,omitempty"`      // key code, or timer id for Timer
	Modifiers Modifiers    `json:"modifiers,omitempty"`
}

// PointerEvent builds a pointer event at (x, y).
func PointerEvent(kind Kind, x, y float64) Event {
	p := vec.New(x, y)
	return Event{Kind: kind, Position: &p}
}

// KeyEvent builds a key event for code.
func KeyEvent(kind Kind, code int) Event {
	return Event{Kind: kind, Key: code}
}
