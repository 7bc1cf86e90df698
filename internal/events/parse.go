package events

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBinding = errors.New("invalid event binding")

// Pseudo key names produced by ParseBinding for bindings that do not name a
// keyboard key.
const (
	keyLeftButton   = "<1>"
	keyMiddleButton = "<2>"
	keyWheel        = "<3>"
	keyHover        = "<hover>"
	keyTimer        = "<timer>"
)

// ParseBinding turns a binding string such as "<Ctrl-Shift-Q>" or
// "<Mouse-1>" into an event kind and the lower-cased key name the binding
// refers to. Matching is case-insensitive and modifiers may be written in
// either order: "<Shift-Ctrl-Q>" is "<Ctrl-Shift-Q>", "<Mouse-Alt-1>" is
// "<Alt-Mouse-1>".
//
// Recognized forms: <Mouse-1>, <Mouse-2>, <Ctrl-Mouse-1>, <Alt-Mouse-1>,
// <Wheel-Roll>, <Wheel-Click>, <Hover>, <Timer>, <Key-X>, <Ctrl-X>,
// <Ctrl-Shift-X>, <Alt-X>, <Alt-Shift-X>.
func ParseBinding(binding string) (Kind, string, error) {
	if len(binding) < 2 || binding[0] != '<' || binding[len(binding)-1] != '>' {
		return 0, "", fmt.Errorf("%w: %q is not enclosed in <>", ErrInvalidBinding, binding)
	}
	tokens := strings.Split(strings.ToLower(binding[1:len(binding)-1]), "-")
	if len(tokens) > 3 {
		return 0, "", fmt.Errorf("%w: %q has more than three parts", ErrInvalidBinding, binding)
	}
	var parts [3]string
	copy(parts[:], tokens)
	first, second, third := parts[0], parts[1], parts[2]

	if (second == "ctrl" && (first == "shift" || first == "mouse")) || second == "alt" {
		first, second = second, first
	}

	switch {
	case first == "timer":
		return Timer, keyTimer, nil
	case first == "hover":
		return Hover, keyHover, nil
	case first == "ctrl":
		switch {
		case second == "mouse" && third == "1":
			return CtrlClick, keyLeftButton, nil
		case second == "shift":
			return CtrlShiftKey, third, nil
		}
		return CtrlKey, second, nil
	case first == "alt":
		switch {
		case second == "mouse" && third == "1":
			return AltClick, keyLeftButton, nil
		case second == "shift":
			return AltShiftKey, third, nil
		}
		return AltKey, second, nil
	case third != "":
		// only modified bindings have three parts
	case first == "mouse" && second == "1":
		return Click, keyLeftButton, nil
	case first == "mouse" && second == "2":
		return RightClick, keyMiddleButton, nil
	case first == "wheel" && second == "roll":
		return Wheel, keyWheel, nil
	case first == "wheel" && second == "click":
		return WheelClick, keyWheel, nil
	case first == "key":
		return Key, second, nil
	}
	return 0, "", fmt.Errorf("%w: %q", ErrInvalidBinding, binding)
}
