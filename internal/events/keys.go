package events

import (
	"fmt"
	"strings"
)

// KeyMap resolves lower-case key names from binding strings to the key
// codes the windowing layer reports in Event.Key.
type KeyMap map[string]int

// Lookup is case-insensitive.
func (m KeyMap) Lookup(name string) (int, bool) {
	code, ok := m[strings.ToLower(name)]
	return code, ok && code != 0
}

// Windows virtual-key codes.
const (
	vkLButton = 0x01
	vkRButton = 0x02
	vkMButton = 0x04
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkEscape  = 0x1B
	vkSpace   = 0x20
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkF1      = 0x70
)

// DefaultKeyMap returns a fresh copy of the Windows virtual-key table:
// digits, letters, F1-F24, navigation keys and the mouse pseudo keys.
func DefaultKeyMap() KeyMap {
	m := KeyMap{
		keyHover:        1,
		keyTimer:        1,
		keyLeftButton:   vkLButton,
		keyMiddleButton: vkMButton,
		keyWheel:        vkRButton,
		"backspace":     vkBack,
		"tab":           vkTab,
		"return":        vkReturn,
		"esc":           vkEscape,
		"escape":        vkEscape,
		"space":         vkSpace,
		"spacebar":      vkSpace,
		"spaceup":       vkPrior,
		"spacedown":     vkNext,
		"home":          vkHome,
		"end":           vkEnd,
		"left":          vkLeft,
		"right":         vkRight,
		"up":            vkUp,
		"down":          vkDown,
	}
	for c := '0'; c <= '9'; c++ {
		m[string(c)] = int(c)
	}
	for c := 'a'; c <= 'z'; c++ {
		m[string(c)] = int(c - 'a' + 'A')
	}
	for n := 1; n <= 24; n++ {
		m[fmt.Sprintf("f%d", n)] = vkF1 + n - 1
	}
	return m
}
