package input

import "fmt"

// Intent is the semantic action a key event maps to
type Intent uint8

const (
	IntentNone Intent = iota

	// Responses
	IntentSeen    // Space
	IntentNotSeen // x, X
	IntentUndo    // u, Backspace

	// Session control
	IntentPause    // p, timer mode only
	IntentMute     // m
	IntentSnapshot // s
	IntentQuit     // q, Esc, Ctrl+C
)

// String returns the action name used in keymap files
func (i Intent) String() string {
	for name, v := range actionRegistry {
		if v == i {
			return name
		}
	}
	return fmt.Sprintf("intent(%d)", uint8(i))
}

// IsResponse reports whether the intent answers the current probe
func (i Intent) IsResponse() bool {
	return i == IntentSeen || i == IntentNotSeen
}
