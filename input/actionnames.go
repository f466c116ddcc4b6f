package input

import "github.com/gdamore/tcell/v2"

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve TOML action strings to bindings
var actionRegistry = map[string]Intent{
	// Unbind sentinel
	"none": IntentNone,

	"seen":     IntentSeen,
	"not_seen": IntentNotSeen,
	"undo":     IntentUndo,
	"pause":    IntentPause,
	"mute":     IntentMute,
	"snapshot": IntentSnapshot,
	"quit":     IntentQuit,
}

// keyNames maps TOML key names to special keys
var keyNames = map[string]tcell.Key{
	"esc":        tcell.KeyEscape,
	"escape":     tcell.KeyEscape,
	"enter":      tcell.KeyEnter,
	"tab":        tcell.KeyTab,
	"backspace":  tcell.KeyBackspace,
	"backspace2": tcell.KeyBackspace2,
	"delete":     tcell.KeyDelete,
	"ctrl-c":     tcell.KeyCtrlC,
	"ctrl-q":     tcell.KeyCtrlQ,
}

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}
