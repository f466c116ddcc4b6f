package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps key events to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Esc, Backspace)
	Keys map[tcell.Key]Intent

	// Printable runes
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyEscape:     IntentQuit,
			tcell.KeyCtrlC:      IntentQuit,
			tcell.KeyBackspace:  IntentUndo,
			tcell.KeyBackspace2: IntentUndo,
		},
		Runes: map[rune]Intent{
			' ': IntentSeen,
			'x': IntentNotSeen,
			'X': IntentNotSeen,
			'u': IntentUndo,
			'p': IntentPause,
			'm': IntentMute,
			's': IntentSnapshot,
			'q': IntentQuit,
		},
	}
}

// Merge applies a sparse override table on top of kt
// IntentNone entries unbind the key
func (kt *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	merge(kt.Keys, override.Keys)
	merge(kt.Runes, override.Runes)
}

func merge[K comparable](base, override map[K]Intent) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}

// Classify maps a key event to its intent
func (kt *KeyTable) Classify(ev *tcell.EventKey) Intent {
	if ev == nil {
		return IntentNone
	}
	if ev.Key() == tcell.KeyRune {
		// Ctrl-modified runes are not bound
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return IntentNone
		}
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}
