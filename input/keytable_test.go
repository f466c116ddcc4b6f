package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestClassify_DefaultBindings(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentSeen},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), IntentNotSeen},
		{"X", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModNone), IntentNotSeen},
		{"u", tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), IntentUndo},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), IntentUndo},
		{"p", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), IntentPause},
		{"m", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentMute},
		{"s", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), IntentSnapshot},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone},
		{"unbound key", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Classify(tt.ev); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	if kt.Classify(nil) != IntentNone {
		t.Error("Expected IntentNone for nil event")
	}
}

func TestMerge_OverrideAndUnbind(t *testing.T) {
	kt := DefaultKeyTable()
	kt.Merge(&KeyTable{
		Runes: map[rune]Intent{
			'n': IntentNotSeen,
			'q': IntentNone,
		},
		Keys: map[tcell.Key]Intent{
			tcell.KeyEnter: IntentSeen,
		},
	})

	if got := kt.Classify(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)); got != IntentNotSeen {
		t.Errorf("Expected n bound to not_seen, got %v", got)
	}
	if got := kt.Classify(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); got != IntentNone {
		t.Errorf("Expected q unbound, got %v", got)
	}
	if got := kt.Classify(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); got != IntentSeen {
		t.Errorf("Expected enter bound to seen, got %v", got)
	}
	if got := kt.Classify(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)); got != IntentSeen {
		t.Errorf("Expected untouched space binding, got %v", got)
	}

	kt.Merge(nil)
}

func TestIntent_String(t *testing.T) {
	if IntentNotSeen.String() != "not_seen" {
		t.Errorf("Expected not_seen, got %s", IntentNotSeen.String())
	}
	if !IntentSeen.IsResponse() || IntentUndo.IsResponse() {
		t.Error("Expected only seen and not_seen to be responses")
	}
}
