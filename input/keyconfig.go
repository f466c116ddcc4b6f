package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyConfig is the keymap section of the configuration file
//
//	[keymap.runes]
//	space = "seen"
//	n = "not_seen"
//
//	[keymap.keys]
//	enter = "seen"
type KeyConfig struct {
	Runes map[string]string `toml:"runes"`
	Keys  map[string]string `toml:"keys"`
}

// LoadKeyConfig resolves keymap names into a sparse override KeyTable
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(cfg KeyConfig) (*KeyTable, error) {
	kt := &KeyTable{
		Runes: make(map[rune]Intent, len(cfg.Runes)),
		Keys:  make(map[tcell.Key]Intent, len(cfg.Keys)),
	}

	for keyStr, actionName := range cfg.Runes {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[keymap.runes] key %q: %w", keyStr, err)
		}
		intent, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keymap.runes] key %q: %w", keyStr, err)
		}
		kt.Runes[r] = intent
	}

	for keyStr, actionName := range cfg.Keys {
		k, ok := keyNames[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[keymap.keys] unknown key name: %q", keyStr)
		}
		intent, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keymap.keys] key %q: %w", keyStr, err)
		}
		kt.Keys[k] = intent
	}

	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to an intent
func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	intent, ok := actionRegistry[name]
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return intent, nil
}
