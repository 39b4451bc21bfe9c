package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// binding identifies one physical key
type binding struct {
	key  tcell.Key
	r    rune
	ctrl bool
}

// KeyTable maps physical keys to intents
type KeyTable struct {
	keys map[binding]IntentType
}

// Bindings lists key names per action, as read from config
type Bindings struct {
	Clear  []string
	Pause  []string
	Export []string
	Quit   []string
}

// DefaultBindings returns the stock key map
func DefaultBindings() Bindings {
	return Bindings{
		Clear:  []string{"c", "space"},
		Pause:  []string{"p"},
		Export: []string{"e"},
		Quit:   []string{"q", "esc", "ctrl+c"},
	}
}

// namedKeys resolves multi-character key names
var namedKeys = map[string]binding{
	"space":     {key: tcell.KeyRune, r: ' '},
	"esc":       {key: tcell.KeyEscape},
	"escape":    {key: tcell.KeyEscape},
	"enter":     {key: tcell.KeyEnter},
	"tab":       {key: tcell.KeyTab},
	"backspace": {key: tcell.KeyBackspace2},
	"delete":    {key: tcell.KeyDelete},
}

// NewKeyTable builds a table from bindings
// Returns error on unknown key names or a key bound to two actions
func NewKeyTable(b Bindings) (*KeyTable, error) {
	kt := &KeyTable{keys: make(map[binding]IntentType)}

	groups := []struct {
		intent IntentType
		names  []string
	}{
		{IntentClear, b.Clear},
		{IntentPause, b.Pause},
		{IntentExport, b.Export},
		{IntentQuit, b.Quit},
	}

	for _, g := range groups {
		for _, name := range g.names {
			kb, err := parseKey(name)
			if err != nil {
				return nil, fmt.Errorf("[keys] %s: %w", g.intent, err)
			}
			if prev, ok := kt.keys[kb]; ok && prev != g.intent {
				return nil, fmt.Errorf("[keys] %q bound to both %s and %s", name, prev, g.intent)
			}
			kt.keys[kb] = g.intent
		}
	}
	return kt, nil
}

// parseKey resolves a key name: single rune, named key, or ctrl+letter
func parseKey(name string) (binding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return binding{}, fmt.Errorf("empty key name")
	}

	if kb, ok := namedKeys[n]; ok {
		return kb, nil
	}

	if rest, ok := strings.CutPrefix(n, "ctrl+"); ok {
		if len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
			return binding{key: tcell.KeyRune, r: rune(rest[0]), ctrl: true}, nil
		}
		return binding{}, fmt.Errorf("unsupported ctrl key %q", name)
	}

	runes := []rune(name)
	if len(runes) == 1 {
		return binding{key: tcell.KeyRune, r: runes[0]}, nil
	}
	return binding{}, fmt.Errorf("unknown key %q", name)
}

// Translate maps a terminal event to an intent
func (kt *KeyTable) Translate(ev tcell.Event) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return IntentResize
	case *tcell.EventKey:
		return kt.lookup(ev)
	}
	return IntentNone
}

func (kt *KeyTable) lookup(ev *tcell.EventKey) IntentType {
	key := ev.Key()

	// Legacy control codes arrive as KeyCtrlA..KeyCtrlZ
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ && !isNamedControl(key) {
		r := rune('a' + (key - tcell.KeyCtrlA))
		return kt.keys[binding{key: tcell.KeyRune, r: r, ctrl: true}]
	}

	if key == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return kt.keys[binding{key: tcell.KeyRune, r: toLower(r), ctrl: true}]
		}
		if intent, ok := kt.keys[binding{key: tcell.KeyRune, r: r}]; ok {
			return intent
		}
		// Letters match case-insensitively
		return kt.keys[binding{key: tcell.KeyRune, r: toLower(r)}]
	}

	if key == tcell.KeyBackspace {
		key = tcell.KeyBackspace2
	}
	return kt.keys[binding{key: key}]
}

// isNamedControl reports control codes that share values with named keys
func isNamedControl(k tcell.Key) bool {
	return k == tcell.KeyTab || k == tcell.KeyEnter || k == tcell.KeyBackspace
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
