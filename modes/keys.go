package modes

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// specialKeys names the non-rune keys a key map can bind
var specialKeys = map[tcell.Key]string{
	tcell.KeyEscape:     "esc",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyF1:         "f1",
	tcell.KeyF2:         "f2",
	tcell.KeyF3:         "f3",
	tcell.KeyF4:         "f4",
}

// KeyName returns the normalized key map name of a key event: lowercase runes,
// "space", "ctrl+<letter>" or a special key name. Unknown keys yield ""
func KeyName(ev *tcell.EventKey) string {
	key := ev.Key()

	if key == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(unicode.ToLower(r))
	}

	if name, ok := specialKeys[key]; ok {
		return name
	}

	// tcell reports ctrl+letter as control codes KeyCtrlA..KeyCtrlZ
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+key-tcell.KeyCtrlA))
	}
	return ""
}

// namedKeys is every multi-rune name KeyName can return. ctrl+letter codes
// shadowed by a special key (tab is ctrl+i) are left out
var namedKeys = func() map[string]bool {
	names := map[string]bool{"space": true}
	for _, name := range specialKeys {
		names[name] = true
	}
	for k := tcell.KeyCtrlA; k <= tcell.KeyCtrlZ; k++ {
		if _, ok := specialKeys[k]; !ok {
			names["ctrl+"+string(rune('a'+k-tcell.KeyCtrlA))] = true
		}
	}
	return names
}()

// ValidKeyName reports whether a normalized key map name can be produced by
// KeyName, so a binding to it is reachable
func ValidKeyName(name string) bool {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return r != ' ' && unicode.IsPrint(r) && unicode.ToLower(r) == r
	}
	return namedKeys[name]
}
