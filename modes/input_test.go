package modes

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-life/engine"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "w"},
		{"uppercase letter", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModShift), "r"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyName(tt.ev); got != tt.want {
				t.Errorf("KeyName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyNamesMatchDefaultKeyMap(t *testing.T) {
	km := engine.DefaultKeyMap()
	events := map[*tcell.EventKey]engine.Action{
		tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone): engine.ActionStep,
		tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone): engine.ActionTogglePause,
		tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone): engine.ActionClear,
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone): engine.ActionToggleDebug,
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone):  engine.ActionQuit,
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl):   engine.ActionQuit,
	}
	for ev, want := range events {
		got, ok := km.Lookup(KeyName(ev))
		if !ok || got != want {
			t.Errorf("Key %q: got %v (bound %v), want %v", KeyName(ev), got, ok, want)
		}
	}
}

func TestTranslateKey(t *testing.T) {
	h := NewInputHandler()

	ev, ok := h.Translate(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if !ok {
		t.Fatal("Expected key event to translate")
	}
	if ke, isKey := ev.(engine.KeyEvent); !isKey || ke.Code != "w" {
		t.Errorf("Expected KeyEvent{w}, got %#v", ev)
	}

	if _, ok := h.Translate(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)); ok {
		t.Error("Unnamed key should not translate")
	}
}

func TestTranslateMouseClickEdge(t *testing.T) {
	h := NewInputHandler()

	ev, ok := h.Translate(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	if !ok {
		t.Fatal("Expected press to produce a click")
	}
	if ce := ev.(engine.ClickEvent); ce.ClientX != 5 || ce.ClientY != 3 {
		t.Errorf("Expected click at (5,3), got %+v", ce)
	}

	// Drag with the button held is not a new click
	if _, ok := h.Translate(tcell.NewEventMouse(6, 3, tcell.Button1, tcell.ModNone)); ok {
		t.Error("Held button produced a second click")
	}

	// Release then press again
	if _, ok := h.Translate(tcell.NewEventMouse(6, 3, tcell.ButtonNone, tcell.ModNone)); ok {
		t.Error("Release produced a click")
	}
	if _, ok := h.Translate(tcell.NewEventMouse(7, 4, tcell.Button1, tcell.ModNone)); !ok {
		t.Error("Second press did not produce a click")
	}

	// Other buttons are ignored
	h2 := NewInputHandler()
	if _, ok := h2.Translate(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone)); ok {
		t.Error("Button2 produced a click")
	}
}

func TestTranslateResize(t *testing.T) {
	h := NewInputHandler()
	ev, ok := h.Translate(tcell.NewEventResize(100, 30))
	if !ok {
		t.Fatal("Expected resize to translate")
	}
	if re := ev.(engine.ResizeEvent); re.Width != 100 || re.Height != 30 {
		t.Errorf("Unexpected resize %+v", re)
	}
}

func TestValidKeyName(t *testing.T) {
	for key := range engine.DefaultKeyMap() {
		if !ValidKeyName(key) {
			t.Errorf("Default key %q rejected", key)
		}
	}
	for _, name := range specialKeys {
		if !ValidKeyName(name) {
			t.Errorf("Special key %q rejected", name)
		}
	}

	tests := []struct {
		name string
		want bool
	}{
		{"w", true},
		{"?", true},
		{"space", true},
		{"ctrl+a", true},
		{"ctrl+z", true},
		{"W", false},
		{" ", false},
		{"", false},
		{"florp", false},
		{"ctrl+h", false},
		{"ctrl+m", false},
		{"f12", false},
	}
	for _, tt := range tests {
		if got := ValidKeyName(tt.name); got != tt.want {
			t.Errorf("ValidKeyName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
