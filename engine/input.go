package engine

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Action is a semantic input command
type Action int

const (
	ActionNone Action = iota
	ActionStep
	ActionTogglePause
	ActionClear
	ActionToggleDebug
	ActionQuit
)

var actionNames = map[Action]string{
	ActionStep:        "step",
	ActionTogglePause: "pause",
	ActionClear:       "clear",
	ActionToggleDebug: "debug",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves an action by its config name
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// KeyMap maps normalized key names to actions
type KeyMap map[string]Action

// DefaultKeyMap returns the classic bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w":      ActionStep,
		"space":  ActionTogglePause,
		"r":      ActionClear,
		"q":      ActionToggleDebug,
		"esc":    ActionQuit,
		"ctrl+c": ActionQuit,
	}
}

// ParseKeyMap builds a key map from action name to key names. Bindings not
// mentioned keep their default; a key bound twice keeps the last action in name order
func ParseKeyMap(bindings map[string][]string) (KeyMap, error) {
	km := DefaultKeyMap()
	if len(bindings) == 0 {
		return km, nil
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		// Explicit bindings replace the action's defaults
		for key, a := range km {
			if a == action {
				delete(km, key)
			}
		}
		for _, key := range bindings[name] {
			norm := NormalizeKey(key)
			if norm == "" {
				return nil, fmt.Errorf("%w: empty key for %s", ErrUnknownKey, name)
			}
			km[norm] = action
		}
	}
	return km, nil
}

// NormalizeKey lowercases a key name and folds aliases
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "escape":
		return "esc"
	case "spacebar":
		return "space"
	}
	return key
}

// Lookup returns the action bound to key
func (km KeyMap) Lookup(key string) (Action, bool) {
	a, ok := km[NormalizeKey(key)]
	return a, ok
}

// InputEvent is a source-independent input event
type InputEvent interface {
	inputEvent()
}

// KeyEvent carries a normalized key name
type KeyEvent struct {
	Code string
}

// ClickEvent carries pointer client coordinates
type ClickEvent struct {
	ClientX, ClientY int
}

// ResizeEvent signals the surface changed size
type ResizeEvent struct {
	Width, Height int
}

func (KeyEvent) inputEvent()    {}
func (ClickEvent) inputEvent()  {}
func (ResizeEvent) inputEvent() {}

// TilePos addresses one board cell
type TilePos struct {
	Row, Col int
}

// Board is the cellular-automaton collaborator mutated by input
type Board interface {
	NextStep()
	ClearBoard()
	Rows() int
	Cols() int
	Cell(row, col int) (uint8, bool)
	SetCell(row, col int, v uint8) bool
}

// Icon is the pause indicator state
type Icon int

const (
	IconPause Icon = iota
	IconPlay
)

// PauseIndicator presents the pause state to the player
type PauseIndicator interface {
	SetIcon(icon Icon)
}

// Sound plays input cues
type Sound interface {
	PlayToggle(alive bool)
	PlayStep()
}

// HandleEvent applies one input event
func (g *GameEngine) HandleEvent(ev InputEvent) error {
	switch ev := ev.(type) {
	case KeyEvent:
		return g.HandleKey(ev.Code)
	case ClickEvent:
		return g.HandleClick(ev.ClientX, ev.ClientY)
	case ResizeEvent:
		g.handleResize()
		return nil
	default:
		return nil
	}
}

// HandleKey dispatches the action bound to key. Unbound keys are ignored
func (g *GameEngine) HandleKey(key string) error {
	action, ok := g.keyMap.Lookup(key)
	if !ok {
		return nil
	}
	return g.Dispatch(action)
}

// Dispatch performs a semantic action
func (g *GameEngine) Dispatch(action Action) error {
	switch action {
	case ActionStep:
		if g.board == nil {
			return ErrNoBoard
		}
		g.board.NextStep()
		if g.sound != nil {
			g.sound.PlayStep()
		}
	case ActionTogglePause:
		g.pause = !g.pause
		if g.indicator != nil {
			g.indicator.SetIcon(g.currentIcon())
		}
		g.logger.Debug("pause toggled", zap.Bool("paused", g.pause))
	case ActionClear:
		if g.board == nil {
			return ErrNoBoard
		}
		g.board.ClearBoard()
	case ActionToggleDebug:
		g.debug = !g.debug
	case ActionQuit:
		g.logger.Info("quit requested")
		g.Stop()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownAction, action)
	}
	return nil
}

// HandleClick toggles the tile under the pointer. The first click in menu mode
// only dismisses the menu
func (g *GameEngine) HandleClick(clientX, clientY int) error {
	if g.menuFlag {
		g.menuFlag = false
		return nil
	}

	pos, err := g.TileAt(clientX, clientY)
	if err != nil {
		return err
	}

	current, _ := g.board.Cell(pos.Row, pos.Col)
	next := uint8(1)
	if current == 1 {
		next = 0
	}
	g.board.SetCell(pos.Row, pos.Col, next)
	g.lastClick = pos
	g.hasLastClick = true

	if g.sound != nil {
		g.sound.PlayToggle(next == 1)
	}
	return nil
}

// TileAt translates client coordinates into a bounds-checked board tile
func (g *GameEngine) TileAt(clientX, clientY int) (TilePos, error) {
	if g.surface == nil {
		return TilePos{}, ErrNotInitialized
	}
	if g.board == nil {
		return TilePos{}, ErrNoBoard
	}

	rect := g.surface.BoundingRect()
	x := clientX - rect.Min.X
	y := clientY - rect.Min.Y
	if x < 0 || y < 0 {
		return TilePos{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, clientX, clientY)
	}

	pos := TilePos{Row: y / g.tileH, Col: x / g.tileW}
	if pos.Row >= g.board.Rows() || pos.Col >= g.board.Cols() {
		return TilePos{}, fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, pos.Row, pos.Col)
	}
	return pos, nil
}

func (g *GameEngine) currentIcon() Icon {
	if g.pause {
		return IconPause
	}
	return IconPlay
}

func (g *GameEngine) handleResize() {
	if g.surface == nil {
		return
	}
	if s, ok := g.surface.(Syncer); ok {
		s.Sync()
	}
	g.width, g.height = g.surface.Size()
	g.logger.Debug("surface resized", zap.Int("width", g.width), zap.Int("height", g.height))
}
