package modes

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-life/engine"
)

// InputHandler translates tcell events into engine input events.
// It keeps the previous mouse button state to turn button-1 presses into clicks
type InputHandler struct {
	prevButtons tcell.ButtonMask
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Translate converts ev into an engine event. ok is false for events the engine does not consume
func (h *InputHandler) Translate(ev tcell.Event) (engine.InputEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := KeyName(ev)
		if name == "" {
			return nil, false
		}
		return engine.KeyEvent{Code: name}, true
	case *tcell.EventMouse:
		return h.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return engine.ResizeEvent{Width: w, Height: h}, true
	}
	return nil, false
}

// handleMouse reports a click on the press edge of the primary button only,
// drags and releases are dropped
func (h *InputHandler) handleMouse(ev *tcell.EventMouse) (engine.InputEvent, bool) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.prevButtons&tcell.Button1 == 0
	h.prevButtons = buttons
	if !pressed {
		return nil, false
	}
	x, y := ev.Position()
	return engine.ClickEvent{ClientX: x, ClientY: y}, true
}
