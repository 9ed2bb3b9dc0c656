// Package input handles SDL2 input events and key bindings.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/vitrine/internal/engine/player"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Button uint8
}

// Action is a movement control the viewer responds to. Keys are mapped to
// actions through Bindings, so controls can be rebound without touching
// the locomotion code.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionJump
	ActionSprint
	ActionUp
	ActionDown
)

// Bindings maps scancodes to actions. Several keys may share one action.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the standard WASD layout with arrow-key
// alternates and E/Q for vertical flight.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_W:      ActionForward,
		sdl.SCANCODE_UP:     ActionForward,
		sdl.SCANCODE_S:      ActionBackward,
		sdl.SCANCODE_DOWN:   ActionBackward,
		sdl.SCANCODE_A:      ActionLeft,
		sdl.SCANCODE_LEFT:   ActionLeft,
		sdl.SCANCODE_D:      ActionRight,
		sdl.SCANCODE_RIGHT:  ActionRight,
		sdl.SCANCODE_SPACE:  ActionJump,
		sdl.SCANCODE_LSHIFT: ActionSprint,
		sdl.SCANCODE_E:      ActionUp,
		sdl.SCANCODE_Q:      ActionDown,
	}
}

// Input handles all input processing.
type Input struct {
	events   []Event
	held     [sdl.NUM_SCANCODES]bool
	bindings Bindings
	relX     float32
	relY     float32
}

// New creates a new input handler with the default bindings.
func New() *Input {
	return &Input{
		events:   make([]Event, 0, 16),
		bindings: DefaultBindings(),
	}
}

// Bind maps a scancode to an action, replacing any previous binding for
// that key.
func (i *Input) Bind(sc sdl.Scancode, a Action) {
	i.bindings[sc] = a
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.relX, i.relY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.keyEvent(e.Keysym.Scancode, true, e.Repeat != 0)
			} else if e.Type == sdl.KEYUP {
				i.keyEvent(e.Keysym.Scancode, false, false)
			}

		case *sdl.MouseMotionEvent:
			i.relX += float32(e.XRel)
			i.relY += float32(e.YRel)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				i.events = append(i.events, Event{
					Type:   EventMouseUp,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			}
		}
	}

	return false
}

// keyEvent records the held state and emits an edge event. Key repeats
// update nothing and emit nothing.
func (i *Input) keyEvent(sc sdl.Scancode, down, repeat bool) {
	if repeat {
		return
	}
	if int(sc) < len(i.held) {
		i.held[sc] = down
	}
	t := EventKeyUp
	if down {
		t = EventKeyDown
	}
	i.events = append(i.events, Event{Type: t, Key: sc})
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(sc sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == sc {
			return true
		}
	}
	return false
}

// IsKeyHeld checks if a specific key is currently held.
func (i *Input) IsKeyHeld(sc sdl.Scancode) bool {
	return int(sc) < len(i.held) && i.held[sc]
}

// Held reports whether any key bound to the action is currently held.
func (i *Input) Held(a Action) bool {
	for sc, act := range i.bindings {
		if act == a && i.IsKeyHeld(sc) {
			return true
		}
	}
	return false
}

// MouseDelta returns the relative mouse motion accumulated over the last
// Update.
func (i *Input) MouseDelta() (float32, float32) {
	return i.relX, i.relY
}

// PlayerKeys maps the current held state through the bindings into the
// movement key set.
func (i *Input) PlayerKeys() player.Keys {
	return player.Keys{
		Forward:  i.Held(ActionForward),
		Backward: i.Held(ActionBackward),
		Left:     i.Held(ActionLeft),
		Right:    i.Held(ActionRight),
		Jump:     i.Held(ActionJump),
		Sprint:   i.Held(ActionSprint),
		Up:       i.Held(ActionUp),
		Down:     i.Held(ActionDown),
	}
}
