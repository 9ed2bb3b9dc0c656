package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestDefaultBindingsCoverAllActions(t *testing.T) {
	bindings := DefaultBindings()

	actions := []Action{
		ActionForward, ActionBackward, ActionLeft, ActionRight,
		ActionJump, ActionSprint, ActionUp, ActionDown,
	}
	for _, a := range actions {
		bound := false
		for _, act := range bindings {
			if act == a {
				bound = true
				break
			}
		}
		if !bound {
			t.Errorf("action %d has no default binding", a)
		}
	}
}

func TestHeldKeysMapToPlayerKeys(t *testing.T) {
	in := New()

	in.keyEvent(sdl.SCANCODE_W, true, false)
	in.keyEvent(sdl.SCANCODE_A, true, false)
	in.keyEvent(sdl.SCANCODE_SPACE, true, false)

	keys := in.PlayerKeys()
	if !keys.Forward {
		t.Error("W should map to Forward")
	}
	if !keys.Left {
		t.Error("A should map to Left")
	}
	if !keys.Jump {
		t.Error("Space should map to Jump")
	}
	if keys.Backward || keys.Right || keys.Sprint || keys.Up || keys.Down {
		t.Errorf("unexpected keys held: %+v", keys)
	}
}

func TestAlternateBindingSharesAction(t *testing.T) {
	in := New()

	in.keyEvent(sdl.SCANCODE_UP, true, false)
	if !in.PlayerKeys().Forward {
		t.Error("arrow up should also map to Forward")
	}
}

func TestKeyReleaseClearsHeld(t *testing.T) {
	in := New()

	in.keyEvent(sdl.SCANCODE_D, true, false)
	if !in.Held(ActionRight) {
		t.Fatal("D down should hold Right")
	}

	in.keyEvent(sdl.SCANCODE_D, false, false)
	if in.Held(ActionRight) {
		t.Error("D up should release Right")
	}
}

func TestRepeatEmitsNoEdgeEvent(t *testing.T) {
	in := New()

	in.keyEvent(sdl.SCANCODE_W, true, false)
	n := len(in.Events())

	in.keyEvent(sdl.SCANCODE_W, true, true)
	if len(in.Events()) != n {
		t.Error("key repeat should not emit an edge event")
	}
	if !in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("key should stay held through repeats")
	}
}

func TestRebind(t *testing.T) {
	in := New()

	in.Bind(sdl.SCANCODE_Z, ActionJump)
	in.keyEvent(sdl.SCANCODE_Z, true, false)

	if !in.PlayerKeys().Jump {
		t.Error("rebound Z should map to Jump")
	}
}

func TestIsKeyPressedIsFrameScoped(t *testing.T) {
	in := New()

	in.keyEvent(sdl.SCANCODE_F12, true, false)
	if !in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Fatal("expected F12 pressed this frame")
	}

	// A new frame clears the edge events but not the held state.
	in.events = in.events[:0]
	if in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("pressed should not persist across frames")
	}
	if !in.IsKeyHeld(sdl.SCANCODE_F12) {
		t.Error("held should persist across frames")
	}
}
