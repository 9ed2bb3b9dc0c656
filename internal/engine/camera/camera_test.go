package camera

import (
	"math"
	"testing"

	vmath "github.com/Faultbox/vitrine/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.0001
}

func vecNear(a, b vmath.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestForwardRightAtZeroYaw(t *testing.T) {
	r := NewRig()

	if got := r.Forward(); !vecNear(got, vmath.Vec3{Z: -1}) {
		t.Errorf("Forward() = %v, want (0, 0, -1)", got)
	}
	if got := r.Right(); !vecNear(got, vmath.Vec3{X: 1}) {
		t.Errorf("Right() = %v, want (1, 0, 0)", got)
	}
}

func TestForwardIgnoresPitch(t *testing.T) {
	r := NewRig()
	r.Pitch = 1.2

	got := r.Forward()
	if !near(got.Length(), 1) {
		t.Errorf("Forward length = %v with pitch applied, want 1", got.Length())
	}
	if got.Y != 0 {
		t.Errorf("Forward Y = %v, want 0", got.Y)
	}
}

func TestMouseLookClampsPitch(t *testing.T) {
	r := NewRig()

	r.HandleMouse(0, -10000)
	if r.Pitch > pitchLimit || !near(r.Pitch, pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", r.Pitch, pitchLimit)
	}

	r.HandleMouse(0, 10000)
	if r.Pitch < -pitchLimit || !near(r.Pitch, -pitchLimit) {
		t.Errorf("pitch = %v, want clamp at %v", r.Pitch, -pitchLimit)
	}
}

func TestMouseLookTurnsLeftForPositiveDX(t *testing.T) {
	r := NewRig()
	r.HandleMouse(100, 0)
	if r.Yaw >= 0 {
		t.Errorf("yaw = %v after rightward mouse move, want negative", r.Yaw)
	}
}

func TestFollowFirstPerson(t *testing.T) {
	r := NewRig()
	r.Follow(vmath.Vec3{X: 2, Y: 0, Z: 3}, 1.7)

	want := vmath.Vec3{X: 2, Y: 1.7, Z: 3}
	if !vecNear(r.Position, want) {
		t.Errorf("Position = %v, want %v", r.Position, want)
	}
}

func TestFollowThirdPersonBoom(t *testing.T) {
	r := NewRig()
	r.Mode = ThirdPerson
	r.Distance = 4
	r.Height = 2

	player := vmath.Vec3{X: 1, Y: 0, Z: 1}
	r.Follow(player, 1.7)

	// At zero yaw the boom hangs on +Z, behind the forward direction.
	want := vmath.Vec3{X: 1, Y: 2, Z: 5}
	if !vecNear(r.Position, want) {
		t.Errorf("Position = %v, want %v", r.Position, want)
	}
}

func TestFollowFreeLeavesPosition(t *testing.T) {
	r := NewRig()
	r.Mode = Free
	r.Position = vmath.Vec3{X: 9, Y: 9, Z: 9}

	r.Follow(vmath.Vec3{}, 1.7)
	if !vecNear(r.Position, vmath.Vec3{X: 9, Y: 9, Z: 9}) {
		t.Errorf("free-mode Follow moved the camera to %v", r.Position)
	}
}

func TestModeNamesRoundTrip(t *testing.T) {
	for _, m := range []Mode{FirstPerson, ThirdPerson, Free} {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, true", m.String(), got, ok, m)
		}
	}
	if _, ok := ParseMode("orbit"); ok {
		t.Error("ParseMode should reject unknown names")
	}
}
