// Package camera provides the mode-switched rig that produces the view
// transform from the player state.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vitrine/pkg/math"
)

// pitchLimit keeps the view short of the poles so LookAt never degenerates.
const pitchLimit = math32.Pi/2 - 0.01

var up = math.Vec3{Y: 1}

// Rig holds the camera orientation and per-mode parameters.
type Rig struct {
	Mode  Mode
	Yaw   float32 // radians, positive turns left
	Pitch float32 // radians, clamped to (-pitchLimit, pitchLimit)

	// Mouse look
	Sensitivity float32

	// Third-person boom
	Distance float32
	Height   float32

	// World position. Derived from the player in FirstPerson and
	// ThirdPerson; authoritative in Free.
	Position math.Vec3
}

// NewRig creates a rig with first-person defaults.
func NewRig() *Rig {
	return &Rig{
		Mode:        FirstPerson,
		Sensitivity: 0.0025,
		Distance:    4.0,
		Height:      2.0,
	}
}

// HandleMouse applies a raw mouse delta to yaw and pitch.
func (r *Rig) HandleMouse(dx, dy float32) {
	r.Yaw -= dx * r.Sensitivity
	r.Pitch = math.Clamp(r.Pitch-dy*r.Sensitivity, -pitchLimit, pitchLimit)
}

// Forward returns the horizontal forward direction for the current yaw.
// Pitch is ignored so looking up or down never changes ground movement.
func (r *Rig) Forward() math.Vec3 {
	return math.Vec3{X: -math32.Sin(r.Yaw), Z: -math32.Cos(r.Yaw)}
}

// Right returns the horizontal right direction for the current yaw.
func (r *Rig) Right() math.Vec3 {
	return math.Vec3{X: math32.Cos(r.Yaw), Z: -math32.Sin(r.Yaw)}
}

// LookDirection returns the full view direction including pitch.
func (r *Rig) LookDirection() math.Vec3 {
	cp := math32.Cos(r.Pitch)
	return math.Vec3{
		X: -math32.Sin(r.Yaw) * cp,
		Y: math32.Sin(r.Pitch),
		Z: -math32.Cos(r.Yaw) * cp,
	}
}

// Follow moves the rig to track the player for the current mode and
// returns the view matrix. eyeOffset is the height of the eyes above the
// player position.
func (r *Rig) Follow(playerPos math.Vec3, eyeOffset float32) math.Mat4 {
	eye := playerPos
	eye.Y += eyeOffset

	switch r.Mode {
	case FirstPerson:
		r.Position = eye
		return math.LookAt(r.Position, r.Position.Add(r.LookDirection()), up)
	case ThirdPerson:
		r.Position = math.Vec3{
			X: playerPos.X + math32.Sin(r.Yaw)*r.Distance,
			Y: playerPos.Y + r.Height,
			Z: playerPos.Z + math32.Cos(r.Yaw)*r.Distance,
		}
		return math.LookAt(r.Position, eye, up)
	case Free:
		return math.LookAt(r.Position, r.Position.Add(r.LookDirection()), up)
	}
	return math.Identity()
}
