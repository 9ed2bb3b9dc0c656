// Package player integrates walkthrough motion: key-gated instantaneous
// velocity, gravity, jumping against a flat ground plane, and the
// camera-authoritative free-flight mode.
package player

import (
	"github.com/Faultbox/vitrine/internal/engine/camera"
	"github.com/Faultbox/vitrine/pkg/math"
)

// Keys is the held state of the movement controls for one frame.
type Keys struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Up       bool
	Down     bool
	Sprint   bool
}

// Player holds position, velocity and the motion tuning parameters.
// Values are taken as given; nothing is validated.
type Player struct {
	Position math.Vec3
	Velocity math.Vec3

	Scale     float32
	EyeHeight float32
	JumpForce float32
	Gravity   float32 // negative, applied every grounded-mode tick
	Grounded  bool

	Keys Keys

	speed       float32
	fastSpeed   float32
	groundLevel float32
}

// New creates a player standing on the ground plane at the origin.
func New() *Player {
	p := &Player{
		Scale:     1,
		EyeHeight: 1.7,
		JumpForce: 8,
		Gravity:   -20,
		Grounded:  true,
	}
	p.SetSpeed(5)
	return p
}

// SetSpeed sets the walk speed and derives the sprint speed from it.
func (p *Player) SetSpeed(s float32) {
	p.speed = s
	p.fastSpeed = 2 * s
}

// Speed returns the walk speed.
func (p *Player) Speed() float32 { return p.speed }

// FastSpeed returns the sprint speed.
func (p *Player) FastSpeed() float32 { return p.fastSpeed }

// SetGroundLevel moves the ground plane, lifting the player onto it if
// they are now below it.
func (p *Player) SetGroundLevel(y float32) {
	p.groundLevel = y
	if p.Position.Y < y {
		p.Position.Y = y
	}
}

// GroundLevel returns the ground plane height.
func (p *Player) GroundLevel() float32 { return p.groundLevel }

// EyeOffset returns the eye height above the position, scaled with the
// player size.
func (p *Player) EyeOffset() float32 { return p.EyeHeight * p.Scale }

// Update advances the player one tick. The rig supplies the movement
// basis; in Free mode it also receives the motion, with the player
// position kept as a read-only mirror.
func (p *Player) Update(dt float32, rig *camera.Rig) {
	if rig.Mode == camera.Free {
		p.fly(dt, rig)
		return
	}
	p.walk(dt, rig)
}

// walk is the grounded integrator: desired direction becomes horizontal
// velocity outright, gravity and jump impulses act on the vertical axis,
// and the ground plane clamps the result.
func (p *Player) walk(dt float32, rig *camera.Rig) {
	dir := p.steer(rig)
	if dir != (math.Vec3{}) {
		dir = dir.Normalize()
	}

	speed := p.speed
	if p.Keys.Sprint {
		speed = p.fastSpeed
	}
	p.Velocity.X = dir.X * speed
	p.Velocity.Z = dir.Z * speed

	p.Velocity.Y += p.Gravity * dt
	if p.Keys.Jump && p.Grounded {
		p.Velocity.Y = p.JumpForce
		p.Grounded = false
	}

	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	if p.Position.Y <= p.groundLevel {
		p.Position.Y = p.groundLevel
		p.Velocity.Y = 0
		p.Grounded = true
	}
}

// fly is the free-flight integrator. Up and down contribute to the same
// vertical component before normalization, so holding both cancels out.
func (p *Player) fly(dt float32, rig *camera.Rig) {
	dir := p.steer(rig)
	if p.Keys.Up {
		dir.Y += 1
	}
	if p.Keys.Down {
		dir.Y -= 1
	}
	if dir != (math.Vec3{}) {
		dir = dir.Normalize()
	}

	speed := p.speed
	if p.Keys.Sprint {
		speed = p.fastSpeed
	}
	rig.Position = rig.Position.Add(dir.Scale(speed * dt))
	p.Position = rig.Position
}

// steer sums the horizontal movement basis gated by the directional keys.
func (p *Player) steer(rig *camera.Rig) math.Vec3 {
	dir := math.Vec3{}
	if p.Keys.Forward {
		dir = dir.Add(rig.Forward())
	}
	if p.Keys.Backward {
		dir = dir.Sub(rig.Forward())
	}
	if p.Keys.Right {
		dir = dir.Add(rig.Right())
	}
	if p.Keys.Left {
		dir = dir.Sub(rig.Right())
	}
	return dir
}
