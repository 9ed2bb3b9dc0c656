// Package daynight drives the time-of-day cycle: it advances the clock,
// blends the anchored lighting presets and places the sun on its tilted
// orbit, writing the results into an injected sink each tick.
package daynight

import (
	"github.com/Faultbox/vitrine/internal/engine/lighting"
	"github.com/Faultbox/vitrine/pkg/math"
)

// Sink receives the lighting state derived on each recompute. The scene
// implements it; tests substitute a recorder.
type Sink interface {
	SetSky(c lighting.Color)
	SetFog(c lighting.Color)
	SetSun(light lighting.DirectionalLight)
	SetHemisphere(h lighting.HemisphereLight)
	SetSunMarker(c lighting.Color, visible bool)
}

// Clock defaults applied by New.
const (
	DefaultTime        = 12.0
	DefaultTimeSpeed   = 10.0
	DefaultSunDistance = 50.0
)

// Cycle owns the clock and orbit state. All methods are total: values are
// taken as given and never validated.
type Cycle struct {
	sink Sink

	time      float32 // hours, kept in [0, 24)
	speed     float32 // hours advanced per real second, before the /3600 scale
	enabled   bool
	intensity float32 // global multiplier on preset sun intensity
	distance  float32
	orbit     math.Euler
}

// New creates a cycle with default parameters and pushes the initial
// lighting state into sink.
func New(sink Sink) *Cycle {
	c := &Cycle{
		sink:      sink,
		time:      DefaultTime,
		speed:     DefaultTimeSpeed,
		enabled:   true,
		intensity: 1,
		distance:  DefaultSunDistance,
	}
	c.recompute()
	return c
}

// Update advances the clock when enabled and recomputes the lighting.
// dt is in seconds; the clock moves dt*speed/3600 hours. The recompute
// runs even when disabled so that SetTime calls between ticks take hold.
func (c *Cycle) Update(dt float32) {
	if c.enabled {
		c.time = wrapHours(c.time + dt*c.speed/3600)
	}
	c.recompute()
}

// SetEnabled toggles automatic progression. Derived state is untouched
// until the next Update.
func (c *Cycle) SetEnabled(on bool) { c.enabled = on }

// Enabled reports whether the clock advances on Update.
func (c *Cycle) Enabled() bool { return c.enabled }

// SetTime moves the clock to t hours, wrapped into [0, 24), and recomputes
// the lighting immediately.
func (c *Cycle) SetTime(t float32) {
	c.time = wrapHours(t)
	c.recompute()
}

// Time returns the current hour in [0, 24).
func (c *Cycle) Time() float32 { return c.time }

// SetTimeSpeed sets how many hours pass per real second (scaled by 1/3600
// inside Update).
func (c *Cycle) SetTimeSpeed(s float32) { c.speed = s }

// TimeSpeed returns the clock speed.
func (c *Cycle) TimeSpeed() float32 { return c.speed }

// SetSunIntensity sets the global multiplier applied on top of the
// preset-derived intensity.
func (c *Cycle) SetSunIntensity(s float32) { c.intensity = s }

// SunIntensity returns the global intensity multiplier.
func (c *Cycle) SunIntensity() float32 { return c.intensity }

// SetSunDistance sets the orbit radius.
func (c *Cycle) SetSunDistance(d float32) { c.distance = d }

// SunDistance returns the orbit radius.
func (c *Cycle) SunDistance() float32 { return c.distance }

// SetOrbitPitch tilts the orbit about X and recomputes immediately.
func (c *Cycle) SetOrbitPitch(r float32) {
	c.orbit.Pitch = r
	c.recompute()
}

// SetOrbitYaw tilts the orbit about Y and recomputes immediately.
func (c *Cycle) SetOrbitYaw(r float32) {
	c.orbit.Yaw = r
	c.recompute()
}

// SetOrbitRoll tilts the orbit about Z and recomputes immediately.
func (c *Cycle) SetOrbitRoll(r float32) {
	c.orbit.Roll = r
	c.recompute()
}

// SetOrbitRotation sets all three orbit angles at once and recomputes
// immediately.
func (c *Cycle) SetOrbitRotation(pitch, yaw, roll float32) {
	c.orbit = math.Euler{Pitch: pitch, Yaw: yaw, Roll: roll}
	c.recompute()
}

// Orbit returns the current orbit rotation.
func (c *Cycle) Orbit() math.Euler { return c.orbit }

func (c *Cycle) recompute() {
	p := ColorsAt(c.time)
	pos := SunPosition(c.time, c.distance, c.orbit)

	c.sink.SetSky(p.Sky)
	c.sink.SetFog(p.Fog)
	c.sink.SetSun(lighting.DirectionalLight{
		Position:  pos,
		Color:     p.Sun,
		Intensity: p.SunIntensity * c.intensity,
	})
	c.sink.SetHemisphere(lighting.HemisphereLight{Sky: p.Sky, Ground: p.Ambient})
	c.sink.SetSunMarker(p.Sun, pos.Y > 0)
}
