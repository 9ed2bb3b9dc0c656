package daynight

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vitrine/internal/engine/lighting"
	"github.com/Faultbox/vitrine/pkg/math"
)

// Preset is one named time-of-day anchor of the lighting table.
type Preset struct {
	Sky          lighting.Color
	Sun          lighting.Color
	Ambient      lighting.Color
	Fog          lighting.Color
	SunIntensity float32
}

const (
	night = iota
	dawn
	morning
	noon
	afternoon
	dusk
	evening
)

var presets = [...]Preset{
	night: {
		Sky:          lighting.Hex(0x0b1026),
		Sun:          lighting.Hex(0x8899bb),
		Ambient:      lighting.Hex(0x16213e),
		Fog:          lighting.Hex(0x0b1026),
		SunIntensity: 0.15,
	},
	dawn: {
		Sky:          lighting.Hex(0xff7e50),
		Sun:          lighting.Hex(0xffb347),
		Ambient:      lighting.Hex(0x6b5b95),
		Fog:          lighting.Hex(0xe8a87c),
		SunIntensity: 0.8,
	},
	morning: {
		Sky:          lighting.Hex(0x87ceeb),
		Sun:          lighting.Hex(0xfff4d6),
		Ambient:      lighting.Hex(0xb0c4de),
		Fog:          lighting.Hex(0xcfe8ef),
		SunIntensity: 1.5,
	},
	noon: {
		Sky:          lighting.Hex(0x4aa3df),
		Sun:          lighting.Hex(0xffffff),
		Ambient:      lighting.Hex(0xd6e4f0),
		Fog:          lighting.Hex(0xc9e2f0),
		SunIntensity: 2.0,
	},
	afternoon: {
		Sky:          lighting.Hex(0x5a9fd4),
		Sun:          lighting.Hex(0xfff0c9),
		Ambient:      lighting.Hex(0xc0ccd8),
		Fog:          lighting.Hex(0xd8e2e8),
		SunIntensity: 1.7,
	},
	dusk: {
		Sky:          lighting.Hex(0xe8704f),
		Sun:          lighting.Hex(0xff8c42),
		Ambient:      lighting.Hex(0x7d5a7a),
		Fog:          lighting.Hex(0xe0987a),
		SunIntensity: 0.9,
	},
	evening: {
		Sky:          lighting.Hex(0x2c3e66),
		Sun:          lighting.Hex(0x9fb0d8),
		Ambient:      lighting.Hex(0x3a4a6b),
		Fog:          lighting.Hex(0x2c3e66),
		SunIntensity: 0.3,
	},
}

// The day is cut into nine spans. A span with from == to is a flat
// plateau; otherwise the two anchors are blended linearly across it.
var spans = [...]struct {
	lo, hi   float32
	from, to int
}{
	{0, 5, night, night},
	{5, 7, night, dawn},
	{7, 9, dawn, morning},
	{9, 11, morning, noon},
	{11, 15, noon, noon},
	{15, 17, noon, afternoon},
	{17, 19, afternoon, dusk},
	{19, 21, dusk, evening},
	{21, 24, evening, night},
}

// ColorsAt returns the blended lighting preset for an hour of the day.
// Hours outside [0, 24) are wrapped first.
func ColorsAt(t float32) Preset {
	t = wrapHours(t)
	for _, s := range spans {
		if t >= s.lo && t < s.hi {
			if s.from == s.to {
				return presets[s.from]
			}
			return blend(presets[s.from], presets[s.to], (t-s.lo)/(s.hi-s.lo))
		}
	}
	return presets[night]
}

func blend(a, b Preset, t float32) Preset {
	return Preset{
		Sky:          a.Sky.Lerp(b.Sky, t),
		Sun:          a.Sun.Lerp(b.Sun, t),
		Ambient:      a.Ambient.Lerp(b.Ambient, t),
		Fog:          a.Fog.Lerp(b.Fog, t),
		SunIntensity: math.Lerp(a.SunIntensity, b.SunIntensity, t),
	}
}

// SunPosition places the sun on its orbit for the given hour. The base
// point sweeps the XY plane at the given radius, with hour 6 on +X and
// hour 12 at the zenith; the orbit rotation then tilts the whole arc.
func SunPosition(t, distance float32, orbit math.Euler) math.Vec3 {
	a := (wrapHours(t) - 6) / 12 * math32.Pi
	base := math.Vec3{X: math32.Cos(a) * distance, Y: math32.Sin(a) * distance}
	if orbit.IsZero() {
		return base
	}
	return orbit.Apply(base)
}

func wrapHours(t float32) float32 {
	t = math32.Mod(t, 24)
	if t < 0 {
		t += 24
	}
	return t
}
