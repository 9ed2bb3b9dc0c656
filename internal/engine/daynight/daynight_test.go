package daynight

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vitrine/internal/engine/lighting"
	"github.com/Faultbox/vitrine/pkg/math"
)

// sinkRecorder captures the last values pushed by the cycle.
type sinkRecorder struct {
	sky, fog lighting.Color
	sun      lighting.DirectionalLight
	hemi     lighting.HemisphereLight
	marker   lighting.Color
	visible  bool
	writes   int
}

func (r *sinkRecorder) SetSky(c lighting.Color) { r.sky = c; r.writes++ }
func (r *sinkRecorder) SetFog(c lighting.Color) { r.fog = c }
func (r *sinkRecorder) SetSun(l lighting.DirectionalLight) {
	r.sun = l
}
func (r *sinkRecorder) SetHemisphere(h lighting.HemisphereLight) { r.hemi = h }
func (r *sinkRecorder) SetSunMarker(c lighting.Color, visible bool) {
	r.marker = c
	r.visible = visible
}

func colorNear(a, b lighting.Color, tol float32) bool {
	return math32.Abs(a.R-b.R) <= tol &&
		math32.Abs(a.G-b.G) <= tol &&
		math32.Abs(a.B-b.B) <= tol
}

func presetNear(a, b Preset, tol float32) bool {
	return colorNear(a.Sky, b.Sky, tol) &&
		colorNear(a.Sun, b.Sun, tol) &&
		colorNear(a.Ambient, b.Ambient, tol) &&
		colorNear(a.Fog, b.Fog, tol) &&
		math32.Abs(a.SunIntensity-b.SunIntensity) <= tol
}

func TestColorsContinuousAtBoundaries(t *testing.T) {
	boundaries := []float32{5, 7, 9, 11, 15, 17, 19, 21}
	for _, b := range boundaries {
		before := ColorsAt(b - 0.001)
		after := ColorsAt(b)
		if !presetNear(before, after, 0.01) {
			t.Errorf("discontinuity at hour %v: %+v vs %+v", b, before, after)
		}
	}

	// The wrap from late evening back to midnight must be seamless too.
	before := ColorsAt(23.999)
	after := ColorsAt(0)
	if !presetNear(before, after, 0.01) {
		t.Errorf("discontinuity across midnight: %+v vs %+v", before, after)
	}
}

func TestNoonPlateau(t *testing.T) {
	want := presets[noon]
	for _, h := range []float32{11, 12, 13.5, 14.999} {
		if got := ColorsAt(h); got != want {
			t.Errorf("ColorsAt(%v) = %+v, want noon preset %+v", h, got, want)
		}
	}
}

func TestSunVisibilityWindow(t *testing.T) {
	visible := func(h float32) bool {
		return SunPosition(h, DefaultSunDistance, math.Euler{}).Y > 0
	}

	for _, h := range []float32{6.1, 9, 12, 15, 17.9} {
		if !visible(h) {
			t.Errorf("sun should be up at hour %v", h)
		}
	}
	for _, h := range []float32{0, 3, 6, 18, 21, 23.9} {
		if visible(h) {
			t.Errorf("sun should be down at hour %v", h)
		}
	}
}

func TestIdentityOrbitKeepsBasePath(t *testing.T) {
	for _, h := range []float32{0, 3, 6, 9, 12, 15, 18, 21} {
		a := (h - 6) / 12 * math32.Pi
		want := math.Vec3{X: math32.Cos(a) * 50, Y: math32.Sin(a) * 50}
		if got := SunPosition(h, 50, math.Euler{}); got != want {
			t.Errorf("SunPosition(%v) = %v, want %v", h, got, want)
		}
	}
}

func TestOrbitFlipHidesNoonSun(t *testing.T) {
	// A half-turn pitch mirrors the arc below the horizon.
	flipped := math.Euler{Pitch: math32.Pi}
	if SunPosition(12, 50, flipped).Y > 0 {
		t.Error("sun should be below the horizon at noon with a flipped orbit")
	}
}

func TestTimeSpeedZeroFreezesClock(t *testing.T) {
	c := New(&sinkRecorder{})
	c.SetTime(8)
	c.SetTimeSpeed(0)
	for i := 0; i < 10; i++ {
		c.Update(0.5)
	}
	if got := c.Time(); got != 8 {
		t.Errorf("Time() = %v, want 8", got)
	}
}

func TestClockWrapsPastMidnight(t *testing.T) {
	c := New(&sinkRecorder{})
	c.SetTime(23.9)
	c.SetTimeSpeed(3600)
	c.Update(1)

	if got := c.Time(); math32.Abs(got-0.9) > 0.001 {
		t.Errorf("Time() = %v, want ~0.9", got)
	}
}

func TestSetTimeWrapsNegative(t *testing.T) {
	c := New(&sinkRecorder{})
	c.SetTime(-1)
	if got := c.Time(); math32.Abs(got-23) > 0.001 {
		t.Errorf("Time() = %v, want ~23", got)
	}
}

func TestSetTimeWritesImmediately(t *testing.T) {
	rec := &sinkRecorder{}
	c := New(rec)

	before := rec.writes
	c.SetTime(7)
	if rec.writes != before+1 {
		t.Fatal("SetTime should push lighting without waiting for Update")
	}
	if want := ColorsAt(7).Sky; rec.sky != want {
		t.Errorf("sky = %+v, want %+v", rec.sky, want)
	}
}

func TestUpdateWhileDisabledStillWrites(t *testing.T) {
	rec := &sinkRecorder{}
	c := New(rec)
	c.SetTime(9)
	c.SetEnabled(false)

	before := rec.writes
	c.Update(100)

	if got := c.Time(); got != 9 {
		t.Errorf("disabled clock advanced to %v", got)
	}
	if rec.writes == before {
		t.Error("disabled Update should still write lighting")
	}
}

func TestNoonLightingSnapshot(t *testing.T) {
	rec := &sinkRecorder{}
	c := New(rec) // defaults: noon, intensity multiplier 1
	c.SetTimeSpeed(0)
	c.Update(0.016)

	if rec.sun.Intensity != 2.0 {
		t.Errorf("directional intensity = %v, want 2.0", rec.sun.Intensity)
	}
	if rec.sun.Color != presets[noon].Sun {
		t.Errorf("directional color = %+v, want noon sun color", rec.sun.Color)
	}
	if !rec.visible {
		t.Error("sun marker should be visible at noon")
	}
	if rec.hemi.Ground != presets[noon].Ambient {
		t.Errorf("hemisphere ground = %+v, want noon ambient", rec.hemi.Ground)
	}
}

func TestGlobalIntensityScalesPreset(t *testing.T) {
	rec := &sinkRecorder{}
	c := New(rec)
	c.SetSunIntensity(0.5)
	c.Update(0)

	if got := rec.sun.Intensity; got != 1.0 {
		t.Errorf("scaled intensity = %v, want 1.0", got)
	}
}
