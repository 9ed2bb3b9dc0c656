// Package scene holds the shared frame state: lights, sky and fog, the
// camera snapshot and the loaded model. The day/night cycle and the
// camera rig write it each tick; the renderer reads it as an immutable
// snapshot while drawing.
package scene

import (
	"github.com/Faultbox/vitrine/internal/engine/lighting"
	"github.com/Faultbox/vitrine/pkg/math"
	"github.com/Faultbox/vitrine/pkg/obj"
)

// DefaultFOV is the vertical field of view applied until config loads,
// 60 degrees in radians.
const DefaultFOV = float32(1.0471976)

// Camera is the per-frame view snapshot consumed by the renderer.
type Camera struct {
	View     math.Mat4
	Position math.Vec3
	FOV      float32 // radians
}

// SunMarker is the state of the visible sun disk.
type SunMarker struct {
	Color   lighting.Color
	Visible bool
}

// Scene is the mutable frame state container.
type Scene struct {
	Background lighting.Color
	Fog        lighting.Color
	FogDensity float32

	Sun        lighting.DirectionalLight
	Hemisphere lighting.HemisphereLight
	Marker     SunMarker

	Camera Camera

	// Ground is the height of the walk plane and the reference grid.
	Ground float32

	// Model is nil until a model is loaded. ModelVersion increments on
	// every swap so the renderer knows to refresh GPU buffers.
	Model        *obj.Model
	ModelVersion uint64
}

// New creates an empty scene with a mild fog falloff.
func New() *Scene {
	return &Scene{
		FogDensity: 0.02,
		Camera:     Camera{View: math.Identity(), FOV: DefaultFOV},
	}
}

// SetSky stores the background color.
func (s *Scene) SetSky(c lighting.Color) { s.Background = c }

// SetFog stores the fog color.
func (s *Scene) SetFog(c lighting.Color) { s.Fog = c }

// SetSun stores the directional sun light.
func (s *Scene) SetSun(l lighting.DirectionalLight) { s.Sun = l }

// SetHemisphere stores the ambient hemisphere light.
func (s *Scene) SetHemisphere(h lighting.HemisphereLight) { s.Hemisphere = h }

// SetSunMarker stores the sun disk color and visibility. The disk is
// drawn at the sun light position.
func (s *Scene) SetSunMarker(c lighting.Color, visible bool) {
	s.Marker = SunMarker{Color: c, Visible: visible}
}

// SetCamera stores the view snapshot for the coming draw.
func (s *Scene) SetCamera(view math.Mat4, position math.Vec3, fov float32) {
	s.Camera = Camera{View: view, Position: position, FOV: fov}
}

// SetModel swaps the displayed model.
func (s *Scene) SetModel(m *obj.Model) {
	s.Model = m
	s.ModelVersion++
}
