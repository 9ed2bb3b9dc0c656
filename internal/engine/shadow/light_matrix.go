package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vitrine/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the center point of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

// LightMatrix computes the view-projection matrix for the shadow depth
// pass. toLight is the normalized direction from the scene toward the
// sun; bounds is the box the shadows must cover.
func LightMatrix(toLight math.Vec3, bounds AABB) math.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()
	if radius < 1 {
		radius = 1
	}

	lightDistance := radius * 2
	lightPos := center.Add(toLight.Scale(lightDistance))

	// Pick an up vector that is not parallel with the light.
	up := math.Vec3{Y: 1}
	if math32.Abs(toLight.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(lightPos, center, up)

	// Pad the orthographic volume a little to avoid clipping at the
	// silhouette edges.
	padding := radius * 0.1
	halfSize := radius + padding
	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, 0.1, lightDistance+radius+padding)

	return proj.Mul(view)
}
