package lighting

import (
	"github.com/Faultbox/vitrine/pkg/math"
)

// DirectionalLight is a sun-style light placed in world space and aimed at
// the scene origin.
type DirectionalLight struct {
	Position  math.Vec3
	Color     Color
	Intensity float32
}

// Direction returns the normalized direction the light travels, from the
// light position toward the origin. A light at the origin yields straight
// down so shadow math never sees a zero vector.
func (l DirectionalLight) Direction() math.Vec3 {
	d := math.Vec3{}.Sub(l.Position).Normalize()
	if d == (math.Vec3{}) {
		return math.Vec3{Y: -1}
	}
	return d
}

// HemisphereLight approximates bounced sky light with separate colors for
// the upper and lower hemisphere.
type HemisphereLight struct {
	Sky    Color
	Ground Color
}
