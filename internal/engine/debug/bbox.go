// Package debug builds wireframe geometry for inspection overlays.
package debug

import "github.com/Faultbox/vitrine/pkg/math"

// BoxWireframeVertexCount is the number of vertices in a box wireframe
// (12 edges × 2 endpoints).
const BoxWireframeVertexCount = 24

// BoxWireframe returns line-list vertices tracing the edges of the axis
// aligned box [min, max], three floats per vertex. padding expands the
// box on all sides so the lines clear the surface they outline.
func BoxWireframe(min, max math.Vec3, padding float32) []float32 {
	minX := min.X - padding
	minY := min.Y - padding
	minZ := min.Z - padding
	maxX := max.X + padding
	maxY := max.Y + padding
	maxZ := max.Z + padding

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
