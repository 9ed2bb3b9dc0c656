// Package obj parses Wavefront OBJ models and their MTL material libraries.
// Parsing is best-effort: unknown statements are skipped, missing normals
// are derived from face winding, and material problems are collected as
// warnings instead of failing the load.
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/vitrine/pkg/math"
)

// OBJ parse errors.
var (
	ErrNoGeometry = errors.New("model has no faces")
	ErrFaceIndex  = errors.New("face index out of range")
)

// Vertex is one expanded triangle corner.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Group is a run of triangles sharing one material.
type Group struct {
	Name     string
	Material string
	Vertices []Vertex // length is a multiple of 3
}

// Interleaved returns the vertices as position/normal/uv float32 triplets
// laid out for GPU upload (8 floats per vertex).
func (g *Group) Interleaved() []float32 {
	out := make([]float32, 0, len(g.Vertices)*8)
	for _, v := range g.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.UV.X, v.UV.Y,
		)
	}
	return out
}

// Model is a parsed OBJ file with its resolved materials.
type Model struct {
	Name      string
	Groups    []Group
	Materials map[string]*Material

	// Dir is the directory the model was loaded from, used to resolve
	// texture paths. Empty for models parsed from memory.
	Dir string

	// Warnings lists non-fatal problems hit during the load, such as an
	// unreadable material library.
	Warnings []string

	mtlLibs []string
}

// TriangleCount returns the total number of triangles across all groups.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Groups {
		n += len(m.Groups[i].Vertices) / 3
	}
	return n
}

// VertexCount returns the total number of expanded vertices.
func (m *Model) VertexCount() int {
	n := 0
	for i := range m.Groups {
		n += len(m.Groups[i].Vertices)
	}
	return n
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Model) Bounds() (min, max math.Vec3) {
	first := true
	for gi := range m.Groups {
		for _, v := range m.Groups[gi].Vertices {
			p := v.Position
			if first {
				min, max = p, p
				first = false
				continue
			}
			if p.X < min.X {
				min.X = p.X
			}
			if p.Y < min.Y {
				min.Y = p.Y
			}
			if p.Z < min.Z {
				min.Z = p.Z
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Y > max.Y {
				max.Y = p.Y
			}
			if p.Z > max.Z {
				max.Z = p.Z
			}
		}
	}
	return min, max
}

// Center returns the middle of the bounding box.
func (m *Model) Center() math.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Parse parses OBJ text. name is used for the model and error messages.
func Parse(data []byte, name string) (*Model, error) {
	m := &Model{
		Name:      name,
		Materials: make(map[string]*Material),
	}

	var (
		positions []math.Vec3
		uvs       []math.Vec2
		normals   []math.Vec3

		groupName = "default"
		material  string
		current   *Group
	)

	// group returns the group collecting faces for the current
	// name/material pair, starting a new one when either changed.
	group := func() *Group {
		if current == nil || current.Name != groupName || current.Material != material {
			m.Groups = append(m.Groups, Group{Name: groupName, Material: material})
			current = &m.Groups[len(m.Groups)-1]
		}
		return current
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			uvs = append(uvs, uv)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if err := parseFace(fields[1:], positions, uvs, normals, group()); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "o", "g":
			if len(fields) > 1 {
				groupName = fields[1]
			}
		case "usemtl":
			if len(fields) > 1 {
				material = fields[1]
			}
		case "mtllib":
			m.mtlLibs = append(m.mtlLibs, fields[1:]...)
		}
		// Anything else (s, l, p, parameter-space statements) is skipped.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}

	if m.TriangleCount() == 0 {
		return nil, ErrNoGeometry
	}
	return m, nil
}

// LoadFile parses an OBJ file and resolves its material libraries
// relative to the file's directory. Material library failures become
// model warnings, not errors.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	m, err := Parse(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	m.Dir = dir
	for _, lib := range m.mtlLibs {
		raw, err := os.ReadFile(filepath.Join(dir, lib))
		if err != nil {
			m.Warnings = append(m.Warnings, fmt.Sprintf("material library %s: %v", lib, err))
			continue
		}
		mats, err := ParseMTL(raw)
		if err != nil {
			m.Warnings = append(m.Warnings, fmt.Sprintf("material library %s: %v", lib, err))
			continue
		}
		for name, mat := range mats {
			m.Materials[name] = mat
		}
	}
	return m, nil
}

// parseFace expands one face statement into triangles, fanning polygons
// around the first corner.
func parseFace(tokens []string, positions []math.Vec3, uvs []math.Vec2, normals []math.Vec3, g *Group) error {
	if len(tokens) < 3 {
		return fmt.Errorf("face with %d corners", len(tokens))
	}

	corners := make([]Vertex, len(tokens))
	haveNormals := true
	for i, tok := range tokens {
		v, hasN, err := parseCorner(tok, positions, uvs, normals)
		if err != nil {
			return err
		}
		corners[i] = v
		haveNormals = haveNormals && hasN
	}

	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		if !haveNormals {
			n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
			a.Normal, b.Normal, c.Normal = n, n, n
		}
		g.Vertices = append(g.Vertices, a, b, c)
	}
	return nil
}

// parseCorner resolves one v/vt/vn reference. OBJ indices are 1-based;
// negative values count back from the end of the respective list.
func parseCorner(tok string, positions []math.Vec3, uvs []math.Vec2, normals []math.Vec3) (Vertex, bool, error) {
	parts := strings.Split(tok, "/")

	var v Vertex
	hasNormal := false

	vi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return Vertex{}, false, err
	}
	v.Position = positions[vi]

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(uvs))
		if err != nil {
			return Vertex{}, false, err
		}
		v.UV = uvs[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return Vertex{}, false, err
		}
		v.Normal = normals[ni]
		hasNormal = true
	}
	return v, hasNormal, nil
}

func resolveIndex(s string, length int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, err)
	}
	switch {
	case n > 0 && n <= length:
		return n - 1, nil
	case n < 0 && -n <= length:
		return length + n, nil
	}
	return 0, fmt.Errorf("%w: %d of %d", ErrFaceIndex, n, length)
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("want 3 components, have %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func parseVec2(fields []string) (math.Vec2, error) {
	if len(fields) < 2 {
		return math.Vec2{}, fmt.Errorf("want 2 components, have %d", len(fields))
	}
	u, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: float32(u), Y: float32(v)}, nil
}
