package obj

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/vitrine/pkg/math"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const triangle = `
v 0 0 0
v 1 0 0
v 0 0 -1
f 1 2 3
`

func TestParseTriangle(t *testing.T) {
	m, err := Parse([]byte(triangle), "tri")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := m.TriangleCount(); got != 1 {
		t.Errorf("TriangleCount() = %d, want 1", got)
	}
	if got := m.VertexCount(); got != 3 {
		t.Errorf("VertexCount() = %d, want 3", got)
	}
}

func TestMissingNormalsAreDerived(t *testing.T) {
	m, err := Parse([]byte(triangle), "tri")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Counter-clockwise winding seen from above should face +Y.
	n := m.Groups[0].Vertices[0].Normal
	if n.Y < 0.999 {
		t.Errorf("derived normal = %v, want (0, 1, 0)", n)
	}
}

func TestQuadFansIntoTwoTriangles(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := Parse([]byte(src), "quad")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
}

func TestNegativeIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := Parse([]byte(src), "neg")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := m.Groups[0].Vertices[1].Position; got != (math.Vec3{X: 1}) {
		t.Errorf("second corner = %v, want (1, 0, 0)", got)
	}
}

func TestFaceIndexOutOfRange(t *testing.T) {
	src := `
v 0 0 0
f 1 2 3
`
	if _, err := Parse([]byte(src), "bad"); !errors.Is(err, ErrFaceIndex) {
		t.Errorf("Parse() error = %v, want ErrFaceIndex", err)
	}
}

func TestNoGeometry(t *testing.T) {
	if _, err := Parse([]byte("v 0 0 0\n"), "empty"); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("Parse() error = %v, want ErrNoGeometry", err)
	}
}

func TestUnknownStatementsIgnored(t *testing.T) {
	src := `
s off
# comment
v 0 0 0
v 1 0 0
v 0 1 0
vp 0.5
f 1 2 3
`
	if _, err := Parse([]byte(src), "mixed"); err != nil {
		t.Errorf("Parse() error: %v", err)
	}
}

func TestSlashSeparatedCorners(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`
	m, err := Parse([]byte(src), "full")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	v := m.Groups[0].Vertices[1]
	if v.UV != (math.Vec2{X: 1}) {
		t.Errorf("UV = %v, want (1, 0)", v.UV)
	}
	if v.Normal != (math.Vec3{Z: 1}) {
		t.Errorf("Normal = %v, want (0, 0, 1)", v.Normal)
	}
}

func TestUsemtlStartsNewGroup(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl a
f 1 2 3
usemtl b
f 1 2 3
`
	m, err := Parse([]byte(src), "mats")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(m.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(m.Groups))
	}
	if m.Groups[0].Material != "a" || m.Groups[1].Material != "b" {
		t.Errorf("materials = %q, %q; want a, b", m.Groups[0].Material, m.Groups[1].Material)
	}
}

func TestParseMTL(t *testing.T) {
	src := `
newmtl stone
Kd 0.6 0.6 0.65
Ns 24
map_Kd textures/stone base.png
`
	mats, err := ParseMTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseMTL() error: %v", err)
	}
	stone := mats["stone"]
	if stone == nil {
		t.Fatal("material stone not parsed")
	}
	if stone.Diffuse != [3]float32{0.6, 0.6, 0.65} {
		t.Errorf("Diffuse = %v", stone.Diffuse)
	}
	if stone.Shininess != 24 {
		t.Errorf("Shininess = %v, want 24", stone.Shininess)
	}
	if stone.DiffuseMap != "textures/stone base.png" {
		t.Errorf("DiffuseMap = %q", stone.DiffuseMap)
	}
}

func TestLoadFileResolvesMaterials(t *testing.T) {
	m, err := LoadFile(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if got := m.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
	if len(m.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", m.Warnings)
	}
	if _, ok := m.Materials["stone"]; !ok {
		t.Error("material stone not resolved from cube.mtl")
	}

	min, max := m.Bounds()
	if min != (math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}) || max != (math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
	if c := m.Center(); c != (math.Vec3{}) {
		t.Errorf("Center() = %v, want origin", c)
	}
}

func TestMissingMaterialLibraryIsWarning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.obj")
	writeFile(t, path, "mtllib gone.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(m.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one entry", m.Warnings)
	}
}
