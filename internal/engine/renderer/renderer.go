// Package renderer draws the scene snapshot with OpenGL: sky clear,
// reference grid, the loaded model lit by the sun and hemisphere lights,
// the sun marker, and an optional shadow depth pass.
package renderer

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/vitrine/internal/assets"
	"github.com/Faultbox/vitrine/internal/engine/debug"
	"github.com/Faultbox/vitrine/internal/engine/scene"
	"github.com/Faultbox/vitrine/internal/engine/shadow"
	"github.com/Faultbox/vitrine/internal/logger"
	"github.com/Faultbox/vitrine/pkg/math"
	"github.com/Faultbox/vitrine/pkg/obj"
)

const (
	nearPlane = 0.1
	farPlane  = 500.0

	gridExtent = 50
	markerSize = 1.5

	boundsPadding = 0.05
)

// Config holds renderer configuration.
type Config struct {
	ShowGrid   bool
	ShowBounds bool
	Shadows    bool
}

// meshGroup is one uploaded OBJ group with its resolved material.
type meshGroup struct {
	vao     uint32
	vbo     uint32
	count   int32
	diffuse [3]float32
	opacity float32
	texture uint32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	mesh  meshProgram
	flat  flatProgram
	depth depthProgram

	groups       []meshGroup
	modelVersion uint64

	textures   *assets.Cache
	textureIDs map[string]uint32

	gridVAO   uint32
	gridVBO   uint32
	gridCount int32

	markerVAO   uint32
	markerVBO   uint32
	markerCount int32

	boundsVAO   uint32
	boundsVBO   uint32
	boundsCount int32

	whiteTexture uint32

	shadowMap *shadow.Map
}

// New creates a renderer. The OpenGL context must already be current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		textures:   assets.NewCache(),
		textureIDs: make(map[string]uint32),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	gpuName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", gpuName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	if err := r.mesh.compile(); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if err := r.flat.compile(); err != nil {
		return nil, fmt.Errorf("flat shader: %w", err)
	}
	if err := r.depth.compile(); err != nil {
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	r.createGrid()
	r.createMarker()
	r.whiteTexture = createWhiteTexture()

	if cfg.Shadows {
		sm, err := shadow.NewMap(shadow.DefaultResolution)
		if err != nil {
			logger.Warn("shadow map unavailable, shadows disabled", zap.Error(err))
			r.config.Shadows = false
		} else {
			r.shadowMap = sm
		}
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.clearModel()
	if r.gridVAO != 0 {
		gl.DeleteVertexArrays(1, &r.gridVAO)
		gl.DeleteBuffers(1, &r.gridVBO)
	}
	if r.markerVAO != 0 {
		gl.DeleteVertexArrays(1, &r.markerVAO)
		gl.DeleteBuffers(1, &r.markerVBO)
	}
	if r.whiteTexture != 0 {
		gl.DeleteTextures(1, &r.whiteTexture)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	r.mesh.destroy()
	r.flat.destroy()
	r.depth.destroy()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads the current framebuffer back as RGBA bytes, rows
// bottom-to-top as OpenGL stores them.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// SetShowGrid toggles the reference grid.
func (r *Renderer) SetShowGrid(show bool) { r.config.ShowGrid = show }

// ShowGrid reports whether the reference grid is drawn.
func (r *Renderer) ShowGrid() bool { return r.config.ShowGrid }

// SetShowBounds toggles the model bounding box overlay.
func (r *Renderer) SetShowBounds(show bool) { r.config.ShowBounds = show }

// ShowBounds reports whether the bounding box overlay is drawn.
func (r *Renderer) ShowBounds() bool { return r.config.ShowBounds }

// Render draws one frame of the scene into the current framebuffer.
// width and height give the target size for the projection aspect.
func (r *Renderer) Render(sc *scene.Scene, width, height int) {
	r.syncModel(sc)

	toLight := sunDirection(sc)

	var lightSpace math.Mat4
	shadows := r.config.Shadows && r.shadowMap != nil && len(r.groups) > 0 && sc.Model != nil
	if shadows {
		min, max := sc.Model.Bounds()
		lightSpace = shadow.LightMatrix(toLight, shadow.AABB{Min: min, Max: max})
		r.renderDepthPass(lightSpace)
	}

	bg := sc.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if height < 1 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	projection := math.Perspective(sc.Camera.FOV, aspect, nearPlane, farPlane)
	view := sc.Camera.View
	model := math.Identity()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if r.config.ShowGrid {
		gridModel := math.Translate(0, sc.Ground, 0)
		r.drawFlat(r.gridVAO, gl.LINES, r.gridCount, gridModel, view, projection,
			[3]float32{0.45, 0.45, 0.5}, sc, true)
	}

	if len(r.groups) > 0 {
		p := &r.mesh
		gl.UseProgram(p.program)
		gl.UniformMatrix4fv(p.locProjection, 1, false, projection.Ptr())
		gl.UniformMatrix4fv(p.locView, 1, false, view.Ptr())
		gl.UniformMatrix4fv(p.locModel, 1, false, model.Ptr())
		gl.UniformMatrix4fv(p.locLightSpace, 1, false, lightSpace.Ptr())
		gl.Uniform3f(p.locLightDir, toLight.X, toLight.Y, toLight.Z)
		sunColor := sc.Sun.Color.Vec()
		gl.Uniform3fv(p.locLightColor, 1, &sunColor[0])
		gl.Uniform1f(p.locLightIntensity, sc.Sun.Intensity)
		skyColor := sc.Hemisphere.Sky.Vec()
		groundColor := sc.Hemisphere.Ground.Vec()
		gl.Uniform3fv(p.locSkyColor, 1, &skyColor[0])
		gl.Uniform3fv(p.locGroundColor, 1, &groundColor[0])
		fogColor := sc.Fog.Vec()
		gl.Uniform3fv(p.locFogColor, 1, &fogColor[0])
		gl.Uniform1f(p.locFogDensity, sc.FogDensity)
		cam := sc.Camera.Position
		gl.Uniform3f(p.locCameraPos, cam.X, cam.Y, cam.Z)
		gl.Uniform1i(p.locTexture, 0)
		gl.Uniform1i(p.locShadowMap, 1)
		setBool(p.locShadows, shadows)

		if shadows {
			r.shadowMap.BindTexture(gl.TEXTURE1)
		}
		gl.ActiveTexture(gl.TEXTURE0)

		for _, g := range r.groups {
			gl.Uniform3fv(p.locDiffuse, 1, &g.diffuse[0])
			gl.Uniform1f(p.locOpacity, g.opacity)
			tex := g.texture
			if tex == 0 {
				tex = r.whiteTexture
			}
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.BindVertexArray(g.vao)
			gl.DrawArrays(gl.TRIANGLES, 0, g.count)
		}
		gl.BindVertexArray(0)
	}

	if r.config.ShowBounds && r.boundsCount > 0 {
		r.drawFlat(r.boundsVAO, gl.LINES, r.boundsCount, model, view, projection,
			[3]float32{1, 0.65, 0.2}, sc, false)
	}

	if sc.Marker.Visible {
		pos := sc.Sun.Position
		markerModel := math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(markerSize, markerSize, markerSize))
		r.drawFlat(r.markerVAO, gl.TRIANGLES, r.markerCount, markerModel, view, projection,
			sc.Marker.Color.Vec(), sc, false)
	}

	gl.Disable(gl.BLEND)
}

// renderDepthPass draws the model into the shadow map from the light's
// point of view.
func (r *Renderer) renderDepthPass(lightSpace math.Mat4) {
	r.shadowMap.Bind()

	gl.UseProgram(r.depth.program)
	gl.UniformMatrix4fv(r.depth.locLightSpace, 1, false, lightSpace.Ptr())
	model := math.Identity()
	gl.UniformMatrix4fv(r.depth.locModel, 1, false, model.Ptr())

	for _, g := range r.groups {
		gl.BindVertexArray(g.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, g.count)
	}
	gl.BindVertexArray(0)

	r.shadowMap.Unbind()
}

// drawFlat draws unlit geometry with a single color, optionally fogged.
func (r *Renderer) drawFlat(vao uint32, mode uint32, count int32, model, view, projection math.Mat4, color [3]float32, sc *scene.Scene, fogged bool) {
	p := &r.flat
	gl.UseProgram(p.program)
	gl.UniformMatrix4fv(p.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(p.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.locModel, 1, false, model.Ptr())
	gl.Uniform3fv(p.locColor, 1, &color[0])
	fogColor := sc.Fog.Vec()
	gl.Uniform3fv(p.locFogColor, 1, &fogColor[0])
	density := sc.FogDensity
	if !fogged {
		density = 0
	}
	gl.Uniform1f(p.locFogDensity, density)
	cam := sc.Camera.Position
	gl.Uniform3f(p.locCameraPos, cam.X, cam.Y, cam.Z)

	gl.BindVertexArray(vao)
	gl.DrawArrays(mode, 0, count)
	gl.BindVertexArray(0)
}

// syncModel re-uploads mesh buffers when the scene swapped its model.
func (r *Renderer) syncModel(sc *scene.Scene) {
	if sc.ModelVersion == r.modelVersion {
		return
	}
	r.modelVersion = sc.ModelVersion
	r.clearModel()

	if sc.Model == nil {
		return
	}

	for gi := range sc.Model.Groups {
		g := &sc.Model.Groups[gi]
		if len(g.Vertices) == 0 {
			continue
		}
		r.groups = append(r.groups, r.uploadGroup(sc.Model, g))
	}

	min, max := sc.Model.Bounds()
	r.uploadBounds(min, max)

	logger.Info("model uploaded",
		zap.String("model", sc.Model.Name),
		zap.Int("groups", len(r.groups)),
		zap.Int("triangles", sc.Model.TriangleCount()),
	)
}

// uploadBounds builds the bounding box wireframe for the current model.
func (r *Renderer) uploadBounds(min, max math.Vec3) {
	verts := debug.BoxWireframe(min, max, boundsPadding)
	r.boundsCount = int32(len(verts) / 3)

	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)
	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// uploadGroup uploads one group's interleaved vertices and resolves its
// material into draw parameters.
func (r *Renderer) uploadGroup(m *obj.Model, g *obj.Group) meshGroup {
	data := g.Interleaved()

	mg := meshGroup{
		count:   int32(len(g.Vertices)),
		diffuse: [3]float32{0.8, 0.8, 0.8},
		opacity: 1,
	}

	gl.GenVertexArrays(1, &mg.vao)
	gl.BindVertexArray(mg.vao)

	gl.GenBuffers(1, &mg.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mg.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	// Interleaved layout: position, normal, uv (8 floats per vertex)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 32, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 32, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, 32, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	mat := m.Materials[g.Material]
	if mat == nil {
		return mg
	}
	mg.diffuse = mat.Diffuse
	mg.opacity = mat.Opacity
	if mat.DiffuseMap != "" {
		mg.texture = r.loadTexture(m.Dir, mat.DiffuseMap)
	}
	return mg
}

// loadTexture resolves a material texture to a GL texture, decoding
// through the asset cache and reusing the upload when several groups
// share one map. Returns 0 when the file cannot be used.
func (r *Renderer) loadTexture(dir, name string) uint32 {
	path := name
	if dir != "" {
		path = filepath.Join(dir, name)
	}
	path = filepath.Clean(path)

	if id, ok := r.textureIDs[path]; ok {
		return id
	}

	var id uint32
	img, err := r.textures.Image(path)
	if err != nil {
		logger.Warn("texture unavailable", zap.String("path", path), zap.Error(err))
	} else {
		id = uploadTexture(img)
	}
	r.textureIDs[path] = id
	return id
}

// uploadTexture creates a mipmapped GL texture from a decoded image.
func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return texID
}

// clearModel releases the uploaded mesh buffers and their textures.
func (r *Renderer) clearModel() {
	for _, g := range r.groups {
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
		}
		if g.vbo != 0 {
			gl.DeleteBuffers(1, &g.vbo)
		}
	}
	r.groups = nil

	for _, id := range r.textureIDs {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
	r.textureIDs = make(map[string]uint32)

	if r.boundsVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boundsVAO)
		gl.DeleteBuffers(1, &r.boundsVBO)
		r.boundsVAO = 0
		r.boundsVBO = 0
		r.boundsCount = 0
	}
}

// createGrid builds the ground reference grid as a line list on y=0.
func (r *Renderer) createGrid() {
	var verts []float32
	for i := -gridExtent; i <= gridExtent; i++ {
		f := float32(i)
		verts = append(verts,
			f, 0, -gridExtent, f, 0, gridExtent, // line along Z
			-gridExtent, 0, f, gridExtent, 0, f, // line along X
		)
	}
	r.gridCount = int32(len(verts) / 3)

	gl.GenVertexArrays(1, &r.gridVAO)
	gl.BindVertexArray(r.gridVAO)
	gl.GenBuffers(1, &r.gridVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.gridVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// createMarker builds the sun disk stand-in, a small octahedron.
func (r *Renderer) createMarker() {
	top := [3]float32{0, 1, 0}
	bottom := [3]float32{0, -1, 0}
	ring := [][3]float32{
		{1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 0, -1},
	}

	var verts []float32
	addTri := func(a, b, c [3]float32) {
		verts = append(verts, a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2])
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		addTri(top, ring[i], ring[j])
		addTri(bottom, ring[j], ring[i])
	}
	r.markerCount = int32(len(verts) / 3)

	gl.GenVertexArrays(1, &r.markerVAO)
	gl.BindVertexArray(r.markerVAO)
	gl.GenBuffers(1, &r.markerVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.markerVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

func createWhiteTexture() uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	white := []uint8{255, 255, 255, 255}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return texID
}

// sunDirection returns the normalized direction toward the sun.
func sunDirection(sc *scene.Scene) math.Vec3 {
	return sc.Sun.Direction().Scale(-1)
}

func setBool(loc int32, v bool) {
	if v {
		gl.Uniform1i(loc, 1)
		return
	}
	gl.Uniform1i(loc, 0)
}
