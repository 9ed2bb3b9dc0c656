package main

import (
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"

	"github.com/Faultbox/vitrine/internal/engine/camera"
	"github.com/Faultbox/vitrine/pkg/math"
)

// lastMousePos tracks previous mouse position for drag delta calculation.
var lastMousePos imgui.Vec2

// renderPreview draws the scene into the offscreen target and displays
// it as an image, with mouse look on drag and boom zoom on wheel.
func (app *App) renderPreview() {
	if !app.ensurePreview() {
		imgui.TextDisabled("OpenGL unavailable, preview disabled")
		return
	}

	avail := imgui.ContentRegionAvail()
	if avail.X < 16 || avail.Y < 16 {
		return
	}

	app.fb.Resize(int32(avail.X), int32(avail.Y))

	restore := app.fb.Bind()
	app.renderer.Render(app.scene, int(avail.X), int(avail.Y))
	restore()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(app.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.rig.HandleMouse(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		}
		lastMousePos = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 {
			app.rig.Distance = math.Clamp(app.rig.Distance-wheel, 1, 50)
		}
	}
}

// renderControls draws the tunables panel. Every slider goes through the
// same setters the config loader uses, so a value that behaves here
// behaves the same way in the viewer.
func (app *App) renderControls() {
	if imgui.TreeNodeExStrV("Day/Night", imgui.TreeNodeFlagsDefaultOpen) {
		enabled := app.cycle.Enabled()
		if imgui.Checkbox("Run clock", &enabled) {
			app.cycle.SetEnabled(enabled)
		}

		t := app.cycle.Time()
		if imgui.SliderFloatV("Time", &t, 0, 24, "%.2f h", imgui.SliderFlagsNone) {
			app.cycle.SetTime(t)
		}

		speed := app.cycle.TimeSpeed()
		if imgui.SliderFloatV("Time speed", &speed, 0, 600, "%.0fx", imgui.SliderFlagsNone) {
			app.cycle.SetTimeSpeed(speed)
		}

		intensity := app.cycle.SunIntensity()
		if imgui.SliderFloatV("Sun intensity", &intensity, 0, 4, "%.2f", imgui.SliderFlagsNone) {
			app.cycle.SetSunIntensity(intensity)
		}

		distance := app.cycle.SunDistance()
		if imgui.SliderFloatV("Sun distance", &distance, 5, 200, "%.0f", imgui.SliderFlagsNone) {
			app.cycle.SetSunDistance(distance)
		}

		orbit := app.cycle.Orbit()
		if imgui.SliderFloatV("Orbit pitch", &orbit.Pitch, -math32.Pi, math32.Pi, "%.2f rad", imgui.SliderFlagsNone) {
			app.cycle.SetOrbitPitch(orbit.Pitch)
		}
		if imgui.SliderFloatV("Orbit yaw", &orbit.Yaw, -math32.Pi, math32.Pi, "%.2f rad", imgui.SliderFlagsNone) {
			app.cycle.SetOrbitYaw(orbit.Yaw)
		}
		if imgui.SliderFloatV("Orbit roll", &orbit.Roll, -math32.Pi, math32.Pi, "%.2f rad", imgui.SliderFlagsNone) {
			app.cycle.SetOrbitRoll(orbit.Roll)
		}

		sun := app.scene.Sun.Position
		imgui.TextDisabled(fmt.Sprintf("Sun at %.1f, %.1f, %.1f", sun.X, sun.Y, sun.Z))

		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Player", imgui.TreeNodeFlagsDefaultOpen) {
		walkSpeed := app.player.Speed()
		if imgui.SliderFloatV("Speed", &walkSpeed, 0.5, 30, "%.1f", imgui.SliderFlagsNone) {
			app.player.SetSpeed(walkSpeed)
		}

		imgui.SliderFloatV("Scale", &app.player.Scale, 0.1, 5, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Eye height", &app.player.EyeHeight, 0.5, 3, "%.2f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Jump force", &app.player.JumpForce, 1, 20, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Gravity", &app.player.Gravity, -50, -1, "%.1f", imgui.SliderFlagsNone)

		ground := app.player.GroundLevel()
		if imgui.SliderFloatV("Ground level", &ground, -10, 10, "%.1f", imgui.SliderFlagsNone) {
			app.player.SetGroundLevel(ground)
			app.scene.Ground = ground
		}

		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.Button("First") {
			app.rig.Mode = camera.FirstPerson
		}
		imgui.SameLine()
		if imgui.Button("Third") {
			app.rig.Mode = camera.ThirdPerson
		}
		imgui.SameLine()
		if imgui.Button("Free") {
			app.rig.Mode = camera.Free
		}
		imgui.SameLine()
		imgui.TextDisabled(app.rig.Mode.String())

		imgui.SliderFloatV("Sensitivity", &app.rig.Sensitivity, 0.0005, 0.01, "%.4f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Boom distance", &app.rig.Distance, 1, 50, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Boom height", &app.rig.Height, 0, 10, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("FOV", &app.fovDeg, 30, 120, "%.0f deg", imgui.SliderFlagsNone)

		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Graphics", imgui.TreeNodeFlagsDefaultOpen) {
		if app.renderer != nil {
			showGrid := app.renderer.ShowGrid()
			if imgui.Checkbox("Show grid", &showGrid) {
				app.renderer.SetShowGrid(showGrid)
			}

			showBounds := app.renderer.ShowBounds()
			if imgui.Checkbox("Show bounds", &showBounds) {
				app.renderer.SetShowBounds(showBounds)
			}
		}

		if imgui.Button("Screenshot (F12)") {
			app.screenshotRequested = true
		}

		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Scene", imgui.TreeNodeFlagsDefaultOpen) {
		if app.scene.Model != nil {
			imgui.Text(filepath.Base(app.modelPath))
			imgui.TextDisabled(fmt.Sprintf("%d groups, %d triangles",
				len(app.scene.Model.Groups), app.scene.Model.TriangleCount()))
		} else {
			imgui.TextDisabled("No model loaded")
		}
		if imgui.Button("Open Model...") {
			app.openModelDialog()
		}

		imgui.TreePop()
	}
}

// renderStatusBar draws the bottom status bar.
func (app *App) renderStatusBar() {
	imgui.Text(app.statusMsg)
	imgui.SameLine()

	t := app.cycle.Time()
	hours := int(t)
	minutes := int((t - float32(hours)) * 60)
	imgui.TextDisabled(fmt.Sprintf("| %02d:%02d | %s camera", hours, minutes, app.rig.Mode))
}
