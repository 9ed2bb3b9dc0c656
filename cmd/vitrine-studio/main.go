// Vitrine Studio - a live inspector for the day/night and locomotion
// engines: every tunable is a slider driving the same setters the
// config loader uses, with the scene rendered into a preview pane.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"

	"github.com/Faultbox/vitrine/internal/config"
	"github.com/Faultbox/vitrine/internal/engine/camera"
	"github.com/Faultbox/vitrine/internal/engine/capture"
	"github.com/Faultbox/vitrine/internal/engine/daynight"
	"github.com/Faultbox/vitrine/internal/engine/framebuffer"
	"github.com/Faultbox/vitrine/internal/engine/player"
	"github.com/Faultbox/vitrine/internal/engine/renderer"
	"github.com/Faultbox/vitrine/internal/engine/scene"
	"github.com/Faultbox/vitrine/internal/logger"
	"github.com/Faultbox/vitrine/pkg/obj"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	if err := logger.Init("info", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app := NewApp()
	defer app.Close()

	app.Run()
}

// App is the studio application state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	cfg *config.Config

	scene  *scene.Scene
	cycle  *daynight.Cycle
	player *player.Player
	rig    *camera.Rig

	renderer *renderer.Renderer
	fb       *framebuffer.Framebuffer
	capture  *capture.Capture

	modelPath    string
	pendingModel string // set from the dialog goroutine, loaded on the main thread

	fovDeg   float32
	lastTime time.Time

	statusMsg           string
	screenshotRequested bool
	glFailed            bool
}

// NewApp creates the studio: engines first, then the imgui backend and
// its window.
func NewApp() *App {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		cfg = config.Default()
	}

	app := &App{
		cfg:      cfg,
		scene:    scene.New(),
		player:   player.New(),
		rig:      camera.NewRig(),
		capture:  capture.New("screenshots", "studio"),
		lastTime: time.Now(),
	}
	app.cycle = daynight.New(app.scene)
	app.applyConfig()

	if cfg.Scene.Model != "" {
		app.pendingModel = cfg.Scene.Model
	}

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Vitrine Studio", 1280, 800)

	// Initialize OpenGL function pointers for the preview renderer
	if err := gl.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: OpenGL init failed (preview disabled): %v\n", err)
		app.glFailed = true
	}

	return app
}

// applyConfig pushes the configured tunables into the engines, the same
// way the viewer does on startup.
func (app *App) applyConfig() {
	cfg := app.cfg

	app.cycle.SetEnabled(cfg.DayNight.Enabled)
	app.cycle.SetTime(cfg.DayNight.Time)
	app.cycle.SetTimeSpeed(cfg.DayNight.TimeSpeed)
	app.cycle.SetSunIntensity(cfg.DayNight.SunIntensity)
	app.cycle.SetSunDistance(cfg.DayNight.SunDistance)
	app.cycle.SetOrbitRotation(cfg.DayNight.OrbitPitch, cfg.DayNight.OrbitYaw, cfg.DayNight.OrbitRoll)

	app.player.Scale = cfg.Player.Scale
	app.player.EyeHeight = cfg.Player.EyeHeight
	app.player.JumpForce = cfg.Player.JumpForce
	app.player.Gravity = cfg.Player.Gravity
	app.player.SetSpeed(cfg.Player.Speed)
	app.player.SetGroundLevel(cfg.Player.GroundLevel)
	app.scene.Ground = cfg.Player.GroundLevel

	mode, _ := camera.ParseMode(cfg.Camera.Mode)
	app.rig.Mode = mode
	app.rig.Sensitivity = cfg.Camera.Sensitivity
	app.rig.Distance = cfg.Camera.Distance
	app.rig.Height = cfg.Camera.Height
	app.fovDeg = cfg.Camera.FOV
}

// saveSettings collects the live engine values back into the config and
// writes it out.
func (app *App) saveSettings() {
	cfg := app.cfg

	cfg.DayNight.Enabled = app.cycle.Enabled()
	cfg.DayNight.Time = app.cycle.Time()
	cfg.DayNight.TimeSpeed = app.cycle.TimeSpeed()
	cfg.DayNight.SunIntensity = app.cycle.SunIntensity()
	cfg.DayNight.SunDistance = app.cycle.SunDistance()
	orbit := app.cycle.Orbit()
	cfg.DayNight.OrbitPitch = orbit.Pitch
	cfg.DayNight.OrbitYaw = orbit.Yaw
	cfg.DayNight.OrbitRoll = orbit.Roll

	cfg.Player.Scale = app.player.Scale
	cfg.Player.EyeHeight = app.player.EyeHeight
	cfg.Player.JumpForce = app.player.JumpForce
	cfg.Player.Gravity = app.player.Gravity
	cfg.Player.Speed = app.player.Speed()
	cfg.Player.GroundLevel = app.player.GroundLevel()

	cfg.Camera.Mode = app.rig.Mode.String()
	cfg.Camera.Sensitivity = app.rig.Sensitivity
	cfg.Camera.Distance = app.rig.Distance
	cfg.Camera.Height = app.rig.Height
	cfg.Camera.FOV = app.fovDeg

	if app.modelPath != "" {
		cfg.Scene.Model = app.modelPath
	}

	if err := cfg.Save(); err != nil {
		app.setStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	app.setStatus("Settings saved")
}

// Close cleans up resources.
func (app *App) Close() {
	if app.fb != nil {
		app.fb.Destroy()
		app.fb = nil
	}
	if app.renderer != nil {
		app.renderer.Close()
		app.renderer = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// ensurePreview lazily creates the renderer and the offscreen target,
// once the GL context exists.
func (app *App) ensurePreview() bool {
	if app.glFailed {
		return false
	}
	if app.renderer != nil {
		return true
	}

	var err error
	app.renderer, err = renderer.New(renderer.Config{
		ShowGrid: app.cfg.Graphics.ShowGrid,
		Shadows:  app.cfg.Graphics.Shadows,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating preview renderer: %v\n", err)
		app.glFailed = true
		return false
	}

	app.fb, err = framebuffer.New(512, 512)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating preview framebuffer: %v\n", err)
		app.renderer.Close()
		app.renderer = nil
		app.glFailed = true
		return false
	}

	return true
}

// openModelDialog shows a native file dialog to pick an OBJ model.
func (app *App) openModelDialog() {
	// The dialog blocks, so it runs in a goroutine; the selected path is
	// processed on the main thread in render().
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}
		app.pendingModel = filename
	}()
}

// loadModel parses an OBJ file and swaps it into the preview scene.
func (app *App) loadModel(path string) {
	m, err := obj.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		app.setStatus(fmt.Sprintf("Load failed: %v", err))
		return
	}
	for _, warn := range m.Warnings {
		fmt.Fprintf(os.Stderr, "Model warning: %s\n", warn)
	}

	app.scene.SetModel(m)
	app.modelPath = path
	app.backend.SetWindowTitle(fmt.Sprintf("Vitrine Studio - %s", filepath.Base(path)))
	app.setStatus(fmt.Sprintf("Loaded %s (%d triangles)", filepath.Base(path), m.TriangleCount()))
}

func (app *App) setStatus(msg string) {
	app.statusMsg = msg
}

// tick advances the cycle in real time and refreshes the camera
// snapshot, in the same order the viewer commits to.
func (app *App) tick() {
	now := time.Now()
	dt := float32(now.Sub(app.lastTime).Seconds())
	app.lastTime = now
	if dt > 0.1 {
		dt = 0.1
	}

	app.cycle.Update(dt)
	view := app.rig.Follow(app.player.Position, app.player.EyeOffset())
	app.scene.SetCamera(view, app.rig.Position, app.fovDeg*math32.Pi/180)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	app.tick()

	// Deferred capture so the saved frame is the one already rendered.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}

	// Process the pending dialog result on the main thread.
	if app.pendingModel != "" {
		path := app.pendingModel
		app.pendingModel = ""
		app.loadModel(path)
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Model...") {
				app.openModelDialog()
			}
			if imgui.MenuItemBool("Save Settings") {
				app.saveSettings()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	controlsWidth := float32(340)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight
	previewWidth := workSize.X - controlsWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(previewWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+previewWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderControls()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// captureScreenshot saves the preview framebuffer contents.
func (app *App) captureScreenshot() {
	if app.fb == nil {
		app.setStatus("Nothing to capture yet")
		return
	}
	w, h := app.fb.Size()
	path, err := app.capture.SavePixels(app.fb.ReadPixels(), int(w), int(h))
	if err != nil {
		app.setStatus(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	app.setStatus(fmt.Sprintf("Saved %s", path))
}
