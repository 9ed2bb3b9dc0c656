// Package viewer wires the engines, the window and the renderer into the
// interactive walkthrough application.
package viewer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/vitrine/internal/config"
	"github.com/Faultbox/vitrine/internal/engine/audio"
	"github.com/Faultbox/vitrine/internal/engine/camera"
	"github.com/Faultbox/vitrine/internal/engine/capture"
	"github.com/Faultbox/vitrine/internal/engine/daynight"
	"github.com/Faultbox/vitrine/internal/engine/input"
	"github.com/Faultbox/vitrine/internal/engine/player"
	"github.com/Faultbox/vitrine/internal/engine/renderer"
	"github.com/Faultbox/vitrine/internal/engine/scene"
	"github.com/Faultbox/vitrine/internal/engine/window"
	"github.com/Faultbox/vitrine/pkg/math"
	"github.com/Faultbox/vitrine/pkg/obj"
)

const appTitle = "Vitrine"

// maxFrameDelta caps dt so a stalled frame (window drag, breakpoint)
// does not launch the player.
const maxFrameDelta = 0.1

// App is the viewer application: engines, scene, window, renderer and
// the frame loop that drives them.
type App struct {
	config *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	scene  *scene.Scene
	cycle  *daynight.Cycle
	player *player.Player
	rig    *camera.Rig

	audio   *audio.Manager
	capture *capture.Capture
	watcher *watcher

	fov      float32 // radians
	running  bool
	wantShot bool
}

// New creates the application: window with GL context, renderer, input,
// the engines, and the collaborators configured from cfg.
func New(cfg *config.Config) (*App, error) {
	slog.Info("initializing viewer",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"model", cfg.Scene.Model,
	)

	a := &App{
		config:  cfg,
		scene:   scene.New(),
		player:  player.New(),
		rig:     camera.NewRig(),
		audio:   audio.New(),
		capture: capture.New("screenshots", "vitrine"),
	}
	a.cycle = daynight.New(a.scene)

	var err error
	a.window, err = window.New(window.Config{
		Title:      appTitle,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		ShowGrid: cfg.Graphics.ShowGrid,
		Shadows:  cfg.Graphics.Shadows,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.applyConfig()
	a.initAudio()

	if cfg.Scene.Model != "" {
		a.loadModel(cfg.Scene.Model)
		if cfg.Scene.Watch {
			a.watcher, err = newWatcher(cfg.Scene.Model)
			if err != nil {
				slog.Warn("model watching disabled", "error", err)
				a.watcher = nil
			}
		}
	}

	a.window.SetMouseCapture(true)

	slog.Info("viewer initialized")
	return a, nil
}

// applyConfig pushes the configured tunables into the engines through
// the same setters the studio drives.
func (a *App) applyConfig() {
	cfg := a.config

	a.cycle.SetEnabled(cfg.DayNight.Enabled)
	a.cycle.SetTime(cfg.DayNight.Time)
	a.cycle.SetTimeSpeed(cfg.DayNight.TimeSpeed)
	a.cycle.SetSunIntensity(cfg.DayNight.SunIntensity)
	a.cycle.SetSunDistance(cfg.DayNight.SunDistance)
	a.cycle.SetOrbitRotation(cfg.DayNight.OrbitPitch, cfg.DayNight.OrbitYaw, cfg.DayNight.OrbitRoll)

	a.player.Scale = cfg.Player.Scale
	a.player.EyeHeight = cfg.Player.EyeHeight
	a.player.JumpForce = cfg.Player.JumpForce
	a.player.Gravity = cfg.Player.Gravity
	a.player.SetSpeed(cfg.Player.Speed)
	a.player.SetGroundLevel(cfg.Player.GroundLevel)
	a.scene.Ground = cfg.Player.GroundLevel

	mode, ok := camera.ParseMode(cfg.Camera.Mode)
	if !ok {
		slog.Warn("unknown camera mode, using first person", "mode", cfg.Camera.Mode)
	}
	a.rig.Mode = mode
	a.rig.Sensitivity = cfg.Camera.Sensitivity
	a.rig.Distance = cfg.Camera.Distance
	a.rig.Height = cfg.Camera.Height
	a.fov = cfg.Camera.FOV * math32.Pi / 180
}

// initAudio opens the speaker and starts the ambience beds when any are
// configured. Failures leave the manager inert.
func (a *App) initAudio() {
	cfg := a.config.Audio
	a.audio.SetMasterVolume(float64(cfg.MasterVolume))
	a.audio.SetMuted(cfg.Muted)

	if cfg.DaySound == "" && cfg.NightSound == "" {
		return
	}
	if err := a.audio.Init(); err != nil {
		slog.Warn("audio unavailable", "error", err)
		return
	}
	a.loadAmbience(cfg.DaySound, a.audio.LoadDay, "day")
	a.loadAmbience(cfg.NightSound, a.audio.LoadNight, "night")
}

func (a *App) loadAmbience(path string, load func([]byte) error, name string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("ambience unavailable", "sound", name, "path", path, "error", err)
		return
	}
	if err := load(data); err != nil {
		slog.Warn("ambience failed", "sound", name, "path", path, "error", err)
	}
}

// loadModel parses the model and swaps it into the scene. Load failures
// keep the previous model.
func (a *App) loadModel(path string) {
	m, err := obj.LoadFile(path)
	if err != nil {
		slog.Error("model load failed", "path", path, "error", err)
		return
	}
	for _, warn := range m.Warnings {
		slog.Warn("model warning", "path", path, "warning", warn)
	}
	a.scene.SetModel(m)
	slog.Info("model loaded",
		"path", path,
		"groups", len(m.Groups),
		"triangles", m.TriangleCount(),
	)
}

// Run starts the frame loop and blocks until the viewer quits. Settings
// are written back on the way out.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	slog.Info("starting viewer loop")

	for a.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		if a.window.MouseCaptured() {
			dx, dy := a.input.MouseDelta()
			a.rig.HandleMouse(dx, dy)
		}
		a.player.Keys = a.input.PlayerKeys()

		select {
		case <-a.reloads():
			a.loadModel(a.config.Scene.Model)
		default:
		}

		a.Tick(dt)

		w, h := a.window.GetSize()
		a.renderer.Render(a.scene, w, h)
		if a.wantShot {
			a.wantShot = false
			a.screenshot(w, h)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.config.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s (%d fps)", appTitle, frameCount))
			}
			slog.Debug("fps", "count", frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if wait := frameBudget - time.Since(frameStart); wait > 0 {
				time.Sleep(wait)
			}
		}
	}

	a.saveConfig()
	return nil
}

// Tick advances one simulation step: the day/night cycle first, then the
// player, then the camera transform is pushed into the scene. Embedders
// never sequence the engines themselves.
func (a *App) Tick(dt float32) {
	a.cycle.Update(dt)
	a.player.Update(dt, a.rig)
	view := a.rig.Follow(a.player.Position, a.player.EyeOffset())
	a.scene.SetCamera(view, a.rig.Position, a.fov)
	a.updateAmbience()
}

// updateAmbience follows the sun with the audio crossfade: full day bed
// once the sun has climbed a quarter of its orbit radius, full night bed
// below the horizon.
func (a *App) updateAmbience() {
	d := a.cycle.SunDistance()
	if d <= 0 {
		return
	}
	w := a.scene.Sun.Position.Y / (0.25 * d)
	a.audio.SetDayWeight(float64(math.Clamp(w, 0, 1)))
}

func (a *App) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventWindowResize:
		a.renderer.Resize(ev.Width, ev.Height)
	case input.EventKeyDown:
		a.handleKey(ev.Key)
	case input.EventMouseDown:
		if !a.window.MouseCaptured() {
			a.window.SetMouseCapture(true)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		// First escape releases the mouse, the second quits.
		if a.window.MouseCaptured() {
			a.window.SetMouseCapture(false)
			return
		}
		a.running = false
	case sdl.SCANCODE_TAB:
		a.cycleMode()
	case sdl.SCANCODE_B:
		a.renderer.SetShowBounds(!a.renderer.ShowBounds())
	case sdl.SCANCODE_G:
		a.renderer.SetShowGrid(!a.renderer.ShowGrid())
	case sdl.SCANCODE_F12:
		a.wantShot = true
	}
}

// cycleMode steps first person -> third person -> free flight.
func (a *App) cycleMode() {
	switch a.rig.Mode {
	case camera.FirstPerson:
		a.rig.Mode = camera.ThirdPerson
	case camera.ThirdPerson:
		a.rig.Mode = camera.Free
	case camera.Free:
		a.rig.Mode = camera.FirstPerson
		// Drop the eyes back onto the mirrored position so the view
		// does not jump upward on the switch.
		a.player.Position.Y -= a.player.EyeOffset()
		a.player.Grounded = false
	}
	slog.Info("camera mode", "mode", a.rig.Mode.String())
}

// screenshot saves the frame just rendered, before it is presented.
func (a *App) screenshot(w, h int) {
	pixels := a.renderer.ReadPixels(w, h)
	path, err := a.capture.SavePixels(pixels, w, h)
	if err != nil {
		slog.Error("screenshot failed", "error", err)
		return
	}
	slog.Info("screenshot saved", "path", path)
}

// reloads returns the watcher channel, or nil (never ready) without one.
func (a *App) reloads() <-chan struct{} {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Reloads()
}

// saveConfig writes the runtime-adjusted settings back to disk.
func (a *App) saveConfig() {
	a.config.DayNight.Time = a.cycle.Time()
	a.config.Camera.Mode = a.rig.Mode.String()
	if err := a.config.Save(); err != nil {
		slog.Warn("config save failed", "error", err)
		return
	}
	slog.Info("settings saved")
}

// Close releases the application resources.
func (a *App) Close() {
	slog.Info("closing viewer")
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.audio.Close()
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
