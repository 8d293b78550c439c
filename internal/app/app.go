// Package app runs the physics debug view: window, input, simulation and
// renderer for one session.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/physdraw/internal/config"
	"github.com/Faultbox/physdraw/internal/engine/debugdraw"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/engine/input"
	"github.com/Faultbox/physdraw/internal/engine/screenshot"
	"github.com/Faultbox/physdraw/internal/engine/window"
	"github.com/Faultbox/physdraw/internal/logger"
	"github.com/Faultbox/physdraw/internal/physics"
	"github.com/Faultbox/physdraw/pkg/math"
)

const title = "physdraw"

// App is the application instance.
type App struct {
	cfg     *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	world   *physics.World
	session *Session
	shots   *screenshot.Capturer
	capture bool
	log     *zap.Logger
}

// New creates the window, GL backend, world and session.
func New(cfg *config.Config) (_ *App, err error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	flags, err := debugdraw.ParseFlags(cfg.Debug.Draw)
	if err != nil {
		return nil, err
	}

	a.world, err = buildWorld(cfg.Physics)
	if err != nil {
		return nil, err
	}

	if err := CheckFollowBody(a.world, cfg.Camera.FollowBody); err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL functions load only once the context exists
	backend, err := gpu.NewGL()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.session = NewSession(backend, a.world, SessionConfig{
		Width:      width,
		Height:     height,
		Center:     math.Vec2{X: cfg.Camera.CenterX, Y: cfg.Camera.CenterY},
		Follow:     cfg.Camera.Follow,
		FollowBody: cfg.Camera.FollowBody,
		PanStep:    cfg.Camera.PanStep,
		Flags:      flags,
	})

	a.input = input.New()
	a.shots = screenshot.New(cfg.Debug.ScreenshotDir, title)

	a.log.Info("app initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("flags", flags),
	)
	return a, nil
}

func buildWorld(cfg config.PhysicsConfig) (*physics.World, error) {
	scene := physics.DefaultScene()
	if cfg.SceneFile != "" {
		var err error
		scene, err = physics.LoadScene(cfg.SceneFile)
		if err != nil {
			return nil, err
		}
	}

	return physics.NewWorld(scene, physics.Settings{
		TimeStep:   cfg.TimeStep,
		Iterations: cfg.Iterations,
		Impulse:    physics.Vec{X: cfg.ImpulseX, Y: cfg.ImpulseY},
	})
}

// Run starts the main loop and returns when the window is closed or ESC
// is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	statsTimer := time.Now()
	var last debugdraw.FrameStats

	a.log.Info("starting main loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}
		before := a.session.Flags()
		a.session.Control(a.input)
		if after := a.session.Flags(); after != before {
			a.log.Debug("debug draw flags", zap.Stringer("flags", after))
		}

		// 2. Step and render
		last = a.session.Frame()

		if a.capture {
			a.capture = false
			if path, err := a.session.Capture(a.shots); err != nil {
				a.log.Warn("screenshot failed", zap.Error(err))
			} else {
				a.log.Info("screenshot saved", zap.String("path", path))
			}
		}

		// 3. Present
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(statsTimer); elapsed >= a.cfg.Debug.StatsInterval {
			a.logStats(frameCount, elapsed, last)
			frameCount = 0
			statsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		if event.Type == input.EventWindowResize {
			// Viewport is in drawable pixels, which differ from window size on HiDPI
			w, h := a.window.DrawableSize()
			a.session.Resize(w, h)
		}
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		a.running = false
		return
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
		a.capture = true
	}
}

func (a *App) logStats(frames int, elapsed time.Duration, stats debugdraw.FrameStats) {
	fields := []zap.Field{
		zap.Float64("fps", float64(frames)/elapsed.Seconds()),
		zap.Int("steps", a.world.Steps()),
		zap.Int("drawCalls", stats.DrawCalls()),
		zap.Int("triangles", stats.Triangles.Vertices/3),
		zap.Int("lines", stats.Lines.Vertices/2),
		zap.Int("points", stats.Points.Vertices),
	}
	if p, ok := a.world.TrackedPosition(); ok {
		fields = append(fields, zap.Float32("trackedX", p.X), zap.Float32("trackedY", p.Y))
	}
	a.log.Debug("frame stats", fields...)
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing app")

	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
