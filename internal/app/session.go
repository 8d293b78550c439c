package app

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/physdraw/internal/engine/camera"
	"github.com/Faultbox/physdraw/internal/engine/color"
	"github.com/Faultbox/physdraw/internal/engine/debugdraw"
	"github.com/Faultbox/physdraw/internal/engine/gpu"
	"github.com/Faultbox/physdraw/internal/engine/screenshot"
	"github.com/Faultbox/physdraw/internal/physics"
	"github.com/Faultbox/physdraw/pkg/math"
)

// Keys reports keyboard state for the current frame.
type Keys interface {
	IsKeyDown(scancode sdl.Scancode) bool
	IsKeyPressed(scancode sdl.Scancode) bool
}

// Function keys toggle debug draw flags at runtime.
var toggleKeys = []struct {
	key  sdl.Scancode
	flag debugdraw.Flags
}{
	{sdl.SCANCODE_F1, debugdraw.DrawShapes},
	{sdl.SCANCODE_F2, debugdraw.DrawConstraints},
	{sdl.SCANCODE_F3, debugdraw.DrawCollisionPoints},
	{sdl.SCANCODE_F4, debugdraw.DrawTransforms},
	{sdl.SCANCODE_F5, debugdraw.DrawAABBs},
}

// SessionConfig holds the view and draw settings of a session.
type SessionConfig struct {
	Width, Height int
	Center        math.Vec2
	Follow        bool
	// FollowBody names the body the camera follows. Empty means the
	// tracked body. Setting it implies Follow.
	FollowBody string
	PanStep    float32
	Flags      debugdraw.Flags
}

// CheckFollowBody reports an error if name is set but the world has no
// body of that name.
func CheckFollowBody(world *physics.World, name string) error {
	if name == "" {
		return nil
	}
	if _, ok := world.BodyPosition(name); !ok {
		return fmt.Errorf("follow body %q is not in the scene", name)
	}
	return nil
}

// Session is one rendering session: a camera looking at a physics world
// through a debug drawer. It owns no window, so it runs against any
// gpu.Backend.
type Session struct {
	backend gpu.Backend
	camera  *camera.Camera
	draw    *debugdraw.DebugDraw
	world   *physics.World
	follow  bool
	target  string
	panStep float32
}

// NewSession creates the drawer's GPU resources. The backend's context must
// be current.
func NewSession(backend gpu.Backend, world *physics.World, cfg SessionConfig) *Session {
	cam := camera.New(cfg.Width, cfg.Height)
	cam.Center = cfg.Center

	dd := debugdraw.New(backend, cam)
	dd.SetFlags(cfg.Flags)
	dd.Create()

	backend.Viewport(cam.Width, cam.Height)

	return &Session{
		backend: backend,
		camera:  cam,
		draw:    dd,
		world:   world,
		follow:  cfg.Follow || cfg.FollowBody != "",
		target:  cfg.FollowBody,
		panStep: cfg.PanStep,
	}
}

// Control applies the keyboard: Left/Right pan the camera, Up pushes the
// tracked body and F1-F5 toggle draw flags.
func (s *Session) Control(keys Keys) {
	for _, t := range toggleKeys {
		if keys.IsKeyPressed(t.key) {
			s.ToggleFlags(t.flag)
		}
	}
	if keys.IsKeyDown(sdl.SCANCODE_LEFT) {
		s.camera.Pan(-s.panStep)
	}
	if keys.IsKeyDown(sdl.SCANCODE_RIGHT) {
		s.camera.Pan(s.panStep)
	}
	if keys.IsKeyDown(sdl.SCANCODE_UP) {
		s.world.ApplyImpulse()
	}
}

// Frame steps the simulation and renders one frame into the backbuffer.
func (s *Session) Frame() debugdraw.FrameStats {
	s.world.Step()
	if s.follow {
		if p, ok := s.followed(); ok {
			s.camera.Follow(p)
		}
	}

	s.backend.Clear(color.Background)
	s.world.Draw(s.draw)
	s.draw.Flush()
	return s.draw.TakeStats()
}

func (s *Session) followed() (math.Vec2, bool) {
	if s.target != "" {
		return s.world.BodyPosition(s.target)
	}
	return s.world.TrackedPosition()
}

// Capture saves the rendered frame. Call it between Frame and the swap.
func (s *Session) Capture(c *screenshot.Capturer) (string, error) {
	w, h := s.camera.Width, s.camera.Height
	return c.Save(s.backend.ReadPixels(w, h), w, h)
}

// Resize updates the viewport. The visible world area does not change.
func (s *Session) Resize(width, height int) {
	s.camera.Resize(width, height)
	s.backend.Viewport(width, height)
}

// Camera returns the session camera.
func (s *Session) Camera() *camera.Camera { return s.camera }

// ToggleFlags flips debug draw flags.
func (s *Session) ToggleFlags(f debugdraw.Flags) {
	if s.draw.Flags().Has(f) {
		s.draw.ClearFlags(f)
	} else {
		s.draw.AppendFlags(f)
	}
}

// Flags returns the active debug draw flags.
func (s *Session) Flags() debugdraw.Flags { return s.draw.Flags() }

// Close releases GPU resources.
func (s *Session) Close() {
	s.draw.Destroy()
}
