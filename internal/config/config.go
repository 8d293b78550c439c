// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/physdraw/internal/engine/debugdraw"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the initial view and how it moves.
type CameraConfig struct {
	CenterX float32 `yaml:"center_x"`
	CenterY float32 `yaml:"center_y"`
	Follow  bool    `yaml:"follow"`   // track the scene's tracked body
	PanStep float32 `yaml:"pan_step"` // world units per frame while an arrow key is held

	// FollowBody names a scene body to follow instead of the tracked one.
	FollowBody string `yaml:"follow_body"`
}

// PhysicsConfig holds simulation settings.
type PhysicsConfig struct {
	TimeStep   float64 `yaml:"time_step"`
	Iterations int     `yaml:"iterations"`
	SceneFile  string  `yaml:"scene_file"` // empty uses the built-in scene
	ImpulseX   float64 `yaml:"impulse_x"`
	ImpulseY   float64 `yaml:"impulse_y"`
}

// DebugConfig holds debug draw settings.
type DebugConfig struct {
	Draw          []string      `yaml:"draw"` // shapes, constraints, collision_points, transforms, aabbs
	StatsInterval time.Duration `yaml:"stats_interval"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			CenterX: 0,
			CenterY: 20,
			Follow:  false,
			PanStep: 0.05,
		},
		Physics: PhysicsConfig{
			TimeStep:   1.0 / 30.0,
			Iterations: 10,
			ImpulseX:   1.5,
			ImpulseY:   1.5,
		},
		Debug: DebugConfig{
			Draw:          []string{"shapes", "constraints"},
			StatsInterval: time.Second,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Physics.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("physics: time_step must be positive, got %v", c.Physics.TimeStep))
	}
	if c.Physics.Iterations < 0 {
		errs = append(errs, fmt.Errorf("physics: negative iterations %d", c.Physics.Iterations))
	}
	if c.Camera.PanStep < 0 {
		errs = append(errs, fmt.Errorf("camera: negative pan_step %v", c.Camera.PanStep))
	}
	if _, err := debugdraw.ParseFlags(c.Debug.Draw); err != nil {
		errs = append(errs, fmt.Errorf("debug: %w", err))
	}
	if c.Debug.StatsInterval <= 0 {
		errs = append(errs, fmt.Errorf("debug: stats_interval must be positive, got %v", c.Debug.StatsInterval))
	}
	return errors.Join(errs...)
}
