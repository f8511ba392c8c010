package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
)

// Application is the game built on top of the run loop. Exactly one
// instance exists per process run.
type Application interface {
	// Startup acquires resources once, after the window and the engine subsystems exist.
	Startup() error
	// Cleanup mirrors Startup; called once before the subsystems shut down.
	Cleanup() error
	// Update advances the simulation by deltaTime seconds.
	Update(deltaTime float64) error
	// RenderScene renders into the primary frame buffer.
	RenderScene() error
	// RenderUI renders into the overlay surface bound on ui.
	RenderUI(ui metadata.UIContext) error
}

// LifecycleHandler can be implemented by an Application to observe window
// lifecycle callbacks.
type LifecycleHandler interface {
	OnSuspend()
	OnResume()
	OnActivate()
	OnDeactivate()
	OnResize(width uint32, height uint32)
	OnDestroy()
}

// Duration is a time.Duration written as "150ms" in configuration files.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX int `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY int `toml:"start_pos_y"`
	// Client size of the window at creation.
	DisplayWidth  uint32 `toml:"display_width"`
	DisplayHeight uint32 `toml:"display_height"`
	// Client size used when leaving fullscreen without a remembered geometry.
	DefaultWidth  uint32 `toml:"default_width"`
	DefaultHeight uint32 `toml:"default_height"`
	// Minimum client size while resizing.
	MinWidth  uint32 `toml:"min_width"`
	MinHeight uint32 `toml:"min_height"`
	// Start maximized and marked as fullscreen.
	Fullscreen bool   `toml:"fullscreen"`
	LogLevel   string `toml:"log_level"`

	VSync         bool     `toml:"vsync"`
	RefreshRate   uint32   `toml:"refresh_rate"`
	MaxFrameDelta Duration `toml:"max_frame_delta"`
	// Quiet period after the last size change that ends a resize gesture on
	// platforms that do not report gestures. Zero reports every size change.
	ResizeSettle Duration `toml:"resize_settle"`
	// How long the loop waits for notifications while suspended.
	SuspendedPollInterval Duration `toml:"suspended_poll_interval"`

	TuningFile  string `toml:"tuning_file"`
	OverlayFont string `toml:"overlay_font"`

	CPUProfile  bool   `toml:"cpu_profile"`
	ProfilePath string `toml:"profile_path"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:                  "Anima Game Engine",
		StartPosX:             100,
		StartPosY:             100,
		DisplayWidth:          1280,
		DisplayHeight:         720,
		DefaultWidth:          800,
		DefaultHeight:         600,
		MinWidth:              320,
		MinHeight:             200,
		LogLevel:              "info",
		VSync:                 true,
		RefreshRate:           60,
		MaxFrameDelta:         Duration{250 * time.Millisecond},
		ResizeSettle:          Duration{150 * time.Millisecond},
		SuspendedPollInterval: Duration{100 * time.Millisecond},
		ProfilePath:           ".",
	}
}

// LoadApplicationConfig reads a TOML configuration on top of the defaults.
// A missing file yields the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogDebug("no configuration at %s, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.DisplayWidth == 0 || c.DisplayHeight == 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.DisplayWidth, c.DisplayHeight)
	}
	if c.DefaultWidth == 0 || c.DefaultHeight == 0 {
		return fmt.Errorf("default size must be positive, got %dx%d", c.DefaultWidth, c.DefaultHeight)
	}
	if c.MinWidth > c.DisplayWidth || c.MinHeight > c.DisplayHeight {
		return fmt.Errorf("minimum size %dx%d exceeds display size %dx%d", c.MinWidth, c.MinHeight, c.DisplayWidth, c.DisplayHeight)
	}
	if c.VSync && c.RefreshRate == 0 {
		return errors.New("vsync requires a refresh rate")
	}
	if c.MaxFrameDelta.Duration < 0 || c.ResizeSettle.Duration < 0 || c.SuspendedPollInterval.Duration < 0 {
		return errors.New("durations must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *ApplicationConfig) Level() (core.LogLevel, error) {
	if c.LogLevel == "" {
		return core.InfoLevel, nil
	}
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Save writes the configuration as TOML.
func (c *ApplicationConfig) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
