package desktop

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Options struct {
	// ResizeSettle is how long the size has to stay unchanged before a resize
	// drag is considered released. Zero reports every size change directly.
	ResizeSettle time.Duration
}

// Platform is the glfw window system runtime.
type Platform struct {
	options     Options
	initialized bool
	className   string
}

func New(options Options) *Platform {
	return &Platform{options: options}
}

func (p *Platform) Initialize() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPlatformInit, err)
	}
	p.initialized = true
	core.LogInfo("glfw %s initialized", glfw.GetVersionString())
	return nil
}

func (p *Platform) Terminate() error {
	if !p.initialized {
		return nil
	}
	glfw.Terminate()
	p.initialized = false
	return nil
}

// RegisterClass sets the hints every window of the process is created with.
// glfw has no window classes, the name is only kept for the logs.
func (p *Platform) RegisterClass(name string) error {
	if !p.initialized {
		return fmt.Errorf("%w: platform runtime not initialized", core.ErrWindowClassRegistration)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	p.className = name
	return nil
}

func (p *Platform) CreateWindow(config platform.WindowConfig) (platform.Window, error) {
	if p.className == "" || p.className != config.ClassName {
		return nil, fmt.Errorf("%w: window class %q not registered", core.ErrWindowCreation, config.ClassName)
	}

	handle, err := glfw.CreateWindow(int(config.Width), int(config.Height), config.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrWindowCreation, err)
	}
	handle.SetPos(config.X, config.Y)
	if config.MinWidth > 0 && config.MinHeight > 0 {
		handle.SetSizeLimits(int(config.MinWidth), int(config.MinHeight), glfw.DontCare, glfw.DontCare)
	}

	w := newWindow(handle, p.options.ResizeSettle)
	w.install()
	core.LogDebug("window %q created at (%d, %d) %dx%d", config.Title, config.X, config.Y, config.Width, config.Height)
	return w, nil
}
