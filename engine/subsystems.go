package engine

import (
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
	"github.com/spaghettifunk/gamecore/engine/renderer/metadata"
)

// Graphics owns the frame buffers and presentation.
type Graphics interface {
	Initialize(window platform.Window) error
	// Resize recreates the size dependent buffers.
	Resize(width uint32, height uint32) error
	// Overlay is the UI surface composited over the scene.
	Overlay() metadata.Surface
	BeginUI(label string) metadata.UIContext
	// Present shows the composed frame. It may block briefly for display sync.
	Present() error
	// Idle waits for outstanding work, before the application cleans up.
	Idle() error
	Shutdown() error
}

type Profiler interface {
	// Update is called once at the start of every frame.
	Update()
}

type FrameTimer interface {
	Start()
	// Reset makes the next Tick ignore the time since the last one. That Tick
	// still returns a positive delta.
	Reset()
	// Tick returns the seconds elapsed since the previous frame.
	Tick() float64
}

type InputSystem interface {
	Initialize() error
	Shutdown() error
	Update(deltaTime float64)
	ProcessKey(key core.KeyCode, pressed bool)
	// IsFirstPressed reports whether the key went down in this frame.
	IsFirstPressed(key core.KeyCode) bool
}

type Tuning interface {
	Initialize() error
	Shutdown() error
	Update(deltaTime float64)
	// Display draws the tuning overlay inside the given rectangle.
	Display(ui metadata.UIContext, x, y, width, height float32)
}

type PostEffects interface {
	Render() error
}

// Subsystems are the collaborators the frame body calls. Nil members other
// than Graphics are replaced by the default implementations.
type Subsystems struct {
	Graphics    Graphics
	Profiler    Profiler
	Timer       FrameTimer
	Input       InputSystem
	Tuning      Tuning
	PostEffects PostEffects
}

type noPostEffects struct{}

func (noPostEffects) Render() error { return nil }
