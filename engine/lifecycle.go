package engine

import (
	"fmt"

	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Window and application are up, notifications are handled
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Everything has been torn down
	EngineStageTerminated
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting-down"
	case EngineStageTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type LifecycleEventType uint8

const (
	EventSuspend LifecycleEventType = iota
	EventResume
	EventActivate
	EventDeactivate
	EventResize
	EventDestroy
)

func (t LifecycleEventType) String() string {
	switch t {
	case EventSuspend:
		return "suspend"
	case EventResume:
		return "resume"
	case EventActivate:
		return "activate"
	case EventDeactivate:
		return "deactivate"
	case EventResize:
		return "resize"
	case EventDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// LifecycleEvent is the platform independent outcome of a notification.
type LifecycleEvent struct {
	Type LifecycleEventType
	// EventResize only
	Width  uint32
	Height uint32
}

func (e LifecycleEvent) String() string {
	if e.Type == EventResize {
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	}
	return e.Type.String()
}

// Code maps the event to the engine event bus code.
func (e LifecycleEvent) Code() core.EventCode {
	switch e.Type {
	case EventSuspend:
		return core.EventCodeSuspend
	case EventResume:
		return core.EventCodeResume
	case EventActivate:
		return core.EventCodeActivate
	case EventDeactivate:
		return core.EventCodeDeactivate
	case EventResize:
		return core.EventCodeResized
	default:
		return core.EventCodeDestroy
	}
}

type WindowState struct {
	Handle            platform.Window
	Width             uint32
	Height            uint32
	IsFullscreen      bool
	IsRunning         bool
	IsMinimized       bool
	IsSuspended       bool
	IsInResizeGesture bool
}

// Lifecycle is the window lifecycle state machine. It is owned by the run
// loop and only mutated through Translate and the stage transitions.
type Lifecycle struct {
	state WindowState
	stage Stage

	defaultWidth  uint32
	defaultHeight uint32
	// windowed geometry remembered while fullscreen
	windowed *platform.Geometry
}

func NewLifecycle(defaultWidth, defaultHeight uint32) *Lifecycle {
	return &Lifecycle{
		stage:         EngineStageUninitialized,
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}
}

// State returns a copy of the current window state.
func (l *Lifecycle) State() WindowState {
	return l.state
}

func (l *Lifecycle) Stage() Stage {
	return l.stage
}

// Attach records the freshly created window. Notifications are still ignored
// until Start is called.
func (l *Lifecycle) Attach(window platform.Window, fullscreen bool) {
	l.state.Handle = window
	l.state.Width, l.state.Height = window.ClientSize()
	l.state.IsFullscreen = fullscreen
}

// Start marks the application as running.
func (l *Lifecycle) Start() {
	l.state.IsRunning = true
	l.stage = EngineStageRunning
}

// BeginShutdown stops notification handling ahead of the teardown.
func (l *Lifecycle) BeginShutdown() {
	l.state.IsRunning = false
	l.stage = EngineStageShuttingDown
}

// Terminate forgets the window once it has been destroyed.
func (l *Lifecycle) Terminate() {
	l.state.IsRunning = false
	l.state.Handle = nil
	l.stage = EngineStageTerminated
}

// Translate applies a platform notification to the window state and returns
// the lifecycle events to dispatch. Every combination of notification and
// state is accepted; the ones that do not apply produce no events.
func (l *Lifecycle) Translate(n platform.Notification) []LifecycleEvent {
	s := &l.state

	switch n.Kind {
	case platform.NotifySizeChanged:
		if n.Minimized {
			if s.IsMinimized || !s.IsRunning {
				return nil
			}
			var events []LifecycleEvent
			if !s.IsSuspended {
				events = append(events, LifecycleEvent{Type: EventSuspend})
			}
			s.IsSuspended = true
			s.IsMinimized = true
			return events
		}
		if s.IsMinimized {
			s.IsMinimized = false
			var events []LifecycleEvent
			if s.IsSuspended && s.IsRunning {
				events = append(events, LifecycleEvent{Type: EventResume})
			}
			s.IsSuspended = false
			return events
		}
		if s.IsInResizeGesture || !s.IsRunning {
			return nil
		}
		return l.resized(n.Width, n.Height)

	case platform.NotifyResizeGestureBegin:
		s.IsInResizeGesture = true
		return nil

	case platform.NotifyResizeGestureEnd:
		s.IsInResizeGesture = false
		if !s.IsRunning || s.Handle == nil {
			return nil
		}
		width, height := s.Handle.ClientSize()
		return l.resized(width, height)

	case platform.NotifyActivated:
		if !s.IsRunning {
			return nil
		}
		return []LifecycleEvent{{Type: EventActivate}}

	case platform.NotifyDeactivated:
		if !s.IsRunning {
			return nil
		}
		return []LifecycleEvent{{Type: EventDeactivate}}

	case platform.NotifyPowerSuspendQuery:
		var events []LifecycleEvent
		if !s.IsSuspended && s.IsRunning {
			events = append(events, LifecycleEvent{Type: EventSuspend})
			s.IsSuspended = true
		}
		// the platform waits for an answer whatever the state
		if s.Handle != nil {
			s.Handle.AcknowledgeSuspend()
		}
		return events

	case platform.NotifyPowerResume:
		if s.IsMinimized {
			return nil
		}
		var events []LifecycleEvent
		if s.IsSuspended && s.IsRunning {
			events = append(events, LifecycleEvent{Type: EventResume})
		}
		s.IsSuspended = false
		return events

	case platform.NotifyFullscreenToggle:
		l.toggleFullscreen()
		return nil

	case platform.NotifyDestroy:
		return []LifecycleEvent{{Type: EventDestroy}}
	}

	core.LogDebug("ignoring notification %s", n)
	return nil
}

func (l *Lifecycle) resized(width, height uint32) []LifecycleEvent {
	l.state.Width = width
	l.state.Height = height
	return []LifecycleEvent{{Type: EventResize, Width: width, Height: height}}
}

// toggleFullscreen flips the fullscreen flag together with the window style
// and geometry.
func (l *Lifecycle) toggleFullscreen() {
	s := &l.state
	if s.Handle == nil {
		core.LogDebug("fullscreen toggle without a window, ignored")
		return
	}

	if s.IsFullscreen {
		g := platform.Geometry{Width: l.defaultWidth, Height: l.defaultHeight}
		if l.windowed != nil {
			g = *l.windowed
		} else {
			// keep the current position, only the size falls back to the default
			current := s.Handle.Geometry()
			g.X, g.Y = current.X, current.Y
		}
		s.Handle.ApplyWindowed(g)
		l.windowed = nil
	} else {
		g := s.Handle.Geometry()
		if err := s.Handle.ApplyFullscreen(); err != nil {
			core.LogWarn("staying windowed: %s", err)
			return
		}
		l.windowed = &g
	}
	s.IsFullscreen = !s.IsFullscreen
	core.LogDebug("fullscreen: %t", s.IsFullscreen)
}
