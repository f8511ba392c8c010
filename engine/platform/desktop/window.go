package desktop

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
)

// Window wraps a glfw window. Callbacks and OS signals are collected in a
// pending queue and handed over on PollNotifications.
type Window struct {
	handle  *glfw.Window
	pending *platform.NotificationQueue
	gesture gestureTracker

	iconified    bool
	suspendAcked bool
	stopSignals  func()

	now func() time.Time
}

func newWindow(handle *glfw.Window, settle time.Duration) *Window {
	return &Window{
		handle:  handle,
		pending: platform.NewNotificationQueue(),
		gesture: gestureTracker{settle: settle},
		now:     time.Now,
	}
}

func (w *Window) install() {
	w.handle.SetFramebufferSizeCallback(w.onFramebufferSize)
	w.handle.SetIconifyCallback(w.onIconify)
	w.handle.SetFocusCallback(w.onFocus)
	w.handle.SetCloseCallback(w.onClose)
	w.handle.SetKeyCallback(w.onKey)

	// signals arrive on another goroutine, wake up a blocking wait
	w.stopSignals = watchSignals(w.pending.Push, glfw.PostEmptyEvent)
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	// minimizing reports a zero size on some platforms, the iconify
	// callback covers it
	if w.iconified || width == 0 || height == 0 {
		return
	}
	if w.gesture.resized(w.now()) {
		w.pending.Push(platform.Simple(platform.NotifyResizeGestureBegin))
	}
	w.pending.Push(platform.SizeChanged(uint32(width), uint32(height)))
}

func (w *Window) onIconify(_ *glfw.Window, iconified bool) {
	w.iconified = iconified
	if iconified {
		w.pending.Push(platform.Minimized())
		return
	}
	width, height := w.ClientSize()
	w.pending.Push(platform.SizeChanged(width, height))
}

func (w *Window) onFocus(_ *glfw.Window, focused bool) {
	if focused {
		w.pending.Push(platform.Simple(platform.NotifyActivated))
	} else {
		w.pending.Push(platform.Simple(platform.NotifyDeactivated))
	}
}

func (w *Window) onClose(handle *glfw.Window) {
	// the run loop destroys the window during its teardown
	handle.SetShouldClose(false)
	w.pending.Push(platform.Simple(platform.NotifyDestroy))
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	if key == glfw.KeyEnter && action == glfw.Press && mods&glfw.ModAlt != 0 {
		w.pending.Push(platform.Simple(platform.NotifyFullscreenToggle))
		return
	}
	code := translateKey(key)
	if code == core.KeyUnknown {
		return
	}
	w.pending.Push(platform.Key(code, action == glfw.Press))
}

func (w *Window) ClientSize() (uint32, uint32) {
	width, height := w.handle.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (w *Window) Geometry() platform.Geometry {
	x, y := w.handle.GetPos()
	width, height := w.handle.GetSize()
	return platform.Geometry{X: x, Y: y, Width: uint32(width), Height: uint32(height)}
}

// ApplyFullscreen covers the primary monitor with an undecorated, floating
// window. The video mode is left untouched.
func (w *Window) ApplyFullscreen() error {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return core.ErrNoMonitor
	}
	mode := monitor.GetVideoMode()
	x, y := monitor.GetPos()

	w.handle.SetAttrib(glfw.Decorated, glfw.False)
	w.handle.SetAttrib(glfw.Floating, glfw.True)
	w.handle.SetPos(x, y)
	w.handle.SetSize(mode.Width, mode.Height)
	return nil
}

func (w *Window) ApplyWindowed(g platform.Geometry) {
	w.handle.SetAttrib(glfw.Decorated, glfw.True)
	w.handle.SetAttrib(glfw.Floating, glfw.False)
	w.handle.SetPos(g.X, g.Y)
	w.handle.SetSize(int(g.Width), int(g.Height))
}

func (w *Window) Show(fullscreen bool) error {
	var err error
	if fullscreen {
		err = w.ApplyFullscreen()
	}
	w.handle.Show()
	w.handle.Focus()
	return err
}

func (w *Window) PollNotifications(q *platform.NotificationQueue, wait time.Duration) {
	if w.suspendAcked {
		// the suspend has been dispatched, stop until SIGCONT
		w.suspendAcked = false
		stopSelf()
	}

	if wait > 0 && w.pending.Len() == 0 {
		if remaining := w.gesture.remaining(w.now()); remaining > 0 && remaining < wait {
			wait = remaining
		}
		glfw.WaitEventsTimeout(wait.Seconds())
	} else {
		glfw.PollEvents()
	}

	if w.gesture.settled(w.now()) {
		w.pending.Push(platform.Simple(platform.NotifyResizeGestureEnd))
	}

	for {
		n, ok := w.pending.Pop()
		if !ok {
			return
		}
		q.Push(n)
	}
}

// AcknowledgeSuspend lets the process stop at the start of the next poll,
// after the suspend has reached the application.
func (w *Window) AcknowledgeSuspend() {
	w.suspendAcked = true
}

func (w *Window) Destroy() {
	if w.stopSignals != nil {
		w.stopSignals()
		w.stopSignals = nil
	}
	w.handle.Destroy()
}
