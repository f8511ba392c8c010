package platform

import "time"

// Geometry is the outer position and the client size of a window.
type Geometry struct {
	X      int
	Y      int
	Width  uint32
	Height uint32
}

type WindowConfig struct {
	// The class registered with RegisterClass.
	ClassName string
	Title     string
	X         int
	Y         int
	Width     uint32
	Height    uint32
	// Minimum client size the user can drag the window to.
	MinWidth  uint32
	MinHeight uint32
}

// Platform is the host window system runtime.
type Platform interface {
	// Initialize brings up the platform runtime. It must run on the main thread.
	Initialize() error
	Terminate() error
	// RegisterClass prepares the window class every window of this process uses.
	RegisterClass(name string) error
	CreateWindow(config WindowConfig) (Window, error)
}

// Window is the native window owned by the run loop.
type Window interface {
	// ClientSize is the current drawable size in pixels.
	ClientSize() (uint32, uint32)
	Geometry() Geometry
	// ApplyFullscreen switches to a borderless, topmost window covering the
	// monitor. On error the window is left as it was.
	ApplyFullscreen() error
	// ApplyWindowed restores the decorated window style at the given geometry.
	ApplyWindowed(g Geometry)
	// Show makes the window visible, covering the monitor when fullscreen is
	// set. The error reports a fullscreen request that could not be applied;
	// the window is shown either way.
	Show(fullscreen bool) error
	// PollNotifications pushes every pending notification onto q. With a zero
	// wait it never blocks; otherwise it may wait up to wait for the first one.
	PollNotifications(q *NotificationQueue, wait time.Duration)
	// AcknowledgeSuspend answers a power suspend query.
	AcknowledgeSuspend()
	Destroy()
}
