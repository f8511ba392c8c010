package platform

import (
	"fmt"

	"github.com/spaghettifunk/gamecore/engine/core"
)

// NotificationKind identifies what the host window system reported.
type NotificationKind uint8

const (
	NotifyNone NotificationKind = iota
	// The client area changed size, or the window was minimized/restored.
	NotifySizeChanged
	// The user started an interactive resize drag.
	NotifyResizeGestureBegin
	// The user released the resize drag.
	NotifyResizeGestureEnd
	NotifyActivated
	NotifyDeactivated
	// The system asks whether it may suspend; must be acknowledged.
	NotifyPowerSuspendQuery
	NotifyPowerResume
	// The user asked to toggle fullscreen (Alt+Enter).
	NotifyFullscreenToggle
	NotifyDestroy
	NotifyKey
)

func (k NotificationKind) String() string {
	switch k {
	case NotifySizeChanged:
		return "size-changed"
	case NotifyResizeGestureBegin:
		return "resize-gesture-begin"
	case NotifyResizeGestureEnd:
		return "resize-gesture-end"
	case NotifyActivated:
		return "activated"
	case NotifyDeactivated:
		return "deactivated"
	case NotifyPowerSuspendQuery:
		return "power-suspend-query"
	case NotifyPowerResume:
		return "power-resume"
	case NotifyFullscreenToggle:
		return "fullscreen-toggle"
	case NotifyDestroy:
		return "destroy"
	case NotifyKey:
		return "key"
	default:
		return "none"
	}
}

// Notification is the platform independent form of a window system message.
type Notification struct {
	Kind NotificationKind

	// NotifySizeChanged
	Minimized bool
	Width     uint32
	Height    uint32

	// NotifyKey
	Key     core.KeyCode
	Pressed bool
}

func (n Notification) String() string {
	switch n.Kind {
	case NotifySizeChanged:
		if n.Minimized {
			return "size-changed(minimized)"
		}
		return fmt.Sprintf("size-changed(%dx%d)", n.Width, n.Height)
	case NotifyKey:
		return fmt.Sprintf("key(%d, pressed=%t)", n.Key, n.Pressed)
	default:
		return n.Kind.String()
	}
}

func SizeChanged(width, height uint32) Notification {
	return Notification{Kind: NotifySizeChanged, Width: width, Height: height}
}

func Minimized() Notification {
	return Notification{Kind: NotifySizeChanged, Minimized: true}
}

func Key(key core.KeyCode, pressed bool) Notification {
	return Notification{Kind: NotifyKey, Key: key, Pressed: pressed}
}

func Simple(kind NotificationKind) Notification {
	return Notification{Kind: kind}
}
