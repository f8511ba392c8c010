package core

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down at the next iteration boundary.
	EventCodeApplicationQuit EventCode = 0x01

	// Keyboard key pressed. Data: KeyEvent
	EventCodeKeyPressed EventCode = 0x02

	// Keyboard key released. Data: KeyEvent
	EventCodeKeyReleased EventCode = 0x03

	// The application is being suspended (minimized or power suspend).
	EventCodeSuspend EventCode = 0x10

	// The application resumes after a suspend.
	EventCodeResume EventCode = 0x11

	// The application gained focus.
	EventCodeActivate EventCode = 0x12

	// The application lost focus.
	EventCodeDeactivate EventCode = 0x13

	// Resized/resolution changed from the OS. Data: ResizeEvent
	EventCodeResized EventCode = 0x14

	// The window is being destroyed.
	EventCodeDestroy EventCode = 0x15

	MaxEventCode EventCode = 0xFF
)

func (c EventCode) String() string {
	switch c {
	case EventCodeApplicationQuit:
		return "quit"
	case EventCodeKeyPressed:
		return "key-pressed"
	case EventCodeKeyReleased:
		return "key-released"
	case EventCodeSuspend:
		return "suspend"
	case EventCodeResume:
		return "resume"
	case EventCodeActivate:
		return "activate"
	case EventCodeDeactivate:
		return "deactivate"
	case EventCodeResized:
		return "resized"
	case EventCodeDestroy:
		return "destroy"
	default:
		return "custom"
	}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously to the listeners registered for
// their code, in registration order.
type EventBus struct {
	registered map[EventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]*registeredEvent),
	}
}

// Register listens for events sent with the provided code. A listener can be
// registered only once per code; a duplicate returns false.
func (b *EventBus) Register(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	for _, e := range b.registered[code] {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event `%s`", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister stops the listener from receiving events with the provided code.
func (b *EventBus) Unregister(code EventCode, listener interface{}) bool {
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

// Fire sends an event to the listeners of its code. If a handler returns
// true the event is considered handled and is not passed on.
func (b *EventBus) Fire(context EventContext) bool {
	for _, e := range b.registered[context.Type] {
		if e.callback(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() {
	b.registered = make(map[EventCode][]*registeredEvent)
}
