package core

// Key code definitions. Printable keys use their ASCII value.
type KeyCode uint16

const (
	KeyUnknown   KeyCode = 0x00
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyControl   KeyCode = 0x11
	KeyAlt       KeyCode = 0x12
	KeyPause     KeyCode = 0x13
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
	Key0         KeyCode = 0x30
	Key9         KeyCode = 0x39
	KeyA         KeyCode = 0x41
	KeyB         KeyCode = 0x42
	KeyD         KeyCode = 0x44
	KeyP         KeyCode = 0x50
	KeyS         KeyCode = 0x53
	KeyW         KeyCode = 0x57
	KeyZ         KeyCode = 0x5A
	KeyF1        KeyCode = 0x70
	KeyF5        KeyCode = 0x74
	KeyF12       KeyCode = 0x7B
	KeyMaxKeys   KeyCode = 0x100
)

// Keyboard state structure
type KeyboardState struct {
	Keys [KeyMaxKeys]bool
}

// Input tracks keyboard state per frame. Key notifications are latched as
// they arrive and become visible to queries on the next Update, so every
// query made during a frame sees the same snapshot.
type Input struct {
	events *EventBus

	latched KeyboardState
	// keys pressed since the last Update, even if already released again
	tapped KeyboardState

	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState

	initialized bool
}

// NewInput creates the input subsystem. events may be nil.
func NewInput(events *EventBus) *Input {
	return &Input{
		events: events,
	}
}

func (in *Input) Initialize() error {
	in.latched = KeyboardState{}
	in.tapped = KeyboardState{}
	in.KeyboardCurrent = KeyboardState{}
	in.KeyboardPrevious = KeyboardState{}
	in.initialized = true
	LogInfo("Input subsystem initialized.")
	return nil
}

func (in *Input) Shutdown() error {
	in.initialized = false
	return nil
}

// Update takes a new snapshot of the keyboard. Called once per frame.
func (in *Input) Update(deltaTime float64) {
	if !in.initialized {
		return
	}
	in.KeyboardPrevious = in.KeyboardCurrent
	for i := range in.KeyboardCurrent.Keys {
		in.KeyboardCurrent.Keys[i] = in.latched.Keys[i] || in.tapped.Keys[i]
	}
	in.tapped = KeyboardState{}
}

// ProcessKey records a key change reported by the platform.
func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	if !in.initialized || key >= KeyMaxKeys {
		return
	}
	// Only handle this if the state actually changed.
	if in.latched.Keys[key] == pressed {
		return
	}
	in.latched.Keys[key] = pressed
	if pressed {
		in.tapped.Keys[key] = true
	}

	if in.events == nil {
		return
	}
	code := EventCodeKeyReleased
	if pressed {
		code = EventCodeKeyPressed
	}
	// Fire off an event for immediate processing.
	in.events.Fire(EventContext{
		Type: code,
		Data: KeyEvent{KeyCode: key},
	})
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	if !in.initialized || key >= KeyMaxKeys {
		return false
	}
	return in.KeyboardCurrent.Keys[key]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.IsKeyDown(key)
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	if !in.initialized || key >= KeyMaxKeys {
		return false
	}
	return in.KeyboardPrevious.Keys[key]
}

// IsFirstPressed reports whether the key went down in the current frame.
func (in *Input) IsFirstPressed(key KeyCode) bool {
	return in.IsKeyDown(key) && !in.WasKeyDown(key)
}
