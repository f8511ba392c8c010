package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/gamecore/engine/core"
)

var namedKeys = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:    core.KeyBackspace,
	glfw.KeyTab:          core.KeyTab,
	glfw.KeyEnter:        core.KeyEnter,
	glfw.KeyKPEnter:      core.KeyEnter,
	glfw.KeyLeftShift:    core.KeyShift,
	glfw.KeyRightShift:   core.KeyShift,
	glfw.KeyLeftControl:  core.KeyControl,
	glfw.KeyRightControl: core.KeyControl,
	glfw.KeyLeftAlt:      core.KeyAlt,
	glfw.KeyRightAlt:     core.KeyAlt,
	glfw.KeyPause:        core.KeyPause,
	glfw.KeyEscape:       core.KeyEscape,
	glfw.KeySpace:        core.KeySpace,
	glfw.KeyPageUp:       core.KeyPageUp,
	glfw.KeyPageDown:     core.KeyPageDown,
	glfw.KeyEnd:          core.KeyEnd,
	glfw.KeyHome:         core.KeyHome,
	glfw.KeyLeft:         core.KeyLeft,
	glfw.KeyUp:           core.KeyUp,
	glfw.KeyRight:        core.KeyRight,
	glfw.KeyDown:         core.KeyDown,
	glfw.KeyInsert:       core.KeyInsert,
	glfw.KeyDelete:       core.KeyDelete,
}

func translateKey(key glfw.Key) core.KeyCode {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ, key >= glfw.Key0 && key <= glfw.Key9:
		// glfw uses ASCII for these as well
		return core.KeyCode(key)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return core.KeyF1 + core.KeyCode(key-glfw.KeyF1)
	}
	if code, ok := namedKeys[key]; ok {
		return code
	}
	return core.KeyUnknown
}
