package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/tessera/engine/core"
)

var glfwKeyCodes = map[glfw.Key]core.KeyCode{
	glfw.KeySpace:         core.KEY_SPACE,
	glfw.KeyApostrophe:    core.KEY_APOSTROPHE,
	glfw.KeyComma:         core.KEY_COMMA,
	glfw.KeyMinus:         core.KEY_MINUS,
	glfw.KeyPeriod:        core.KEY_PERIOD,
	glfw.KeySlash:         core.KEY_SLASH,
	glfw.Key0:             core.KEY_0,
	glfw.Key1:             core.KEY_1,
	glfw.Key2:             core.KEY_2,
	glfw.Key3:             core.KEY_3,
	glfw.Key4:             core.KEY_4,
	glfw.Key5:             core.KEY_5,
	glfw.Key6:             core.KEY_6,
	glfw.Key7:             core.KEY_7,
	glfw.Key8:             core.KEY_8,
	glfw.Key9:             core.KEY_9,
	glfw.KeySemicolon:     core.KEY_SEMICOLON,
	glfw.KeyEqual:         core.KEY_PLUS,
	glfw.KeyA:             core.KEY_A,
	glfw.KeyB:             core.KEY_B,
	glfw.KeyC:             core.KEY_C,
	glfw.KeyD:             core.KEY_D,
	glfw.KeyE:             core.KEY_E,
	glfw.KeyF:             core.KEY_F,
	glfw.KeyG:             core.KEY_G,
	glfw.KeyH:             core.KEY_H,
	glfw.KeyI:             core.KEY_I,
	glfw.KeyJ:             core.KEY_J,
	glfw.KeyK:             core.KEY_K,
	glfw.KeyL:             core.KEY_L,
	glfw.KeyM:             core.KEY_M,
	glfw.KeyN:             core.KEY_N,
	glfw.KeyO:             core.KEY_O,
	glfw.KeyP:             core.KEY_P,
	glfw.KeyQ:             core.KEY_Q,
	glfw.KeyR:             core.KEY_R,
	glfw.KeyS:             core.KEY_S,
	glfw.KeyT:             core.KEY_T,
	glfw.KeyU:             core.KEY_U,
	glfw.KeyV:             core.KEY_V,
	glfw.KeyW:             core.KEY_W,
	glfw.KeyX:             core.KEY_X,
	glfw.KeyY:             core.KEY_Y,
	glfw.KeyZ:             core.KEY_Z,
	glfw.KeyLeftBracket:   core.KEY_LBRACKET,
	glfw.KeyBackslash:     core.KEY_BACKSLASH,
	glfw.KeyRightBracket:  core.KEY_RBRACKET,
	glfw.KeyGraveAccent:   core.KEY_GRAVE,
	glfw.KeyEscape:        core.KEY_ESCAPE,
	glfw.KeyEnter:         core.KEY_ENTER,
	glfw.KeyTab:           core.KEY_TAB,
	glfw.KeyBackspace:     core.KEY_BACKSPACE,
	glfw.KeyInsert:        core.KEY_INSERT,
	glfw.KeyDelete:        core.KEY_DELETE,
	glfw.KeyRight:         core.KEY_RIGHT,
	glfw.KeyLeft:          core.KEY_LEFT,
	glfw.KeyDown:          core.KEY_DOWN,
	glfw.KeyUp:            core.KEY_UP,
	glfw.KeyPageUp:        core.KEY_PRIOR,
	glfw.KeyPageDown:      core.KEY_NEXT,
	glfw.KeyHome:          core.KEY_HOME,
	glfw.KeyEnd:           core.KEY_END,
	glfw.KeyCapsLock:      core.KEY_CAPITAL,
	glfw.KeyScrollLock:    core.KEY_SCROLL,
	glfw.KeyNumLock:       core.KEY_NUMLOCK,
	glfw.KeyPrintScreen:   core.KEY_SNAPSHOT,
	glfw.KeyPause:         core.KEY_PAUSE,
	glfw.KeyF1:            core.KEY_F1,
	glfw.KeyF2:            core.KEY_F2,
	glfw.KeyF3:            core.KEY_F3,
	glfw.KeyF4:            core.KEY_F4,
	glfw.KeyF5:            core.KEY_F5,
	glfw.KeyF6:            core.KEY_F6,
	glfw.KeyF7:            core.KEY_F7,
	glfw.KeyF8:            core.KEY_F8,
	glfw.KeyF9:            core.KEY_F9,
	glfw.KeyF10:           core.KEY_F10,
	glfw.KeyF11:           core.KEY_F11,
	glfw.KeyF12:           core.KEY_F12,
	glfw.KeyF13:           core.KEY_F13,
	glfw.KeyF14:           core.KEY_F14,
	glfw.KeyF15:           core.KEY_F15,
	glfw.KeyF16:           core.KEY_F16,
	glfw.KeyF17:           core.KEY_F17,
	glfw.KeyF18:           core.KEY_F18,
	glfw.KeyF19:           core.KEY_F19,
	glfw.KeyF20:           core.KEY_F20,
	glfw.KeyF21:           core.KEY_F21,
	glfw.KeyF22:           core.KEY_F22,
	glfw.KeyF23:           core.KEY_F23,
	glfw.KeyF24:           core.KEY_F24,
	glfw.KeyKP0:           core.KEY_NUMPAD0,
	glfw.KeyKP1:           core.KEY_NUMPAD1,
	glfw.KeyKP2:           core.KEY_NUMPAD2,
	glfw.KeyKP3:           core.KEY_NUMPAD3,
	glfw.KeyKP4:           core.KEY_NUMPAD4,
	glfw.KeyKP5:           core.KEY_NUMPAD5,
	glfw.KeyKP6:           core.KEY_NUMPAD6,
	glfw.KeyKP7:           core.KEY_NUMPAD7,
	glfw.KeyKP8:           core.KEY_NUMPAD8,
	glfw.KeyKP9:           core.KEY_NUMPAD9,
	glfw.KeyKPDecimal:     core.KEY_DECIMAL,
	glfw.KeyKPDivide:      core.KEY_DIVIDE,
	glfw.KeyKPMultiply:    core.KEY_MULTIPLY,
	glfw.KeyKPSubtract:    core.KEY_SUBTRACT,
	glfw.KeyKPAdd:         core.KEY_ADD,
	glfw.KeyKPEnter:       core.KEY_ENTER,
	glfw.KeyKPEqual:       core.KEY_NUMPAD_EQUAL,
	glfw.KeyLeftShift:     core.KEY_LSHIFT,
	glfw.KeyLeftControl:   core.KEY_LCONTROL,
	glfw.KeyLeftAlt:       core.KEY_LMENU,
	glfw.KeyLeftSuper:     core.KEY_LWIN,
	glfw.KeyRightShift:    core.KEY_RSHIFT,
	glfw.KeyRightControl:  core.KEY_RCONTROL,
	glfw.KeyRightAlt:      core.KEY_RMENU,
	glfw.KeyRightSuper:    core.KEY_RWIN,
	glfw.KeyMenu:          core.KEY_APPS,
}

func glfwKeyToKeyCode(key glfw.Key) core.KeyCode {
	if code, ok := glfwKeyCodes[key]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}
