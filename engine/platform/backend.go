package platform

import (
	"fmt"
	"image"
	"strings"

	"github.com/spaghettifunk/tessera/engine/core"
)

// RenderAPI selects the presentation hints and whether swap interval applies.
type RenderAPI uint8

const (
	RenderAPIOpenGL RenderAPI = iota
	RenderAPIVulkan
)

func (r RenderAPI) String() string {
	switch r {
	case RenderAPIOpenGL:
		return "opengl"
	case RenderAPIVulkan:
		return "vulkan"
	default:
		return fmt.Sprintf("RenderAPI(%d)", uint8(r))
	}
}

func ParseRenderAPI(s string) (RenderAPI, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opengl", "gl", "":
		return RenderAPIOpenGL, nil
	case "vulkan", "vk":
		return RenderAPIVulkan, nil
	}
	return RenderAPIOpenGL, fmt.Errorf("unknown render api %q", s)
}

type Action uint8

const (
	ActionRelease Action = iota
	ActionPress
	ActionRepeat
)

type CursorMode uint8

const (
	CursorModeNormal CursorMode = iota
	CursorModeHidden
	CursorModeDisabled
)

// StandardCursor is a system cursor shape the native library can create.
type StandardCursor uint8

const (
	StandardCursorArrow StandardCursor = iota
	StandardCursorIBeam
	StandardCursorCrosshair
	StandardCursorHand
	StandardCursorHResize
	StandardCursorVResize
)

// Callbacks are invoked by the native window from inside PollEvents.
type Callbacks struct {
	Size        func(width, height int)
	Close       func()
	Focus       func(focused bool)
	Iconify     func(iconified bool)
	Key         func(key core.KeyCode, action Action)
	MouseButton func(button core.Button, action Action)
	Scroll      func(xOffset, yOffset float64)
	CursorPos   func(x, y float64)
	CursorEnter func(entered bool)
	Char        func(char rune)
	Drop        func(paths []string)
}

// Backend is the native windowing and input library.
type Backend interface {
	Init() error
	Terminate()
	Version() string

	PrimaryMonitorContentScale() (float32, float32)
	PrimaryMonitorVideoMode() (int, int)
	CreateWindow(width, height int, title string, hints Hints) (NativeWindow, error)
	CreateStandardCursor(shape StandardCursor) NativeCursor
	RawMouseMotionSupported() bool

	PollEvents()
	SwapInterval(interval int)

	MaxJoysticks() int
	JoystickPresent(id int) bool
	JoystickName(id int) string
	JoystickButtons(id int) []bool
	JoystickAxes(id int) []float32
	JoystickHats(id int) []uint8
}

// NativeWindow is a window handle owned by the Backend.
type NativeWindow interface {
	FramebufferSize() (int, int)
	SetCallbacks(cb *Callbacks)
	MakeContextCurrent()
	SetRawMouseMotion(enabled bool)
	SetStickyKeys(enabled bool)
	SetIcon(images []image.Image)
	SetTitle(title string)
	SetCursorMode(mode CursorMode)
	CursorMode() CursorMode
	SetCursorPos(x, y float64)
	SetCursor(c NativeCursor)
	Maximize()
	SwapBuffers()
	Destroy()
}

type NativeCursor interface {
	Destroy()
}
