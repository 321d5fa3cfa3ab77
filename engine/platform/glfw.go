package platform

import (
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/tessera/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// GLFWBackend is the Backend implemented on top of GLFW 3.3.
type GLFWBackend struct{}

func NewGLFWBackend() *GLFWBackend {
	return &GLFWBackend{}
}

func (b *GLFWBackend) Init() error {
	return glfw.Init()
}

func (b *GLFWBackend) Terminate() {
	glfw.Terminate()
}

func (b *GLFWBackend) Version() string {
	return glfw.GetVersionString()
}

func (b *GLFWBackend) PrimaryMonitorContentScale() (float32, float32) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 1, 1
	}
	return monitor.GetContentScale()
}

func (b *GLFWBackend) PrimaryMonitorVideoMode() (int, int) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 0, 0
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 0, 0
	}
	return mode.Width, mode.Height
}

func glfwBool(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func (b *GLFWBackend) CreateWindow(width, height int, title string, hints Hints) (NativeWindow, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfwBool(hints.Visible))
	glfw.WindowHint(glfw.Resizable, glfwBool(hints.Resizable))
	glfw.WindowHint(glfw.Decorated, glfwBool(hints.Decorated))
	glfw.WindowHint(glfw.ScaleToMonitor, glfwBool(hints.ScaleToMonitor))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfwBool(hints.RetinaFramebuffer))

	if hints.NoClientAPI {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, hints.ContextVersionMajor)
		glfw.WindowHint(glfw.ContextVersionMinor, hints.ContextVersionMinor)
		if hints.CoreProfile {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		}
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfwBool(hints.ForwardCompat))
		if hints.Samples > 0 {
			glfw.WindowHint(glfw.Samples, hints.Samples)
		}
		if hints.StencilBits > 0 {
			glfw.WindowHint(glfw.StencilBits, hints.StencilBits)
		}
		glfw.WindowHint(glfw.SRGBCapable, glfwBool(hints.SRGBCapable))
		glfw.WindowHint(glfw.CocoaGraphicsSwitching, glfwBool(hints.GraphicsSwitching))
		glfw.WindowHint(glfw.TransparentFramebuffer, glfw.False)
		glfw.WindowHint(glfw.Stereo, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	return &glfwWindow{handle: window}, nil
}

var glfwCursorShapes = map[StandardCursor]glfw.StandardCursor{
	StandardCursorArrow:     glfw.ArrowCursor,
	StandardCursorIBeam:     glfw.IBeamCursor,
	StandardCursorCrosshair: glfw.CrosshairCursor,
	StandardCursorHand:      glfw.HandCursor,
	StandardCursorHResize:   glfw.HResizeCursor,
	StandardCursorVResize:   glfw.VResizeCursor,
}

func (b *GLFWBackend) CreateStandardCursor(shape StandardCursor) NativeCursor {
	c := glfw.CreateStandardCursor(glfwCursorShapes[shape])
	if c == nil {
		return nil
	}
	return &glfwCursor{handle: c}
}

func (b *GLFWBackend) RawMouseMotionSupported() bool {
	return glfw.RawMouseMotionSupported()
}

func (b *GLFWBackend) PollEvents() {
	glfw.PollEvents()
}

func (b *GLFWBackend) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (b *GLFWBackend) MaxJoysticks() int {
	return int(glfw.JoystickLast) + 1
}

func (b *GLFWBackend) JoystickPresent(id int) bool {
	return glfw.Joystick(id).Present()
}

func (b *GLFWBackend) JoystickName(id int) string {
	return glfw.Joystick(id).GetName()
}

func (b *GLFWBackend) JoystickButtons(id int) []bool {
	buttons := glfw.Joystick(id).GetButtons()
	out := make([]bool, len(buttons))
	for i, state := range buttons {
		out[i] = state == glfw.Press
	}
	return out
}

func (b *GLFWBackend) JoystickAxes(id int) []float32 {
	return glfw.Joystick(id).GetAxes()
}

func (b *GLFWBackend) JoystickHats(id int) []uint8 {
	hats := glfw.Joystick(id).GetHats()
	out := make([]uint8, len(hats))
	for i, h := range hats {
		out[i] = uint8(h)
	}
	return out
}

type glfwCursor struct {
	handle *glfw.Cursor
}

func (c *glfwCursor) Destroy() {
	c.handle.Destroy()
}

type glfwWindow struct {
	handle *glfw.Window
}

func (w *glfwWindow) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func glfwAction(action glfw.Action) Action {
	switch action {
	case glfw.Press:
		return ActionPress
	case glfw.Repeat:
		return ActionRepeat
	default:
		return ActionRelease
	}
}

func glfwMouseButton(button glfw.MouseButton) core.Button {
	switch button {
	case glfw.MouseButtonLeft:
		return core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE
	default:
		return core.BUTTON_MAX_BUTTONS
	}
}

func (w *glfwWindow) SetCallbacks(cb *Callbacks) {
	w.handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		cb.Size(width, height)
	})
	w.handle.SetCloseCallback(func(_ *glfw.Window) {
		cb.Close()
	})
	w.handle.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		cb.Focus(focused)
	})
	w.handle.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		cb.Iconify(iconified)
	})
	w.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		cb.Key(glfwKeyToKeyCode(key), glfwAction(action))
	})
	w.handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		cb.MouseButton(glfwMouseButton(button), glfwAction(action))
	})
	w.handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		cb.Scroll(xoff, yoff)
	})
	w.handle.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		cb.CursorPos(xpos, ypos)
	})
	w.handle.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		cb.CursorEnter(entered)
	})
	w.handle.SetCharCallback(func(_ *glfw.Window, char rune) {
		cb.Char(char)
	})
	w.handle.SetDropCallback(func(_ *glfw.Window, names []string) {
		cb.Drop(names)
	})
}

func (w *glfwWindow) MakeContextCurrent() {
	w.handle.MakeContextCurrent()
}

func (w *glfwWindow) SetRawMouseMotion(enabled bool) {
	w.handle.SetInputMode(glfw.RawMouseMotion, glfwBool(enabled))
}

func (w *glfwWindow) SetStickyKeys(enabled bool) {
	w.handle.SetInputMode(glfw.StickyKeysMode, glfwBool(enabled))
}

func (w *glfwWindow) SetIcon(images []image.Image) {
	w.handle.SetIcon(images)
}

func (w *glfwWindow) SetTitle(title string) {
	w.handle.SetTitle(title)
}

func (w *glfwWindow) SetCursorMode(mode CursorMode) {
	switch mode {
	case CursorModeDisabled:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	case CursorModeHidden:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	default:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *glfwWindow) CursorMode() CursorMode {
	switch w.handle.GetInputMode(glfw.CursorMode) {
	case glfw.CursorDisabled:
		return CursorModeDisabled
	case glfw.CursorHidden:
		return CursorModeHidden
	default:
		return CursorModeNormal
	}
}

func (w *glfwWindow) SetCursorPos(x, y float64) {
	w.handle.SetCursorPos(x, y)
}

func (w *glfwWindow) SetCursor(c NativeCursor) {
	gc, ok := c.(*glfwCursor)
	if !ok || gc == nil {
		w.handle.SetCursor(nil)
		return
	}
	w.handle.SetCursor(gc.handle)
}

func (w *glfwWindow) Maximize() {
	w.handle.Maximize()
}

func (w *glfwWindow) SwapBuffers() {
	w.handle.SwapBuffers()
}

func (w *glfwWindow) Destroy() {
	w.handle.Destroy()
}
