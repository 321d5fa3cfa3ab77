package platform

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tessera/engine/core"
)

type WindowConfig struct {
	Title         string
	Width         uint32
	Height        uint32
	Fullscreen    bool
	Borderless    bool
	VSync         bool
	RenderAPI     RenderAPI
	IconPath      string
	SmallIconPath string
}

// WindowData is the runtime state the native callbacks read and write.
type WindowData struct {
	Title         string
	Width         uint32
	Height        uint32
	DPIScale      float32
	VSync         bool
	Exit          bool
	Focused       bool
	RenderAPI     RenderAPI
	EventCallback core.EventCallback
}

type Window struct {
	library *Library
	handle  NativeWindow
	input   *core.InputState
	data    WindowData

	cursors      [cursorShapeCount]NativeCursor
	activeCursor NativeCursor
	destroyed    bool
}

// NewWindow creates a native window and bridges its callbacks into engine
// events sent to callback. A nil input state gets a private one.
func NewWindow(lib *Library, cfg WindowConfig, input *core.InputState, callback core.EventCallback) (*Window, error) {
	core.LogInfo("Creating window - Title : %s, Width : %d, Height : %d", cfg.Title, cfg.Width, cfg.Height)

	if input == nil {
		input = core.NewInputState()
	}
	if callback == nil {
		callback = func(core.Event) {}
	}

	if err := lib.acquire(); err != nil {
		return nil, err
	}

	w := &Window{
		library: lib,
		input:   input,
		data: WindowData{
			Title:         cfg.Title,
			VSync:         cfg.VSync,
			Focused:       true,
			RenderAPI:     cfg.RenderAPI,
			EventCallback: callback,
			DPIScale:      1.0,
		},
	}
	core.LogInfo("VSync : %t", w.data.VSync)

	backend := lib.Backend()
	if xscale, _ := backend.PrimaryMonitorContentScale(); xscale > 0 {
		w.data.DPIScale = xscale
	}

	width, height := int(cfg.Width), int(cfg.Height)
	if cfg.Fullscreen {
		if mw, mh := backend.PrimaryMonitorVideoMode(); mw > 0 && mh > 0 {
			width, height = mw, mh
		}
	}
	w.data.Width = uint32(width)
	w.data.Height = uint32(height)

	handle, err := backend.CreateWindow(width, height, cfg.Title, presentationHints(cfg, w.data.DPIScale, runtime.GOOS))
	if err != nil {
		lib.release()
		return nil, fmt.Errorf("%w: %v", core.ErrWindowCreation, err)
	}
	w.handle = handle

	// the framebuffer can be larger than the requested size on high DPI monitors
	fbWidth, fbHeight := handle.FramebufferSize()
	w.data.Width = uint32(fbWidth)
	w.data.Height = uint32(fbHeight)

	if cfg.RenderAPI == RenderAPIOpenGL {
		handle.MakeContextCurrent()
		backend.SwapInterval(swapInterval(cfg.VSync))
	}
	if backend.RawMouseMotionSupported() {
		handle.SetRawMouseMotion(true)
	}
	handle.SetStickyKeys(true)

	// macOS takes the icon from the bundle
	if runtime.GOOS != "darwin" && (cfg.IconPath != "" || cfg.SmallIconPath != "") {
		w.SetIcon(cfg.IconPath, cfg.SmallIconPath)
	}

	handle.SetCallbacks(w.callbacks())
	w.createCursors()

	core.LogInfo("Initialised windowing library version : %s", backend.Version())
	return w, nil
}

// Destroy releases the cursors and the native handle. The last window
// destroyed terminates the native library.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.destroyCursors()
	w.handle.Destroy()
	w.library.release()
}

func (w *Window) emit(e core.Event) {
	if e != nil {
		w.data.EventCallback(e)
	}
}

// resizeMetrics derives the DPI scale from the framebuffer width and scales
// the logical size with it. A zero width (minimised) keeps the old scale.
func resizeMetrics(width, height, fbWidth int, previousScale float32) (float32, uint32, uint32) {
	if width <= 0 || height <= 0 {
		return previousScale, 0, 0
	}
	scale := float32(fbWidth) / float32(width)
	w := uint32(math.Round(float64(float32(width) * scale)))
	h := uint32(math.Round(float64(float32(height) * scale)))
	return scale, w, h
}

func (w *Window) onResize(width, height int) {
	fbWidth, _ := w.handle.FramebufferSize()
	w.data.DPIScale, w.data.Width, w.data.Height = resizeMetrics(width, height, fbWidth, w.data.DPIScale)
	w.emit(core.WindowResizeEvent{
		Width:    w.data.Width,
		Height:   w.data.Height,
		DPIScale: w.data.DPIScale,
	})
}

func (w *Window) onClose() {
	w.emit(core.WindowCloseEvent{})
	w.data.Exit = true
}

func (w *Window) onFocus(focused bool) {
	w.data.Focused = focused
	w.emit(core.WindowFocusEvent{Focused: focused})
}

func (w *Window) callbacks() *Callbacks {
	return &Callbacks{
		Size:    w.onResize,
		Close:   w.onClose,
		Focus:   w.onFocus,
		Iconify: func(iconified bool) { w.onFocus(!iconified) },
		Key: func(key core.KeyCode, action Action) {
			w.emit(translateKey(key, action))
		},
		MouseButton: func(button core.Button, action Action) {
			w.emit(translateMouseButton(button, action))
		},
		Scroll: func(xOffset, yOffset float64) {
			w.emit(core.MouseScrolledEvent{XOffset: float32(xOffset), YOffset: float32(yOffset)})
		},
		CursorPos: func(x, y float64) {
			w.emit(core.MouseMovedEvent{X: float32(x), Y: float32(y)})
		},
		CursorEnter: func(entered bool) {
			w.emit(core.MouseEnterEvent{Entered: entered})
		},
		Char: func(char rune) {
			w.emit(core.KeyTypedEvent{Char: char})
		},
		Drop: func(paths []string) {
			w.emit(translateDrop(paths))
		},
	}
}

func translateKey(key core.KeyCode, action Action) core.Event {
	switch action {
	case ActionPress:
		return core.KeyPressedEvent{KeyCode: key, RepeatCount: 0}
	case ActionRepeat:
		return core.KeyPressedEvent{KeyCode: key, RepeatCount: 1}
	case ActionRelease:
		return core.KeyReleasedEvent{KeyCode: key}
	}
	return nil
}

func translateMouseButton(button core.Button, action Action) core.Event {
	switch action {
	case ActionPress:
		return core.MouseButtonPressedEvent{Button: button}
	case ActionRelease:
		return core.MouseButtonReleasedEvent{Button: button}
	}
	return nil
}

// Only the first file of a multi file drop is forwarded.
func translateDrop(paths []string) core.Event {
	if len(paths) == 0 {
		return nil
	}
	return core.WindowFileEvent{Path: paths[0]}
}

// ProcessInput polls the native events, which runs the callbacks, then
// snapshots every connected controller. Call once per frame.
func (w *Window) ProcessInput() {
	w.library.Backend().PollEvents()
	w.syncControllers()
}

func (w *Window) syncControllers() {
	backend := w.library.Backend()

	for id := range w.input.Controllers() {
		if !backend.JoystickPresent(id) {
			core.LogInfo("Controller disconnected %d", id)
			w.input.RemoveController(id)
		}
	}

	for id := 0; id < backend.MaxJoysticks(); id++ {
		if !backend.JoystickPresent(id) {
			continue
		}
		controller := w.input.GetOrAddController(id)
		name := backend.JoystickName(id)
		if controller.Name != name {
			if controller.Name != "" {
				core.LogInfo("Controller %d replaced by %s", id, name)
			} else {
				core.LogInfo("Controller connected %d : %s", id, name)
			}
			controller.Reset()
		}
		controller.ID = id
		controller.Name = name
		controller.ButtonStates = append(controller.ButtonStates[:0], backend.JoystickButtons(id)...)
		controller.AxisStates = append(controller.AxisStates[:0], backend.JoystickAxes(id)...)
		controller.HatStates = append(controller.HatStates[:0], backend.JoystickHats(id)...)
	}
}

// OnUpdate presents the frame for APIs the window swaps itself.
func (w *Window) OnUpdate() {
	if w.data.RenderAPI == RenderAPIOpenGL {
		w.handle.SwapBuffers()
	}
}

func (w *Window) SetWindowTitle(title string) {
	w.data.Title = title
	w.handle.SetTitle(title)
}

func (w *Window) ToggleVSync() {
	w.SetVSync(!w.data.VSync)
}

// SetVSync only changes the swap interval for OpenGL; other APIs pick it up
// when their swapchain is rebuilt.
func (w *Window) SetVSync(set bool) {
	w.data.VSync = set
	if w.data.RenderAPI == RenderAPIOpenGL {
		w.library.Backend().SwapInterval(swapInterval(set))
	}
	core.LogInfo("VSync : %t", set)
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

func (w *Window) HideMouse(hide bool) {
	if hide {
		w.handle.SetCursorMode(CursorModeDisabled)
	} else {
		w.handle.SetCursorMode(CursorModeNormal)
	}
}

func (w *Window) SetMousePosition(pos mgl32.Vec2) {
	w.input.StoreMousePosition(pos.X(), pos.Y())
	w.handle.SetCursorPos(float64(pos.X()), float64(pos.Y()))
}

func (w *Window) Maximise() {
	w.handle.Maximize()
}

func (w *Window) Width() uint32 {
	return w.data.Width
}

func (w *Window) Height() uint32 {
	return w.data.Height
}

func (w *Window) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(w.data.Width), float32(w.data.Height)}
}

func (w *Window) DPIScale() float32 {
	return w.data.DPIScale
}

func (w *Window) Title() string {
	return w.data.Title
}

func (w *Window) VSync() bool {
	return w.data.VSync
}

func (w *Window) Focused() bool {
	return w.data.Focused
}

func (w *Window) ShouldExit() bool {
	return w.data.Exit
}

// SetExit asks the frame loop to stop, as a close request would.
func (w *Window) SetExit(exit bool) {
	w.data.Exit = exit
}

func (w *Window) RenderAPI() RenderAPI {
	return w.data.RenderAPI
}

func (w *Window) Input() *core.InputState {
	return w.input
}
