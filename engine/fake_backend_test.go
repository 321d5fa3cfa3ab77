package engine

import (
	"image"

	"github.com/spaghettifunk/tessera/engine/platform"
)

type fakeBackend struct {
	window     *fakeWindow
	terminated bool
}

func (b *fakeBackend) Init() error                                    { return nil }
func (b *fakeBackend) Terminate()                                     { b.terminated = true }
func (b *fakeBackend) Version() string                                { return "fake" }
func (b *fakeBackend) PrimaryMonitorContentScale() (float32, float32) { return 1, 1 }
func (b *fakeBackend) PrimaryMonitorVideoMode() (int, int)            { return 1920, 1080 }
func (b *fakeBackend) RawMouseMotionSupported() bool                  { return false }
func (b *fakeBackend) PollEvents()                                    {}
func (b *fakeBackend) SwapInterval(int)                               {}
func (b *fakeBackend) MaxJoysticks() int          { return 0 }
func (b *fakeBackend) JoystickPresent(int) bool   { return false }
func (b *fakeBackend) JoystickName(int) string    { return "" }
func (b *fakeBackend) JoystickButtons(int) []bool { return nil }
func (b *fakeBackend) JoystickAxes(int) []float32 { return nil }
func (b *fakeBackend) JoystickHats(int) []uint8   { return nil }

func (b *fakeBackend) CreateStandardCursor(platform.StandardCursor) platform.NativeCursor {
	return fakeCursor{}
}

func (b *fakeBackend) CreateWindow(width, height int, title string, _ platform.Hints) (platform.NativeWindow, error) {
	b.window = &fakeWindow{width: width, height: height, title: title}
	return b.window, nil
}

type fakeCursor struct{}

func (fakeCursor) Destroy() {}

type fakeWindow struct {
	width, height int
	title         string
	callbacks     *platform.Callbacks
	mode          platform.CursorMode
	swaps         int
	destroyed     bool
}

func (w *fakeWindow) FramebufferSize() (int, int)         { return w.width, w.height }
func (w *fakeWindow) SetCallbacks(cb *platform.Callbacks) { w.callbacks = cb }
func (w *fakeWindow) MakeContextCurrent()                       {}
func (w *fakeWindow) SetRawMouseMotion(bool)                    {}
func (w *fakeWindow) SetStickyKeys(bool)                        {}
func (w *fakeWindow) SetIcon([]image.Image)                     {}
func (w *fakeWindow) SetTitle(title string)                  { w.title = title }
func (w *fakeWindow) SetCursorMode(mode platform.CursorMode) { w.mode = mode }
func (w *fakeWindow) CursorMode() platform.CursorMode        { return w.mode }
func (w *fakeWindow) SetCursorPos(float64, float64)             {}
func (w *fakeWindow) SetCursor(platform.NativeCursor)           {}
func (w *fakeWindow) Maximize()                                 {}
func (w *fakeWindow) SwapBuffers() { w.swaps++ }
func (w *fakeWindow) Destroy()     { w.destroyed = true }

func (w *fakeWindow) resize(width, height int) {
	w.width, w.height = width, height
	w.callbacks.Size(width, height)
}
