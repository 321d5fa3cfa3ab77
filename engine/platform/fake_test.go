package platform

import (
	"errors"
	"image"

	"github.com/spaghettifunk/tessera/engine/core"
)

type fakeJoystick struct {
	name    string
	buttons []bool
	axes    []float32
	hats    []uint8
}

type fakeBackend struct {
	initErr     error
	initCalls   int
	terminated  int
	scale       float32
	videoWidth  int
	videoHeight int
	fbScale     float32
	createErr   error
	lastHints   Hints
	swapHistory []int
	polls       int
	onPoll      func()
	joysticks   map[int]*fakeJoystick
	windows     []*fakeWindow
	cursors     []*fakeCursor
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		scale:       1,
		fbScale:     1,
		videoWidth:  1920,
		videoHeight: 1080,
		joysticks:   make(map[int]*fakeJoystick),
	}
}

func (b *fakeBackend) Init() error {
	b.initCalls++
	return b.initErr
}

func (b *fakeBackend) Terminate()      { b.terminated++ }
func (b *fakeBackend) Version() string { return "fake 3.3" }

func (b *fakeBackend) PrimaryMonitorContentScale() (float32, float32) { return b.scale, b.scale }
func (b *fakeBackend) PrimaryMonitorVideoMode() (int, int)            { return b.videoWidth, b.videoHeight }

func (b *fakeBackend) CreateWindow(width, height int, title string, hints Hints) (NativeWindow, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.lastHints = hints
	w := &fakeWindow{
		width:  width,
		height: height,
		title:  title,
		fbW:    int(float32(width) * b.fbScale),
		fbH:    int(float32(height) * b.fbScale),
	}
	b.windows = append(b.windows, w)
	return w, nil
}

func (b *fakeBackend) CreateStandardCursor(shape StandardCursor) NativeCursor {
	c := &fakeCursor{shape: shape}
	b.cursors = append(b.cursors, c)
	return c
}

func (b *fakeBackend) RawMouseMotionSupported() bool { return true }

func (b *fakeBackend) PollEvents() {
	b.polls++
	if b.onPoll != nil {
		b.onPoll()
	}
}

func (b *fakeBackend) SwapInterval(interval int) { b.swapHistory = append(b.swapHistory, interval) }

func (b *fakeBackend) MaxJoysticks() int { return 16 }

func (b *fakeBackend) JoystickPresent(id int) bool {
	_, ok := b.joysticks[id]
	return ok
}

func (b *fakeBackend) JoystickName(id int) string    { return b.joysticks[id].name }
func (b *fakeBackend) JoystickButtons(id int) []bool { return b.joysticks[id].buttons }
func (b *fakeBackend) JoystickAxes(id int) []float32 { return b.joysticks[id].axes }
func (b *fakeBackend) JoystickHats(id int) []uint8   { return b.joysticks[id].hats }

type fakeCursor struct {
	shape     StandardCursor
	destroyed bool
}

func (c *fakeCursor) Destroy() { c.destroyed = true }

type fakeWindow struct {
	width, height int
	fbW, fbH      int
	title         string
	callbacks     *Callbacks
	cursorMode    CursorMode
	cursor        NativeCursor
	cursorSets    int
	cursorX       float64
	cursorY       float64
	icons         []image.Image
	swaps         int
	maximized     bool
	rawMotion     bool
	stickyKeys    bool
	current       bool
	destroyed     bool
}

func (w *fakeWindow) FramebufferSize() (int, int)    { return w.fbW, w.fbH }
func (w *fakeWindow) SetCallbacks(cb *Callbacks)     { w.callbacks = cb }
func (w *fakeWindow) MakeContextCurrent()            { w.current = true }
func (w *fakeWindow) SetRawMouseMotion(enabled bool) { w.rawMotion = enabled }
func (w *fakeWindow) SetStickyKeys(enabled bool)     { w.stickyKeys = enabled }
func (w *fakeWindow) SetIcon(images []image.Image)   { w.icons = images }
func (w *fakeWindow) SetTitle(title string)          { w.title = title }
func (w *fakeWindow) SetCursorMode(mode CursorMode)  { w.cursorMode = mode }
func (w *fakeWindow) CursorMode() CursorMode         { return w.cursorMode }
func (w *fakeWindow) SetCursorPos(x, y float64)      { w.cursorX, w.cursorY = x, y }
func (w *fakeWindow) Maximize()                      { w.maximized = true }
func (w *fakeWindow) SwapBuffers()                   { w.swaps++ }
func (w *fakeWindow) Destroy()                       { w.destroyed = true }

func (w *fakeWindow) SetCursor(c NativeCursor) {
	w.cursor = c
	w.cursorSets++
}

// resize mimics the OS: the logical size changes and the framebuffer follows
// the monitor scale.
func (w *fakeWindow) resize(width, height int, fbScale float32) {
	w.width, w.height = width, height
	w.fbW = int(float32(width) * fbScale)
	w.fbH = int(float32(height) * fbScale)
	w.callbacks.Size(width, height)
}

type eventRecorder struct {
	events []core.Event
}

func (r *eventRecorder) callback(e core.Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) last() core.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

var errFake = errors.New("fake failure")
