package core

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// System internal event codes. Application should use codes beyond 255.
type EventType uint16

const (
	EVENT_CODE_NONE EventType = iota

	// Window was asked to close.
	EVENT_CODE_WINDOW_CLOSE
	// Resized/resolution changed from the OS. Sizes are framebuffer pixels.
	EVENT_CODE_WINDOW_RESIZE
	// Window gained or lost focus, iconify included.
	EVENT_CODE_WINDOW_FOCUS
	// A file was dropped on the window.
	EVENT_CODE_WINDOW_FILE

	// Keyboard key pressed or repeated.
	EVENT_CODE_KEY_PRESSED
	// Keyboard key released.
	EVENT_CODE_KEY_RELEASED
	// Text input.
	EVENT_CODE_KEY_TYPED

	// Mouse button pressed.
	EVENT_CODE_BUTTON_PRESSED
	// Mouse button released.
	EVENT_CODE_BUTTON_RELEASED
	// Mouse moved.
	EVENT_CODE_MOUSE_MOVED
	// Mouse wheel.
	EVENT_CODE_MOUSE_WHEEL
	// Cursor entered or left the window.
	EVENT_CODE_MOUSE_ENTER

	MAX_EVENT_CODE EventType = 0xFF
)

type Event interface {
	Type() EventType
	String() string
}

// EventCallback is the single sink a window forwards its events to.
type EventCallback func(e Event)

type WindowCloseEvent struct{}

func (WindowCloseEvent) Type() EventType { return EVENT_CODE_WINDOW_CLOSE }
func (WindowCloseEvent) String() string  { return "WindowCloseEvent" }

type WindowResizeEvent struct {
	Width    uint32
	Height   uint32
	DPIScale float32
}

func (WindowResizeEvent) Type() EventType { return EVENT_CODE_WINDOW_RESIZE }
func (e WindowResizeEvent) String() string {
	return fmt.Sprintf("WindowResizeEvent: %d, %d (dpi %.2f)", e.Width, e.Height, e.DPIScale)
}

type WindowFocusEvent struct {
	Focused bool
}

func (WindowFocusEvent) Type() EventType { return EVENT_CODE_WINDOW_FOCUS }
func (e WindowFocusEvent) String() string {
	return fmt.Sprintf("WindowFocusEvent: %t", e.Focused)
}

type WindowFileEvent struct {
	Path string
}

func (WindowFileEvent) Type() EventType { return EVENT_CODE_WINDOW_FILE }
func (e WindowFileEvent) String() string {
	return fmt.Sprintf("WindowFileEvent: %s", e.Path)
}

type KeyPressedEvent struct {
	KeyCode     KeyCode
	RepeatCount int
}

func (KeyPressedEvent) Type() EventType { return EVENT_CODE_KEY_PRESSED }
func (e KeyPressedEvent) String() string {
	return fmt.Sprintf("KeyPressedEvent: %d (%d repeats)", e.KeyCode, e.RepeatCount)
}

type KeyReleasedEvent struct {
	KeyCode KeyCode
}

func (KeyReleasedEvent) Type() EventType { return EVENT_CODE_KEY_RELEASED }
func (e KeyReleasedEvent) String() string {
	return fmt.Sprintf("KeyReleasedEvent: %d", e.KeyCode)
}

type KeyTypedEvent struct {
	Char rune
}

func (KeyTypedEvent) Type() EventType { return EVENT_CODE_KEY_TYPED }
func (e KeyTypedEvent) String() string {
	return fmt.Sprintf("KeyTypedEvent: %q", e.Char)
}

type MouseButtonPressedEvent struct {
	Button Button
}

func (MouseButtonPressedEvent) Type() EventType { return EVENT_CODE_BUTTON_PRESSED }
func (e MouseButtonPressedEvent) String() string {
	return fmt.Sprintf("MouseButtonPressedEvent: %d", e.Button)
}

type MouseButtonReleasedEvent struct {
	Button Button
}

func (MouseButtonReleasedEvent) Type() EventType { return EVENT_CODE_BUTTON_RELEASED }
func (e MouseButtonReleasedEvent) String() string {
	return fmt.Sprintf("MouseButtonReleasedEvent: %d", e.Button)
}

type MouseMovedEvent struct {
	X float32
	Y float32
}

func (MouseMovedEvent) Type() EventType { return EVENT_CODE_MOUSE_MOVED }
func (e MouseMovedEvent) String() string {
	return fmt.Sprintf("MouseMovedEvent: %.1f, %.1f", e.X, e.Y)
}

type MouseScrolledEvent struct {
	XOffset float32
	YOffset float32
}

func (MouseScrolledEvent) Type() EventType { return EVENT_CODE_MOUSE_WHEEL }
func (e MouseScrolledEvent) String() string {
	return fmt.Sprintf("MouseScrolledEvent: %.1f, %.1f", e.XOffset, e.YOffset)
}

type MouseEnterEvent struct {
	Entered bool
}

func (MouseEnterEvent) Type() EventType { return EVENT_CODE_MOUSE_ENTER }
func (e MouseEnterEvent) String() string {
	return fmt.Sprintf("MouseEnterEvent: %t", e.Entered)
}

// Should return true if handled.
type FnOnEvent func(e Event, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventDispatcher routes window events to the application listeners.
// It is owned by the frame loop and not safe for concurrent use.
type EventDispatcher struct {
	registered map[EventType][]*registeredEvent
}

func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		registered: make(map[EventType][]*registeredEvent),
	}
}

// Register listens for events of the given type. A listener can be registered
// once per type; duplicates return false.
func (d *EventDispatcher) Register(code EventType, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	events := d.registered[code]
	if slices.IndexFunc(events, func(e *registeredEvent) bool { return e.listener == listener }) >= 0 {
		LogWarn("listener already registered for event code %d", code)
		return false
	}
	d.registered[code] = append(events, &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the listener for the given type. Returns false when no
// registration is found.
func (d *EventDispatcher) Unregister(code EventType, listener interface{}) bool {
	events := d.registered[code]
	idx := slices.IndexFunc(events, func(e *registeredEvent) bool { return e.listener == listener })
	if idx < 0 {
		return false
	}
	d.registered[code] = slices.Delete(events, idx, idx+1)
	return true
}

// Fire sends the event to the listeners of its type in registration order.
// The first listener returning true stops the propagation.
func (d *EventDispatcher) Fire(e Event) bool {
	if e == nil {
		return false
	}
	for _, r := range d.registered[e.Type()] {
		if r.callback(e, r.listener) {
			return true
		}
	}
	return false
}

// Callback adapts the dispatcher to the window's single event slot.
func (d *EventDispatcher) Callback() EventCallback {
	return func(e Event) {
		d.Fire(e)
	}
}

// Shutdown drops every registration.
func (d *EventDispatcher) Shutdown() error {
	d.registered = make(map[EventType][]*registeredEvent)
	return nil
}
