package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type listener struct {
	name string
}

func TestEventDispatcher_RegisterRejectsDuplicates(t *testing.T) {
	d := NewEventDispatcher()
	l := &listener{name: "a"}
	fn := func(Event, interface{}) bool { return false }

	assert.True(t, d.Register(EVENT_CODE_KEY_PRESSED, l, fn))
	assert.False(t, d.Register(EVENT_CODE_KEY_PRESSED, l, fn))
	assert.True(t, d.Register(EVENT_CODE_KEY_RELEASED, l, fn))
	assert.False(t, d.Register(EVENT_CODE_KEY_RELEASED, &listener{}, nil))
}

func TestEventDispatcher_FireStopsWhenHandled(t *testing.T) {
	d := NewEventDispatcher()
	var calls []string

	first := &listener{name: "first"}
	second := &listener{name: "second"}
	d.Register(EVENT_CODE_WINDOW_RESIZE, first, func(e Event, l interface{}) bool {
		calls = append(calls, l.(*listener).name)
		return e.(WindowResizeEvent).Width == 0
	})
	d.Register(EVENT_CODE_WINDOW_RESIZE, second, func(e Event, l interface{}) bool {
		calls = append(calls, l.(*listener).name)
		return true
	})

	assert.True(t, d.Fire(WindowResizeEvent{Width: 10, Height: 10}))
	assert.Equal(t, []string{"first", "second"}, calls)

	calls = nil
	assert.True(t, d.Fire(WindowResizeEvent{}))
	assert.Equal(t, []string{"first"}, calls)

	assert.False(t, d.Fire(WindowCloseEvent{}))
	assert.False(t, d.Fire(nil))
}

func TestEventDispatcher_Unregister(t *testing.T) {
	d := NewEventDispatcher()
	l := &listener{}
	hit := 0
	d.Register(EVENT_CODE_WINDOW_CLOSE, l, func(Event, interface{}) bool {
		hit++
		return false
	})

	d.Callback()(WindowCloseEvent{})
	assert.True(t, d.Unregister(EVENT_CODE_WINDOW_CLOSE, l))
	assert.False(t, d.Unregister(EVENT_CODE_WINDOW_CLOSE, l))
	d.Fire(WindowCloseEvent{})
	assert.Equal(t, 1, hit)
}

func TestEvent_Types(t *testing.T) {
	cases := map[EventType]Event{
		EVENT_CODE_WINDOW_CLOSE:    WindowCloseEvent{},
		EVENT_CODE_WINDOW_RESIZE:   WindowResizeEvent{},
		EVENT_CODE_WINDOW_FOCUS:    WindowFocusEvent{},
		EVENT_CODE_WINDOW_FILE:     WindowFileEvent{},
		EVENT_CODE_KEY_PRESSED:     KeyPressedEvent{},
		EVENT_CODE_KEY_RELEASED:    KeyReleasedEvent{},
		EVENT_CODE_KEY_TYPED:       KeyTypedEvent{},
		EVENT_CODE_BUTTON_PRESSED:  MouseButtonPressedEvent{},
		EVENT_CODE_BUTTON_RELEASED: MouseButtonReleasedEvent{},
		EVENT_CODE_MOUSE_MOVED:     MouseMovedEvent{},
		EVENT_CODE_MOUSE_WHEEL:     MouseScrolledEvent{},
		EVENT_CODE_MOUSE_ENTER:     MouseEnterEvent{},
	}
	for code, e := range cases {
		assert.Equal(t, code, e.Type(), e.String())
	}
}
