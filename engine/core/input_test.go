package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestInputState_KeyTransitions(t *testing.T) {
	s := NewInputState()

	s.OnEvent(KeyPressedEvent{KeyCode: KEY_A}, nil)
	assert.True(t, s.IsKeyDown(KEY_A))
	assert.True(t, s.IsKeyPressed(KEY_A))

	s.Update()
	assert.True(t, s.IsKeyDown(KEY_A))
	assert.False(t, s.IsKeyPressed(KEY_A))

	s.OnEvent(KeyReleasedEvent{KeyCode: KEY_A}, nil)
	assert.False(t, s.IsKeyDown(KEY_A))
	assert.True(t, s.WasKeyDown(KEY_A))
	assert.False(t, s.IsKeyDown(KEYS_MAX_KEYS))
}

func TestInputState_Mouse(t *testing.T) {
	s := NewInputState()

	s.OnEvent(MouseButtonPressedEvent{Button: BUTTON_RIGHT}, nil)
	s.OnEvent(MouseMovedEvent{X: 10, Y: 20}, nil)
	s.OnEvent(MouseScrolledEvent{YOffset: 1}, nil)

	assert.True(t, s.IsButtonDown(BUTTON_RIGHT))
	assert.Equal(t, mgl32.Vec2{10, 20}, s.MousePosition())
	assert.Equal(t, float32(1), s.ScrollY)

	s.Update()
	assert.Equal(t, mgl32.Vec2{10, 20}, s.PreviousMousePosition())
	assert.True(t, s.WasButtonDown(BUTTON_RIGHT))
	assert.Zero(t, s.ScrollY)
}

func TestInputState_FocusLossClearsHeldState(t *testing.T) {
	s := NewInputState()
	s.ProcessKey(KEY_W, true)
	s.ProcessButton(BUTTON_LEFT, true)

	s.OnEvent(WindowFocusEvent{Focused: false}, nil)
	assert.False(t, s.IsKeyDown(KEY_W))
	assert.False(t, s.IsButtonDown(BUTTON_LEFT))
}

func TestInputState_Controllers(t *testing.T) {
	s := NewInputState()

	c := s.GetOrAddController(2)
	c.ButtonStates = append(c.ButtonStates, true)
	assert.Same(t, c, s.GetOrAddController(2))
	assert.Len(t, s.Controllers(), 1)

	s.RemoveController(2)
	_, ok := s.Controller(2)
	assert.False(t, ok)

	c.Reset()
	assert.Empty(t, c.ButtonStates)
}

func TestParseEditorState(t *testing.T) {
	st, err := ParseEditorState("Play")
	assert.NoError(t, err)
	assert.Equal(t, EditorStatePlay, st)

	st, err = ParseEditorState("edit")
	assert.NoError(t, err)
	assert.Equal(t, EditorStatePaused, st)

	_, err = ParseEditorState("running")
	assert.ErrorIs(t, err, ErrInvalidEditorState)
}
