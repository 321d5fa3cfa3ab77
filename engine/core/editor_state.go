package core

import (
	"fmt"
	"strings"
)

// EditorState tells whether the simulation runs or the world is being edited.
type EditorState uint8

const (
	EditorStatePaused EditorState = iota
	EditorStatePlay
	EditorStateNext
	EditorStatePreview
)

func (s EditorState) String() string {
	switch s {
	case EditorStatePaused:
		return "paused"
	case EditorStatePlay:
		return "play"
	case EditorStateNext:
		return "next"
	case EditorStatePreview:
		return "preview"
	default:
		return fmt.Sprintf("EditorState(%d)", uint8(s))
	}
}

// ParseEditorState accepts the names returned by String, plus "edit" as an
// alias of paused.
func ParseEditorState(s string) (EditorState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paused", "edit", "":
		return EditorStatePaused, nil
	case "play":
		return EditorStatePlay, nil
	case "next":
		return EditorStateNext, nil
	case "preview":
		return EditorStatePreview, nil
	}
	return EditorStatePaused, fmt.Errorf("%w: %q", ErrInvalidEditorState, s)
}
