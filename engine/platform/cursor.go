package platform

// CursorShape is the cursor the editor GUI asks for, in the order the GUI
// library enumerates them.
type CursorShape int

const (
	CursorShapeNone CursorShape = -1

	CursorShapeArrow CursorShape = iota - 1
	CursorShapeTextInput
	CursorShapeResizeAll
	CursorShapeResizeNS
	CursorShapeResizeEW
	CursorShapeResizeNESW
	CursorShapeResizeNWSE
	CursorShapeHand
	cursorShapeCount
)

// There is no native diagonal or four-way resize cursor, those fall back to the arrow.
var standardCursorForShape = [cursorShapeCount]StandardCursor{
	CursorShapeArrow:      StandardCursorArrow,
	CursorShapeTextInput:  StandardCursorIBeam,
	CursorShapeResizeAll:  StandardCursorArrow,
	CursorShapeResizeNS:   StandardCursorVResize,
	CursorShapeResizeEW:   StandardCursorHResize,
	CursorShapeResizeNESW: StandardCursorArrow,
	CursorShapeResizeNWSE: StandardCursorArrow,
	CursorShapeHand:       StandardCursorHand,
}

// CursorSource is what the immediate mode GUI wants from the OS cursor this frame.
type CursorSource interface {
	DesiredCursor() CursorShape
	DrawsCursor() bool
	CursorChangesDisabled() bool
}

// GUICursorState is a CursorSource the GUI layer fills in every frame.
type GUICursorState struct {
	Shape          CursorShape
	DrawCursor     bool
	NoCursorChange bool
}

func (s *GUICursorState) DesiredCursor() CursorShape  { return s.Shape }
func (s *GUICursorState) DrawsCursor() bool           { return s.DrawCursor }
func (s *GUICursorState) CursorChangesDisabled() bool { return s.NoCursorChange }

func (w *Window) createCursors() {
	backend := w.library.Backend()
	for shape := CursorShapeArrow; shape < cursorShapeCount; shape++ {
		w.cursors[shape] = backend.CreateStandardCursor(standardCursorForShape[shape])
	}
}

func (w *Window) destroyCursors() {
	for i, c := range w.cursors {
		if c != nil {
			c.Destroy()
		}
		w.cursors[i] = nil
	}
	w.activeCursor = nil
}

// UpdateCursor syncs the native cursor with the GUI. Nothing happens while the
// cursor is captured, or when the GUI draws its own cursor.
func (w *Window) UpdateCursor(src CursorSource) {
	if src == nil || src.CursorChangesDisabled() || w.handle.CursorMode() == CursorModeDisabled {
		return
	}

	shape := src.DesiredCursor()
	if shape == CursorShapeNone || src.DrawsCursor() {
		// TODO: hide the OS cursor here once HideMouse stops owning the cursor mode.
		return
	}

	var cursor NativeCursor
	if shape >= CursorShapeArrow && shape < cursorShapeCount {
		cursor = w.cursors[shape]
	}
	if cursor == nil {
		cursor = w.cursors[CursorShapeArrow]
	}
	if cursor == w.activeCursor {
		return
	}
	w.handle.SetCursor(cursor)
	w.activeCursor = cursor
}
