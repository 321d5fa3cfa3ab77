package platform

import (
	"fmt"

	"github.com/spaghettifunk/tessera/engine/core"
)

type LibraryState uint8

const (
	LibraryUninitialized LibraryState = iota
	LibraryInitialized
)

func (s LibraryState) String() string {
	if s == LibraryInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Library is the process wide state of the native windowing library. It is
// initialized by the first window and terminated when the last window is
// destroyed. Windows sharing a backend must share the Library.
type Library struct {
	backend Backend
	state   LibraryState
	windows int
}

func NewLibrary(backend Backend) *Library {
	return &Library{
		backend: backend,
		state:   LibraryUninitialized,
	}
}

func (l *Library) Backend() Backend {
	return l.backend
}

func (l *Library) State() LibraryState {
	return l.state
}

func (l *Library) WindowCount() int {
	return l.windows
}

func (l *Library) acquire() error {
	if l.state == LibraryUninitialized {
		if err := l.backend.Init(); err != nil {
			return fmt.Errorf("%w: %v", core.ErrPlatformInit, err)
		}
		l.state = LibraryInitialized
		core.LogDebug("windowing library initialized")
	}
	l.windows++
	return nil
}

func (l *Library) release() {
	if l.windows > 0 {
		l.windows--
	}
	if l.windows == 0 && l.state == LibraryInitialized {
		l.state = LibraryUninitialized
		l.backend.Terminate()
		core.LogDebug("windowing library terminated")
	}
}
