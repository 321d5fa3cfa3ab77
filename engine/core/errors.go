package core

import (
	"errors"
)

var (
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrPlatformInit        = errors.New("failed to initialize the windowing library")
	ErrWindowCreation      = errors.New("failed to create window")
	ErrInvalidEditorState  = errors.New("invalid editor state")
	ErrSceneFileMismatch   = errors.New("scene file does not match scene name")
	ErrSystemAlreadyExists = errors.New("system already registered")
	ErrUnknown             = errors.New("unknown")
)
