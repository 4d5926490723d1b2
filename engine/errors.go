package engine

import "errors"

var (
	ErrNotInitialized     = errors.New("engine not initialized")
	ErrAlreadyInitialized = errors.New("engine already initialized")
	ErrAlreadyRunning     = errors.New("engine already running")
	ErrOutOfBounds        = errors.New("tile out of bounds")
	ErrUnknownAction      = errors.New("unknown action")
	ErrUnknownKey         = errors.New("unknown key")
	ErrNoBoard            = errors.New("no board attached")
)
