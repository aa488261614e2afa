package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownWidget is returned when a plan names a widget the renderer
	// does not implement.
	ErrUnknownWidget = errors.New("tui: unknown widget")
)
