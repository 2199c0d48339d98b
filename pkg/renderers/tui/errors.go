package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// submit.
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when an enum field declares no options.
	ErrNoOptions = errors.New("tui: select field has no options")
)
