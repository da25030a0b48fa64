package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInvalidActionName is returned by pair.register for a bad name.
	ErrInvalidActionName = errors.New("invalid action name")

	// ErrUnknownAction is raised by doc.dispatch for an action no handler
	// accepts.
	ErrUnknownAction = errors.New("unknown action")
)
