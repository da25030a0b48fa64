package app

import "errors"

// ErrNoDocument indicates an operation needs a document and none is open.
var ErrNoDocument = errors.New("no document open")

// InitError wraps a failure while wiring one component.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
