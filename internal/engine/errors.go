package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrIsDirectory indicates Open was given a directory.
	ErrIsDirectory = errors.New("engine: path is a directory")

	// ErrTooLarge indicates a file exceeds the configured size limit.
	ErrTooLarge = errors.New("engine: file too large")
)
