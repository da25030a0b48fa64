package rpc

import "errors"

// Request errors, reported to the client as error responses.
var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrMissingMethod    = errors.New("missing method")
	ErrUnknownEncoding  = errors.New("unknown encoding")
	ErrInvalidCursor    = errors.New("invalid cursor")
	ErrNoDocument       = errors.New("no document: send text first")
	ErrMetricsDisabled  = errors.New("metrics are disabled")
)
