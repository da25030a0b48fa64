package engine

import (
	"github.com/dshills/pairjump/internal/engine/cursor"
)

// DefaultMaxFileSize is the largest file Open reads, in bytes.
const DefaultMaxFileSize = 64 << 20

// Option configures an Engine during creation.
type Option func(*Engine)

// WithCursors sets the initial selections.
// Without it the engine starts with one cursor at offset 0.
func WithCursors(sels ...cursor.Selection) Option {
	return func(e *Engine) {
		e.initCursors = append([]cursor.Selection(nil), sels...)
	}
}

// WithPath records the path the text belongs to.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithMaxFileSize sets the size limit enforced by Open.
func WithMaxFileSize(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxFileSize = n
		}
	}
}
