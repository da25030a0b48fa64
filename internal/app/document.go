package app

import (
	"fmt"
	"io"

	"github.com/dshills/pairjump/internal/engine"
)

// StdinPath names standard input as a document source.
const StdinPath = "-"

// LoadDocument reads a document from path, or from stdin when path is "-".
func LoadDocument(path string, stdin io.Reader, opts ...engine.Option) (*engine.Engine, error) {
	if path == StdinPath {
		e, err := engine.NewFromReader(stdin, opts...)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return e, nil
	}
	return engine.Open(path, opts...)
}

// OpenDocument loads a document and makes it the dispatch target.
func (app *Application) OpenDocument(path string, stdin io.Reader, opts ...engine.Option) (*engine.Engine, error) {
	e, err := LoadDocument(path, stdin, opts...)
	if err != nil {
		return nil, err
	}
	app.SetDocument(e)
	return e, nil
}

// SetDocument makes e the document actions are dispatched against.
func (app *Application) SetDocument(e *engine.Engine) {
	app.mu.Lock()
	app.engine = e
	app.mu.Unlock()

	app.dispatcher.SetEngine(e)
	app.dispatcher.SetCursors(e.Cursors())
}

// Document returns the current document, or nil.
func (app *Application) Document() *engine.Engine {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.engine
}
