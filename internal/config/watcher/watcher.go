// Package watcher reports changes to a single configuration file.
//
// The watcher subscribes to the file's directory with fsnotify, so editors
// that save by writing a temp file and renaming it over the original are
// still seen. Bursts of events are coalesced and delivered once the file
// has been quiet for the debounce interval.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when running a watcher that was closed.
var ErrClosed = errors.New("watcher: closed")

// DefaultDebounce is the quiet period before a change is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the last raw event of the burst arrived.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates the file was created (or renamed into place).
	OpCreate

	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
// Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives errors reported by fsnotify.
// By default they are dropped and watching continues.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher monitors one file for changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onError  func(error)
	fsw      *fsnotify.Watcher
}

// New creates a watcher for path. The file does not need to exist yet, but
// its directory does.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: DefaultDebounce,
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers change events to handler until ctx is cancelled, then
// closes the watcher. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	defer w.fsw.Close()

	var (
		pending *Event
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrClosed
			}
			next, relevant := w.translate(ev)
			if !relevant {
				continue
			}
			if w.debounce == 0 {
				handler(next)
				continue
			}
			pending = coalesce(pending, next)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if pending != nil {
				handler(*pending)
				pending = nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrClosed
			}
			w.onError(err)
		}
	}
}

// Close releases the watcher without running it.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	if filepath.Clean(ev.Name) != w.path {
		return Event{}, false
	}
	out := Event{Path: w.path, Time: time.Now()}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		out.Op = OpRemove
	case ev.Has(fsnotify.Create):
		out.Op = OpCreate
	case ev.Has(fsnotify.Write):
		out.Op = OpWrite
	default:
		return Event{}, false
	}
	return out, true
}

// coalesce folds next into the pending event of the current burst. The
// latest operation wins with two exceptions. A write after a create stays
// a create. A create after a remove is a write, since the file was
// replaced. A remove followed by a later write is therefore a write too.
func coalesce(pending *Event, next Event) *Event {
	if pending == nil {
		return &next
	}
	op := next.Op
	switch {
	case next.Op == OpWrite && pending.Op == OpCreate:
		op = OpCreate
	case next.Op == OpCreate && pending.Op == OpRemove:
		op = OpWrite
	}
	return &Event{Path: next.Path, Op: op, Time: next.Time}
}
