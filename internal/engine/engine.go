package engine

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// Offset is a character position in the document.
	Offset = buffer.Offset

	// Point represents a line/column position.
	Point = buffer.Point

	// PointUTF16 represents a UTF-16 line/column position (for LSP).
	PointUTF16 = buffer.PointUTF16

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// RevisionID uniquely identifies a snapshot revision.
	RevisionID = buffer.RevisionID
)

// Engine is one open document: its text snapshot, its cursors, and its
// path.
type Engine struct {
	mu sync.RWMutex

	snap    *buffer.Snapshot
	cursors *cursor.CursorSet
	path    string

	maxFileSize int64
	initCursors []cursor.Selection
}

// New creates an Engine holding text.
func New(text string, opts ...Option) *Engine {
	e := newEngine(opts)
	e.snap = buffer.NewSnapshot(text)
	e.initCursorSet()
	return e
}

// NewFromReader creates an Engine from everything r yields.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	snap, err := buffer.NewSnapshotFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("engine: read: %w", err)
	}
	e.snap = snap
	e.initCursorSet()
	return e, nil
}

// Open reads the file at path into a new Engine.
func Open(path string, opts ...Option) (*Engine, error) {
	e := newEngine(append([]Option{WithPath(path)}, opts...))

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("engine: open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if info.Size() > e.maxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: open %s: %w", path, err)
	}
	e.snap = buffer.NewSnapshot(string(data))
	e.initCursorSet()
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) initCursorSet() {
	if len(e.initCursors) == 0 {
		e.cursors = cursor.NewCursorSetAt(0)
	} else {
		e.cursors = cursor.NewCursorSetFromSlice(e.initCursors)
		e.cursors.Clamp(e.snap.Len())
	}
	e.initCursors = nil
}

// Snapshot returns the current text snapshot.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Replace swaps in a snapshot of text and clamps the cursors into it.
// It returns the new revision.
func (e *Engine) Replace(text string) RevisionID {
	snap := buffer.NewSnapshot(text)
	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()
	e.cursors.Clamp(snap.Len())
	return snap.RevisionID()
}

// Cursors returns the engine's cursor set.
func (e *Engine) Cursors() *cursor.CursorSet {
	return e.cursors
}

// FilePath returns the path the text was loaded from, or "".
func (e *Engine) FilePath() string {
	return e.path
}

// CursorPoints returns the head of every selection as a line/column point,
// in cursor order.
func (e *Engine) CursorPoints() []Point {
	snap := e.Snapshot()
	sels := e.cursors.All()
	points := make([]Point, len(sels))
	for i, sel := range sels {
		points[i] = snap.OffsetToPoint(sel.Head)
	}
	return points
}

// SetCursorPoints replaces the cursors with zero-width cursors at points.
func (e *Engine) SetCursorPoints(points []Point) {
	snap := e.Snapshot()
	sels := make([]Selection, len(points))
	for i, p := range points {
		sels[i] = cursor.NewCursorSelection(snap.PointToOffset(p))
	}
	e.cursors.SetAll(sels)
}

// Text returns the full document content.
func (e *Engine) Text() string {
	return e.Snapshot().Text()
}

// TextRange returns the characters in [start, end).
func (e *Engine) TextRange(start, end Offset) string {
	return e.Snapshot().Slice(start, end)
}

// Len returns the number of characters in the document.
func (e *Engine) Len() Offset {
	return e.Snapshot().Len()
}

// RuneAt returns the character at offset.
func (e *Engine) RuneAt(offset Offset) (rune, bool) {
	return e.Snapshot().RuneAt(offset)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.Snapshot().LineCount()
}

// LineText returns the text of a line without its terminator.
func (e *Engine) LineText(line uint32) string {
	return e.Snapshot().LineText(line)
}

// LineStartOffset returns the offset of the first character of line.
func (e *Engine) LineStartOffset(line uint32) Offset {
	return e.Snapshot().LineStartOffset(line)
}

// LineEndOffset returns the offset just past the last character of line.
func (e *Engine) LineEndOffset(line uint32) Offset {
	return e.Snapshot().LineEndOffset(line)
}

// LineLen returns the number of characters on line.
func (e *Engine) LineLen(line uint32) uint32 {
	return e.Snapshot().LineLen(line)
}

// OffsetToPoint converts an offset to a line/column point.
func (e *Engine) OffsetToPoint(offset Offset) Point {
	return e.Snapshot().OffsetToPoint(offset)
}

// PointToOffset converts a line/column point to an offset.
func (e *Engine) PointToOffset(point Point) Offset {
	return e.Snapshot().PointToOffset(point)
}

// OffsetToPointUTF16 converts an offset to a UTF-16 point.
func (e *Engine) OffsetToPointUTF16(offset Offset) PointUTF16 {
	return e.Snapshot().OffsetToPointUTF16(offset)
}

// PointUTF16ToOffset converts a UTF-16 point to an offset.
func (e *Engine) PointUTF16ToOffset(point PointUTF16) Offset {
	return e.Snapshot().PointUTF16ToOffset(point)
}

// RevisionID returns the revision of the current snapshot.
func (e *Engine) RevisionID() RevisionID {
	return e.Snapshot().RevisionID()
}
