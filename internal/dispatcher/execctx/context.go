// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

// EngineInterface abstracts the document engine for handlers.
// It is read-only; handlers change documents only by moving cursors.
type EngineInterface interface {
	// Snapshot returns an immutable view of the text. Scans read one
	// snapshot so they see a consistent document without locking.
	Snapshot() *buffer.Snapshot

	// Character access
	Len() buffer.Offset
	RuneAt(offset buffer.Offset) (rune, bool)

	// Read operations
	Text() string
	TextRange(start, end buffer.Offset) string
	LineText(line uint32) string
	LineCount() uint32

	// Line operations
	LineStartOffset(line uint32) buffer.Offset
	LineEndOffset(line uint32) buffer.Offset
	LineLen(line uint32) uint32

	// Position conversion
	OffsetToPoint(offset buffer.Offset) buffer.Point
	PointToOffset(point buffer.Point) buffer.Offset

	// Identity
	RevisionID() buffer.RevisionID
	FilePath() string
}

// CursorManagerInterface abstracts cursor management for handlers.
type CursorManagerInterface interface {
	Primary() cursor.Selection
	All() []cursor.Selection
	Count() int
	IsMulti() bool
	HasSelection() bool

	SetAll(sels []cursor.Selection)
	MapInPlace(f func(sel cursor.Selection) cursor.Selection)

	Clone() *cursor.CursorSet
	Clamp(maxOffset cursor.Offset)
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Engine provides access to the document text.
	Engine EngineInterface

	// Cursors provides access to cursor/selection state.
	Cursors CursorManagerInterface

	// Input provides the input context the action was produced in.
	Input *input.Context

	// FilePath of the document, when it came from a file.
	FilePath string

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]interface{}),
	}
}

// NewWithInputContext creates a new execution context from an input context.
func NewWithInputContext(inputCtx *input.Context) *ExecutionContext {
	ctx := New()
	ctx.Input = inputCtx

	if inputCtx != nil {
		if inputCtx.PendingCount > 0 {
			ctx.Count = inputCtx.PendingCount
		}
		ctx.FilePath = inputCtx.FilePath
	}

	return ctx
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	if ctx.FilePath == "" && engine != nil {
		ctx.FilePath = engine.FilePath()
	}
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorManagerInterface) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// HasSelection returns true if there is an active selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Cursors != nil {
		return ctx.Cursors.HasSelection()
	}
	if ctx.Input != nil {
		return ctx.Input.HasSelection
	}
	return false
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has an engine.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForMotion checks that the context can run a cursor motion.
func (ctx *ExecutionContext) ValidateForMotion() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}
