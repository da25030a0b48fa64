package cursor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/pairjump/internal/dispatcher"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/pairjump/internal/dispatcher/handlers/cursor"
	"github.com/dshills/pairjump/internal/engine"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

func setup(t *testing.T, text string, sels ...cursor.Selection) (*dispatcher.Dispatcher, *engine.Engine) {
	t.Helper()
	e := engine.New(text, engine.WithCursors(sels...))
	d := dispatcher.NewWithDefaults()
	d.SetEngine(e)
	d.SetCursors(e.Cursors())
	d.RegisterNamespace(cursorhandler.Namespace, cursorhandler.NewHandler())
	return d, e
}

func TestCursorMoves(t *testing.T) {
	const text = "abc\nde\nfghij"

	tests := []struct {
		action string
		from   int
		count  int
		want   int
	}{
		{cursorhandler.ActionMoveLeft, 2, 1, 1},
		{cursorhandler.ActionMoveLeft, 1, 5, 0},
		{cursorhandler.ActionMoveRight, 1, 2, 3},
		{cursorhandler.ActionMoveRight, 11, 5, 12},
		{cursorhandler.ActionMoveDown, 2, 1, 6}, // column clamped to "de"
		{cursorhandler.ActionMoveDown, 1, 9, 8}, // stops on the last line
		{cursorhandler.ActionMoveUp, 10, 1, 6},  // "fghij" col 3 -> "de" end
		{cursorhandler.ActionMoveUp, 10, 2, 3},  // col 3 on "abc"
		{cursorhandler.ActionMoveLineStart, 9, 1, 7},
		{cursorhandler.ActionMoveLineEnd, 4, 1, 6},
		{cursorhandler.ActionMoveFirstLine, 9, 1, 2},
		{cursorhandler.ActionMoveLastLine, 1, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			d, e := setup(t, text, cursor.NewCursorSelection(tt.from))
			result := d.Dispatch(input.NewAction(tt.action, input.SourceAPI).WithCount(tt.count))
			require.NoError(t, result.Error)
			assert.Equal(t, tt.want, e.Cursors().Primary().Head)
		})
	}
}

func TestCursorMovesClampHugeCounts(t *testing.T) {
	const text = "abc\nde\nfghij"

	tests := []struct {
		name   string
		action string
		from   int
		count  int
		want   int
	}{
		{"right by max int", cursorhandler.ActionMoveRight, 1, math.MaxInt, 12},
		{"left by max int", cursorhandler.ActionMoveLeft, 10, math.MaxInt, 0},
		{"down past uint32", cursorhandler.ActionMoveDown, 2, 1 << 32, 9},
		{"down by max int", cursorhandler.ActionMoveDown, 2, math.MaxInt, 9},
		{"up past uint32", cursorhandler.ActionMoveUp, 10, 1 << 32, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No count limit hook, so the count reaches the handler as is.
			cfg := dispatcher.DefaultConfig()
			cfg.MaxRepeatCount = 0
			e := engine.New(text, engine.WithCursors(cursor.NewCursorSelection(tt.from)))
			d := dispatcher.New(cfg)
			d.SetEngine(e)
			d.SetCursors(e.Cursors())
			d.RegisterNamespace(cursorhandler.Namespace, cursorhandler.NewHandler())

			result := d.Dispatch(input.NewAction(tt.action, input.SourceAPI).WithCount(tt.count))
			require.NoError(t, result.Error)
			assert.Equal(t, tt.want, e.Cursors().Primary().Head)
		})
	}
}

func TestCursorMoveNoOpAtEdge(t *testing.T) {
	d, _ := setup(t, "abc", cursor.NewCursorSelection(0))

	result := d.Dispatch(input.NewAction(cursorhandler.ActionMoveLeft, input.SourceAPI))
	assert.Equal(t, handler.StatusNoOp, result.Status)
}

func TestCursorMoveExtendsSelection(t *testing.T) {
	d, e := setup(t, "abcdef", cursor.NewSelection(1, 2))

	result := d.Dispatch(input.NewAction(cursorhandler.ActionMoveRight, input.SourceAPI).WithCount(2))
	require.True(t, result.IsOK())
	sel := e.Cursors().Primary()
	assert.Equal(t, 1, sel.Anchor)
	assert.Equal(t, 4, sel.Head)
}

func TestCursorCollapse(t *testing.T) {
	d, e := setup(t, "abc\ndef", cursor.NewCursorSelection(1), cursor.NewCursorSelection(5))

	result := d.Dispatch(input.NewAction(cursorhandler.ActionCollapse, input.SourceAPI))
	require.True(t, result.IsOK())
	assert.Equal(t, 1, e.Cursors().Count())

	result = d.Dispatch(input.NewAction(cursorhandler.ActionCollapse, input.SourceAPI))
	assert.Equal(t, handler.StatusNoOp, result.Status)
}

func TestCursorActions(t *testing.T) {
	h := cursorhandler.NewHandler()
	assert.Len(t, h.Actions(), 9)
	for _, name := range h.Actions() {
		assert.True(t, h.CanHandle(name), name)
	}
	assert.False(t, h.CanHandle("cursor.teleport"))
}
