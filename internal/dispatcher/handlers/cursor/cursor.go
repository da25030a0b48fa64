// Package cursor provides handlers for plain cursor movement, so front ends
// can move cursors through the dispatcher the same way they run pair
// motions.
package cursor

import (
	"sort"

	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

// Namespace is the action namespace served by Handler.
const Namespace = "cursor"

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionMoveFirstLine = "cursor.moveFirstLine"
	ActionMoveLastLine  = "cursor.moveLastLine"
	ActionCollapse      = "cursor.collapse"
)

// moveFunc computes a new head from the old one.
type moveFunc func(s *buffer.Snapshot, head buffer.Offset, count int) buffer.Offset

var moves = map[string]moveFunc{
	ActionMoveLeft:      moveLeft,
	ActionMoveRight:     moveRight,
	ActionMoveUp:        moveUp,
	ActionMoveDown:      moveDown,
	ActionMoveLineStart: moveLineStart,
	ActionMoveLineEnd:   moveLineEnd,
	ActionMoveFirstLine: moveFirstLine,
	ActionMoveLastLine:  moveLastLine,
}

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := moves[actionName]
	return ok || actionName == ActionCollapse
}

// Actions returns the action names this handler serves, sorted.
func (h *Handler) Actions() []string {
	names := make([]string, 0, len(moves)+1)
	for name := range moves {
		names = append(names, name)
	}
	names = append(names, ActionCollapse)
	sort.Strings(names)
	return names
}

// HandleAction processes a cursor action. Selections are extended when any
// cursor has one; otherwise cursors move.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForMotion(); err != nil {
		return handler.Error(err)
	}

	if action.Name == ActionCollapse {
		if !ctx.Cursors.IsMulti() {
			return handler.NoOp()
		}
		ctx.Cursors.SetAll([]cursor.Selection{ctx.Cursors.Primary()})
		return handler.Success().WithRedraw()
	}

	move, ok := moves[action.Name]
	if !ok {
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	snap := ctx.Engine.Snapshot()
	count := ctx.GetCount()
	extend := ctx.HasSelection()
	moved := 0
	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		head := move(snap, sel.Head, count)
		if head == sel.Head {
			return sel
		}
		moved++
		if extend {
			return sel.Extend(head)
		}
		return sel.MoveTo(head)
	})

	if moved == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithRevealCursor()
}

// Counted moves compare the count against the remaining distance before
// any arithmetic, so huge counts clamp instead of wrapping.
func moveLeft(s *buffer.Snapshot, head buffer.Offset, count int) buffer.Offset {
	if count >= head {
		return 0
	}
	return head - count
}

func moveRight(s *buffer.Snapshot, head buffer.Offset, count int) buffer.Offset {
	n := s.Len()
	if count >= n-head {
		return n
	}
	return head + count
}

func moveUp(s *buffer.Snapshot, head buffer.Offset, count int) buffer.Offset {
	p := s.OffsetToPoint(head)
	line := uint32(0)
	if int(p.Line) > count {
		line = p.Line - uint32(count)
	}
	return toLine(s, line, p.Column)
}

func moveDown(s *buffer.Snapshot, head buffer.Offset, count int) buffer.Offset {
	lineCount := s.LineCount()
	if lineCount == 0 {
		return head
	}
	p := s.OffsetToPoint(head)
	line := lineCount - 1
	if remaining := int(line - p.Line); count < remaining {
		line = p.Line + uint32(count)
	}
	return toLine(s, line, p.Column)
}

func moveLineStart(s *buffer.Snapshot, head buffer.Offset, _ int) buffer.Offset {
	return s.LineStartOffset(s.OffsetToPoint(head).Line)
}

func moveLineEnd(s *buffer.Snapshot, head buffer.Offset, _ int) buffer.Offset {
	return s.LineEndOffset(s.OffsetToPoint(head).Line)
}

func moveFirstLine(s *buffer.Snapshot, head buffer.Offset, _ int) buffer.Offset {
	return toLine(s, 0, s.OffsetToPoint(head).Column)
}

func moveLastLine(s *buffer.Snapshot, head buffer.Offset, _ int) buffer.Offset {
	lineCount := s.LineCount()
	if lineCount == 0 {
		return head
	}
	return toLine(s, lineCount-1, s.OffsetToPoint(head).Column)
}

// toLine returns the offset of column col on line, clamped to the line end.
func toLine(s *buffer.Snapshot, line, col uint32) buffer.Offset {
	return s.PointToOffset(buffer.Point{Line: line, Column: min(col, s.LineLen(line))})
}
