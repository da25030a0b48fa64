package pair

import (
	"strings"

	"github.com/dshills/pairjump/internal/delim"
	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

// Namespace is the action namespace served by Handler.
const Namespace = "pair"

// Action names.
const (
	ActionExit         = "pair.exit"
	ActionEnter        = "pair.enter"
	ActionExitBackward = "pair.exitBackward"
	ActionEnterForward = "pair.enterForward"
)

// DataMoved is the result data key holding the number of cursors moved.
const DataMoved = "moved"

// Handler runs delimiter-pair motions over every cursor.
type Handler struct{}

// NewHandler creates a pair handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the pair namespace.
func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := motionFor(actionName)
	return ok
}

// Actions returns the action names this handler serves, sorted.
func (h *Handler) Actions() []string {
	names := delim.Names()
	for i, name := range names {
		names[i] = Namespace + "." + name
	}
	return names
}

// HandleAction applies the named motion to every cursor.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForMotion(); err != nil {
		return handler.Error(err)
	}

	m, ok := motionFor(action.Name)
	if !ok {
		return handler.Errorf("unknown pair action: %s", action.Name)
	}
	motion := delim.Repeat(m, ctx.GetCount())

	snap := ctx.Engine.Snapshot()
	moved := 0
	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		next, ok := motion(snap, sel.Head)
		if !ok || next == sel.Head {
			return sel
		}
		moved++
		if !sel.IsEmpty() {
			return sel.Extend(next)
		}
		return sel.MoveTo(next)
	})

	if moved == 0 {
		return handler.NoOpWithMessage("no enclosing pair")
	}
	return handler.SuccessWithData(DataMoved, moved).WithRevealCursor()
}

func motionFor(actionName string) (delim.Motion, bool) {
	name, ok := strings.CutPrefix(actionName, Namespace+".")
	if !ok {
		return nil, false
	}
	return delim.Lookup(name)
}
