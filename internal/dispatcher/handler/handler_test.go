package handler_test

import (
	"testing"

	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
	if fn.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", fn.Priority())
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.Action{Name: "test"}, execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

// pairNamespace is a NamespaceHandler serving only pair.exit.
type pairNamespace struct{}

func (pairNamespace) Namespace() string { return "pair" }

func (pairNamespace) CanHandle(actionName string) bool { return actionName == "pair.exit" }

func (pairNamespace) HandleAction(input.Action, *execctx.ExecutionContext) handler.Result {
	return handler.SuccessWithData("moved", 1)
}

func TestNamespaceAdapter(t *testing.T) {
	h := handler.NewNamespaceAdapter(pairNamespace{})

	if h.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", h.Priority())
	}
	if !h.CanHandle("pair.exit") || h.CanHandle("pair.unknown") {
		t.Error("adapter should delegate CanHandle")
	}
	r := h.Handle(input.Action{Name: "pair.exit"}, execctx.New())
	if !r.IsOK() {
		t.Errorf("expected ok, got %v", r.Status)
	}
	if v, ok := r.GetData("moved"); !ok || v != 1 {
		t.Errorf("expected moved=1, got %v", r.Data)
	}
}
