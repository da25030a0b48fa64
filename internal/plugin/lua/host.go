package lua

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

// UserNamespace prefixes actions registered by scripts.
const UserNamespace = "user"

// ArgNested marks an action dispatched from inside a running script.
const ArgNested = "lua.nested"

// Dispatcher is the part of the dispatcher the host needs.
type Dispatcher interface {
	Dispatch(action input.Action) handler.Result
	RegisterHandlerFunc(actionName string, fn handler.Func)
	CanDispatch(actionName string) bool
	Engine() execctx.EngineInterface
	Cursors() execctx.CursorManagerInterface
}

// Host loads scripts into one sandboxed state and exposes their
// registered functions as dispatcher actions.
type Host struct {
	state      *State
	dispatcher Dispatcher
	logger     *zap.Logger

	mu      sync.RWMutex
	actions map[string]*lua.LFunction
}

// HostOption configures a Host.
type HostOption func(*hostConfig)

type hostConfig struct {
	logger    *zap.Logger
	stateOpts []StateOption
}

// WithLogger sets the logger used for print() and script errors.
func WithLogger(logger *zap.Logger) HostOption {
	return func(c *hostConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) HostOption {
	return func(c *hostConfig) {
		c.stateOpts = append(c.stateOpts, opts...)
	}
}

// NewHost creates a host bound to d.
func NewHost(d Dispatcher, opts ...HostOption) *Host {
	cfg := hostConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Host{
		state:      NewState(cfg.stateOpts...),
		dispatcher: d,
		logger:     cfg.logger,
		actions:    make(map[string]*lua.LFunction),
	}
	installPrint(h.state.L, h.logger)
	h.state.L.SetGlobal(ModuleName, newModule(h.state.L, h.luaRegister))
	return h
}

// LoadFile runs a plugin file. Functions it registers become actions.
func (h *Host) LoadFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("loading plugin %s: %w", path, err)
	}
	h.logger.Debug("plugin loaded", zap.String("path", path))
	return nil
}

// LoadString runs a chunk of Lua code.
func (h *Host) LoadString(code string) error {
	return h.state.DoString(code)
}

// RunScript runs a script with a global doc table bound to the
// dispatcher's current document.
func (h *Host) RunScript(path string) error {
	ctx := h.currentContext()
	if err := ctx.ValidateForMotion(); err != nil {
		return err
	}
	err := h.state.run(func(L *lua.LState) error {
		L.SetGlobal("doc", h.newDoc(L, ctx))
		defer L.SetGlobal("doc", lua.LNil)
		return L.DoFile(path)
	})
	if err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// Actions returns the registered user action names, sorted.
func (h *Host) Actions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the Lua state.
func (h *Host) Close() error {
	return h.state.Close()
}

// luaRegister implements pair.register(name, fn).
func (h *Host) luaRegister(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		L.ArgError(1, ErrInvalidActionName.Error())
		return 0
	}

	actionName := UserNamespace + "." + name
	h.mu.Lock()
	h.actions[actionName] = fn
	h.mu.Unlock()

	h.dispatcher.RegisterHandlerFunc(actionName, h.handleUserAction)
	h.logger.Debug("plugin action registered", zap.String("action", actionName))
	return 0
}

// handleUserAction calls the script function registered for the action
// with a doc table. A function returning false reports no-op.
func (h *Host) handleUserAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForMotion(); err != nil {
		return handler.Error(err)
	}

	h.mu.RLock()
	fn, ok := h.actions[action.Name]
	h.mu.RUnlock()
	if !ok {
		return handler.Errorf("no plugin function for %s", action.Name)
	}

	var (
		results []lua.LValue
		err     error
	)
	if action.Args.GetBool(ArgNested) {
		results, err = h.state.CallNested(fn, h.newDoc(h.state.L, ctx))
	} else {
		err = h.state.run(func(L *lua.LState) error {
			var callErr error
			results, callErr = callFunction(L, fn, h.newDoc(L, ctx))
			return callErr
		})
	}
	if err != nil {
		h.logger.Warn("plugin action failed", zap.String("action", action.Name), zap.Error(err))
		return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
	}

	if len(results) > 0 && results[0] == lua.LFalse {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw()
}

func (h *Host) currentContext() *execctx.ExecutionContext {
	ctx := execctx.New()
	if e := h.dispatcher.Engine(); e != nil {
		ctx.WithEngine(e)
	}
	if c := h.dispatcher.Cursors(); c != nil {
		ctx.WithCursors(c)
	}
	return ctx
}

// newDoc builds the doc table handed to script functions:
//
//	doc.text()                     -> string
//	doc.cursors()                  -> { {line=, col=}, ... } (0-based)
//	doc.set_cursors(list)          -> replaces all cursors
//	doc.dispatch(action [, count]) -> status, message
//
// doc.dispatch raises an error for an action no handler accepts.
func (h *Host) newDoc(L *lua.LState, ctx *execctx.ExecutionContext) *lua.LTable {
	doc := L.NewTable()

	L.SetField(doc, "text", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(ctx.Engine.Text()))
		return 1
	}))

	L.SetField(doc, "cursors", L.NewFunction(func(L *lua.LState) int {
		list := L.NewTable()
		for _, sel := range ctx.Cursors.All() {
			p := ctx.Engine.OffsetToPoint(sel.Head)
			item := L.NewTable()
			L.SetField(item, "line", lua.LNumber(p.Line))
			L.SetField(item, "col", lua.LNumber(p.Column))
			list.Append(item)
		}
		L.Push(list)
		return 1
	}))

	L.SetField(doc, "set_cursors", L.NewFunction(func(L *lua.LState) int {
		list := L.CheckTable(1)
		var sels []cursor.Selection
		list.ForEach(func(_, v lua.LValue) {
			item, ok := v.(*lua.LTable)
			if !ok {
				return
			}
			p := buffer.Point{
				Line:   uint32(lua.LVAsNumber(item.RawGetString("line"))),
				Column: uint32(lua.LVAsNumber(item.RawGetString("col"))),
			}
			sels = append(sels, cursor.NewCursorSelection(ctx.Engine.PointToOffset(p)))
		})
		if len(sels) == 0 {
			L.ArgError(1, "at least one cursor required")
			return 0
		}
		ctx.Cursors.SetAll(sels)
		return 0
	}))

	L.SetField(doc, "dispatch", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		count := L.OptInt(2, 0)
		if !h.dispatcher.CanDispatch(name) {
			L.ArgError(1, fmt.Sprintf("%v: %s", ErrUnknownAction, name))
			return 0
		}
		action := input.NewAction(name, input.SourcePlugin).
			WithCount(count).
			WithArg(ArgNested, true)

		result := h.dispatcher.Dispatch(action)
		L.Push(lua.LString(result.Status.String()))
		if result.Error != nil {
			L.Push(lua.LString(result.Error.Error()))
		} else {
			L.Push(lua.LString(result.Message))
		}
		return 2
	}))

	return doc
}
