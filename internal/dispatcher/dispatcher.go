// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/dispatcher/hook"
	"github.com/dshills/pairjump/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	engine  execctx.EngineInterface
	cursors execctx.CursorManagerInterface

	config  Config
	metrics *Metrics
	hooks   *hook.Manager
	logger  *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for audit and panic reports.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a new dispatcher with the given configuration.
func New(config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		hooks:    hook.NewManager(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	d.hooks.Register(hook.NewAuditHook(d.logger))
	if config.MaxRepeatCount > 0 {
		d.hooks.RegisterPre(hook.NewCountLimitHook(config.MaxRepeatCount))
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the document engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// SetCursors sets the cursor manager.
func (d *Dispatcher) SetCursors(cursors execctx.CursorManagerInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// Engine returns the document engine.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// Cursors returns the cursor manager.
func (d *Dispatcher) Cursors() execctx.CursorManagerInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursors
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	return d.dispatchInternal(action, nil)
}

// DispatchWithContext executes an action with explicit input context.
func (d *Dispatcher) DispatchWithContext(action input.Action, inputCtx *input.Context) handler.Result {
	return d.dispatchInternal(action, inputCtx)
}

func (d *Dispatcher) dispatchInternal(action input.Action, inputCtx *input.Context) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(fmt.Errorf("%w: empty action name", ErrInvalidAction))
	}

	ctx := d.buildContext(inputCtx)
	if action.Count > 0 {
		ctx.Count = action.Count
	}

	if !d.hooks.RunPreDispatch(&action, ctx) {
		return handler.Error(fmt.Errorf("%w: %s", ErrActionCancelled, action.Name)).
			WithMessage("cancelled by hook")
	}

	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		result := handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
		d.record(action.Name, startTime, result.Status)
		return result
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.hooks.RunPostDispatch(&action, ctx, &result)
	d.record(action.Name, startTime, result.Status)

	return result
}

func (d *Dispatcher) record(name string, start time.Time, status handler.ResultStatus) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), status)
	}
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.logger.Error("handler panic",
				zap.String("action", action.Name),
				zap.Any("panic", r),
				zap.ByteString("stack", stack[:n]),
			)
			result = handler.Error(fmt.Errorf("%w in %s: %v", ErrPanic, action.Name, r))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(inputCtx *input.Context) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.NewWithInputContext(inputCtx)
	if d.engine != nil {
		ctx.WithEngine(d.engine)
	}
	if d.cursors != nil {
		ctx.WithCursors(d.cursors)
	}
	return ctx
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// CanDispatch reports whether some handler accepts actionName.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.CanRoute(actionName) || d.registry.Has(actionName)
}

// Actions returns every action name the dispatcher knows, sorted.
// Namespace handlers contribute their names when they can list them.
func (d *Dispatcher) Actions() []string {
	seen := make(map[string]struct{})
	for _, name := range d.registry.List() {
		seen[name] = struct{}{}
	}
	for _, ns := range d.router.Namespaces() {
		if lister, ok := d.router.GetNamespaceHandler(ns).(interface{ Actions() []string }); ok {
			for _, name := range lister.Actions() {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Logger returns the dispatcher's logger.
func (d *Dispatcher) Logger() *zap.Logger {
	return d.logger
}
