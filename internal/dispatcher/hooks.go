package dispatcher

import (
	"github.com/dshills/pairjump/internal/dispatcher/hook"
)

// Re-export hook package types for convenience.
type (
	// Hook is the base interface for named, prioritized hooks.
	Hook = hook.Hook

	// HookManager manages hooks with priority ordering.
	HookManager = hook.Manager
)

// HookManager returns the dispatcher's hook manager.
// The audit hook and, when MaxRepeatCount is set, the count-limit hook are
// registered on it by New.
func (d *Dispatcher) HookManager() *hook.Manager {
	return d.hooks
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(h hook.PreDispatchHook) {
	d.hooks.RegisterPre(h)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(h hook.PostDispatchHook) {
	d.hooks.RegisterPost(h)
}

// RegisterHook registers h as a pre-hook, a post-hook, or both.
func (d *Dispatcher) RegisterHook(h hook.Hook) {
	d.hooks.Register(h)
}
