// Package hook provides pre/post dispatch hooks for the dispatcher.
//
// Hooks intercept action dispatch for logging, limits, and bookkeeping.
// Each hook has a name and a priority:
//
//   - Pre-hooks: higher priority runs first. A pre-hook may change the
//     action or the execution context, or return false to cancel.
//   - Post-hooks: lower priority runs first, so higher priority hooks see
//     the final result.
//
// Registering a hook under a name that is already taken replaces the old
// hook.
//
// # Built-in Hooks
//
//   - AuditHook: logs every dispatch through zap
//   - CountLimitHook: clamps the repeat count
//   - LastMotionHook: remembers the last successful motion so a front end
//     can repeat it
//   - TimingHook: reports handler durations
//
// # Usage
//
//	manager := hook.NewManager()
//	manager.Register(hook.NewAuditHook(logger))
//	manager.RegisterPre(hook.NewCountLimitHook(100))
//
//	if manager.RunPreDispatch(&action, ctx) {
//	    result := h.Handle(action, ctx)
//	    manager.RunPostDispatch(&action, ctx, &result)
//	}
//
// The Manager is safe for concurrent use.
package hook
