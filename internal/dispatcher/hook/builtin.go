package hook

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/dispatcher/execctx"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/input"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // Runs first (pre) / last (post)
	PriorityCountLimit = 900  // Enforce count limits early
	PriorityLastMotion = 500
	PriorityTiming     = 100
)

// AuditHook logs all dispatched actions.
type AuditHook struct {
	logger *zap.Logger
}

// NewAuditHook creates an audit hook. A nil logger disables it.
func NewAuditHook(logger *zap.Logger) *AuditHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the action being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	h.logger.Debug("dispatch start",
		zap.String("action", action.Name),
		zap.Stringer("source", action.Source),
		zap.Int("count", ctx.GetCount()),
	)
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.Status == handler.StatusError {
		h.logger.Warn("dispatch failed",
			zap.String("action", action.Name),
			zap.Error(result.Error),
		)
		return
	}
	h.logger.Debug("dispatch complete",
		zap.String("action", action.Name),
		zap.Stringer("status", result.Status),
	)
}

// CountLimitHook enforces a maximum repeat count.
type CountLimitHook struct {
	maxCount int
}

// NewCountLimitHook creates a count limit hook. Zero means no limit.
func NewCountLimitHook(maxCount int) *CountLimitHook {
	return &CountLimitHook{maxCount: maxCount}
}

// Name implements Hook.
func (h *CountLimitHook) Name() string { return "count-limit" }

// Priority implements Hook.
func (h *CountLimitHook) Priority() int { return PriorityCountLimit }

// PreDispatch clamps the repeat count.
func (h *CountLimitHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.maxCount > 0 && ctx.Count > h.maxCount {
		ctx.Count = h.maxCount
	}
	return true
}

// LastMotionHook remembers the last motion that moved a cursor, so a front
// end can bind a "repeat" key to it.
type LastMotionHook struct {
	mu         sync.RWMutex
	namespaces []string
	last       *input.Action
	lastCount  int
}

// NewLastMotionHook creates a hook that records successful actions in the
// given namespaces.
func NewLastMotionHook(namespaces ...string) *LastMotionHook {
	return &LastMotionHook{namespaces: namespaces}
}

// Name implements Hook.
func (h *LastMotionHook) Name() string { return "last-motion" }

// Priority implements Hook.
func (h *LastMotionHook) Priority() int { return PriorityLastMotion }

// PostDispatch records action when it succeeded.
func (h *LastMotionHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if result.Status != handler.StatusOK || !h.tracks(action.Name) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = copyAction(action)
	h.lastCount = ctx.GetCount()
}

func (h *LastMotionHook) tracks(name string) bool {
	for _, ns := range h.namespaces {
		if strings.HasPrefix(name, ns+".") {
			return true
		}
	}
	return false
}

// LastAction returns a copy of the last recorded action and its count.
// Returns nil if nothing has been recorded.
func (h *LastMotionHook) LastAction() (*input.Action, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.last == nil {
		return nil, 0
	}
	return copyAction(h.last), h.lastCount
}

func copyAction(action *input.Action) *input.Action {
	actionCopy := *action
	if action.Args.Extra != nil {
		actionCopy.Args.Extra = make(map[string]interface{}, len(action.Args.Extra))
		for k, v := range action.Args.Extra {
			actionCopy.Args.Extra[k] = v
		}
	}
	return &actionCopy
}

// TimingHook measures action execution time.
// Start times live on the ExecutionContext, so concurrent dispatches do not
// interfere.
type TimingHook struct {
	callback func(action string, duration time.Duration)
}

const timingStartKey = "_timing_start"

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(action string, duration time.Duration)) *TimingHook {
	return &TimingHook{callback: callback}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityTiming }

// PreDispatch records the start time on the context.
func (h *TimingHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	ctx.SetData(timingStartKey, time.Now())
	return true
}

// PostDispatch reports the duration.
func (h *TimingHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	v, ok := ctx.GetData(timingStartKey)
	if !ok {
		return
	}
	if start, ok := v.(time.Time); ok && h.callback != nil {
		h.callback(action.Name, time.Since(start))
	}
}
