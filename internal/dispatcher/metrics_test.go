package dispatcher_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/pairjump/internal/dispatcher"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
)

func TestMetricsPerAction(t *testing.T) {
	m := dispatcher.NewMetrics()
	m.RecordDispatch("pair.exit", 2*time.Millisecond, handler.StatusOK)
	m.RecordDispatch("pair.exit", 4*time.Millisecond, handler.StatusError)
	m.RecordDispatch("pair.enter", time.Millisecond, handler.StatusNoOp)

	top := m.TopActions(1)
	require.Len(t, top, 1)
	stats := top[0]
	assert.Equal(t, "pair.exit", stats.Name)
	assert.Equal(t, uint64(2), stats.DispatchCount)
	assert.Equal(t, uint64(1), stats.ErrorCount)
	assert.Equal(t, 2*time.Millisecond, stats.MinDuration)
	assert.Equal(t, 4*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 3*time.Millisecond, stats.AverageActionDuration())
	assert.InDelta(t, 50.0, stats.ErrorRate(), 0.001)
	assert.Equal(t, handler.StatusError, stats.LastStatus)

	stats.DispatchCount = 99
	assert.Equal(t, uint64(2), m.TopActions(1)[0].DispatchCount, "TopActions returns copies")
}

func TestMetricsEmptyAction(t *testing.T) {
	var am dispatcher.ActionMetrics
	assert.Zero(t, am.AverageActionDuration())
	assert.Zero(t, am.ErrorRate())
}

func TestMetricsTopActions(t *testing.T) {
	m := dispatcher.NewMetrics()
	for i := 0; i < 3; i++ {
		m.RecordDispatch("pair.exit", 0, handler.StatusOK)
	}
	m.RecordDispatch("pair.enter", 0, handler.StatusOK)
	m.RecordDispatch("pair.enterForward", 0, handler.StatusOK)

	top := m.TopActions(2)
	require.Len(t, top, 2)
	assert.Equal(t, "pair.exit", top[0].Name)
	assert.Equal(t, "pair.enter", top[1].Name, "ties break by name")
	assert.Len(t, m.TopActions(10), 3)
}

func TestMetricsSnapshot(t *testing.T) {
	m := dispatcher.NewMetrics()
	m.RecordDispatch("pair.exit", 2*time.Millisecond, handler.StatusOK)
	m.RecordDispatch("pair.exit", 4*time.Millisecond, handler.StatusNoOp)
	m.RecordPanic("pair.exit")

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.TotalDispatches)
	assert.Equal(t, uint64(1), snap.TotalPanics)
	assert.Equal(t, 3*time.Millisecond, snap.AverageDuration)
	assert.Equal(t, map[string]uint64{"ok": 1, "no-op": 1}, snap.Statuses)
	assert.Equal(t, map[string]uint64{"pair.exit": 2}, snap.Actions)

	assert.Zero(t, dispatcher.NewMetrics().Snapshot().AverageDuration)
}
