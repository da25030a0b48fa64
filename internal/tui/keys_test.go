package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tab", "Tab"},
		{"tab", "Tab"},
		{"Backtab", "Backtab"},
		{"ctrl+left", "Ctrl+Left"},
		{"Alt+Ctrl+Right", "Ctrl+Alt+Right"},
		{"Shift+Alt+x", "Alt+x"},
		{"Ctrl+A", "Ctrl+a"},
		{"space", "Space"},
		{"g", "g"},
		{"+", "+"},
		{"Ctrl++", "Ctrl++"},
		{"F5", "F5"},
		{"Escape", "Esc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeKeyErrors(t *testing.T) {
	for _, in := range []string{"Hyper+x", "NotAKey", "Ctrl+"} {
		_, err := NormalizeKey(in)
		assert.Error(t, err, in)
	}
}

func TestEventName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), "Backtab"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), "Ctrl+Left"},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), "Ctrl+Right"},
		{tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), "X"},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Esc"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EventName(tt.ev))
		})
	}
}

func TestDefaultKeymapNamesMatchEvents(t *testing.T) {
	ctrlLeft, err := NormalizeKey("Ctrl+Left")
	require.NoError(t, err)
	assert.Equal(t, EventName(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl)), ctrlLeft)

	backtab, err := NormalizeKey("Backtab")
	require.NoError(t, err)
	assert.Equal(t, EventName(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)), backtab)
}
