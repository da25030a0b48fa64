package lua

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/pairjump/internal/dispatcher"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	"github.com/dshills/pairjump/internal/dispatcher/handlers/pair"
	"github.com/dshills/pairjump/internal/engine"
	"github.com/dshills/pairjump/internal/engine/cursor"
	"github.com/dshills/pairjump/internal/input"
)

func newHost(t *testing.T, text string, offsets ...int) (*Host, *dispatcher.Dispatcher, *engine.Engine) {
	t.Helper()
	sels := make([]cursor.Selection, len(offsets))
	for i, off := range offsets {
		sels[i] = cursor.NewCursorSelection(off)
	}
	e := engine.New(text, engine.WithCursors(sels...))
	d := dispatcher.NewWithDefaults()
	d.SetEngine(e)
	d.SetCursors(e.Cursors())
	d.RegisterNamespace(pair.Namespace, pair.NewHandler())

	h := NewHost(d)
	t.Cleanup(func() { _ = h.Close() })
	return h, d, e
}

func heads(e *engine.Engine) []int {
	var out []int
	for _, sel := range e.Cursors().All() {
		out = append(out, sel.Head)
	}
	return out
}

func TestPairModuleMotions(t *testing.T) {
	h, _, _ := newHost(t, "")

	require.NoError(t, h.LoadString(`
		a = pair.exit("f(a, b)", 3)
		b = pair.enter("f(a) x", 5)
		c = pair.exit_backward("x (a [b] c)", 9)
		d = pair.enter_forward("x {y}", 0)
		e = pair.exit("plain", 2)
		f = pair.enter("(a)", 0)
	`))

	L := h.state.L
	assert.Equal(t, lua.LNumber(7), L.GetGlobal("a"))
	assert.Equal(t, lua.LNumber(3), L.GetGlobal("b"))
	assert.Equal(t, lua.LNumber(2), L.GetGlobal("c"))
	assert.Equal(t, lua.LNumber(3), L.GetGlobal("d"))
	assert.Equal(t, lua.LNil, L.GetGlobal("e"))
	assert.Equal(t, lua.LNil, L.GetGlobal("f"))
}

func TestSandboxHasNoSystemAccess(t *testing.T) {
	h, _, _ := newHost(t, "")

	for _, global := range []string{"os", "io", "debug", "package", "require", "dofile", "loadfile", "load", "loadstring"} {
		assert.Equal(t, lua.LNil, h.state.L.GetGlobal(global), global)
	}
	assert.Error(t, h.LoadString(`os.exit(1)`))
	assert.Error(t, h.LoadString(`io.open("/etc/passwd")`))

	require.NoError(t, h.LoadString(`x = string.upper("ok") .. math.floor(1.5) .. table.concat({"a"})`))
	assert.Equal(t, lua.LString("OK1a"), h.state.L.GetGlobal("x"))
}

func TestRegisterAndDispatch(t *testing.T) {
	h, d, e := newHost(t, "a(b[c{d}e]f)g", 6)

	require.NoError(t, h.LoadFile(filepath.Join("testdata", "init.lua")))
	assert.Equal(t, []string{"user.first_line", "user.out2"}, h.Actions())
	assert.True(t, d.CanDispatch("user.out2"))

	result := d.Dispatch(input.NewAction("user.out2", input.SourceKeyboard))
	require.True(t, result.IsOK(), "error: %v", result.Error)
	assert.Equal(t, []int{10}, heads(e))

	result = d.Dispatch(input.NewAction("user.first_line", input.SourceKeyboard))
	require.True(t, result.IsOK(), "error: %v", result.Error)
	assert.Equal(t, []int{0}, heads(e))

	// nothing encloses offset 0, so the nested exit is a no-op
	result = d.Dispatch(input.NewAction("user.out2", input.SourceKeyboard))
	assert.Equal(t, handler.StatusNoOp, result.Status)
}

func TestUserActionCallsUserAction(t *testing.T) {
	h, d, e := newHost(t, "(x) (y)", 1)

	require.NoError(t, h.LoadString(`
		pair.register("step", function(doc) doc.dispatch("pair.exit") end)
		pair.register("twice", function(doc)
			doc.dispatch("user.step")
			doc.dispatch("pair.enterForward")
			doc.dispatch("user.step")
		end)
	`))

	done := make(chan handler.Result, 1)
	go func() { done <- d.Dispatch(input.NewAction("user.twice", input.SourceAPI)) }()

	select {
	case result := <-done:
		require.True(t, result.IsOK(), "error: %v", result.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("nested dispatch deadlocked")
	}
	assert.Equal(t, []int{7}, heads(e))
}

func TestDocTable(t *testing.T) {
	h, d, _ := newHost(t, "ab\n(cd)", 4, 1)

	require.NoError(t, h.LoadString(`
		pair.register("inspect", function(doc)
			text = doc.text()
			local cs = doc.cursors()
			n = #cs
			l1, c1 = cs[1].line, cs[1].col
			l2, c2 = cs[2].line, cs[2].col
		end)
	`))

	result := d.Dispatch(input.NewAction("user.inspect", input.SourceAPI))
	require.True(t, result.IsOK(), "error: %v", result.Error)

	L := h.state.L
	assert.Equal(t, lua.LString("ab\n(cd)"), L.GetGlobal("text"))
	assert.Equal(t, lua.LNumber(2), L.GetGlobal("n"))
	assert.Equal(t, []lua.LValue{lua.LNumber(0), lua.LNumber(1)}, []lua.LValue{L.GetGlobal("l1"), L.GetGlobal("c1")})
	assert.Equal(t, []lua.LValue{lua.LNumber(1), lua.LNumber(1)}, []lua.LValue{L.GetGlobal("l2"), L.GetGlobal("c2")})
}

func TestScriptErrorsBecomeResults(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := engine.New("(x)")
	d := dispatcher.NewWithDefaults()
	d.SetEngine(e)
	d.SetCursors(e.Cursors())
	h := NewHost(d, WithLogger(zap.New(core)))
	defer h.Close()

	require.NoError(t, h.LoadString(`pair.register("boom", function(doc) error("kaboom") end)`))

	result := d.Dispatch(input.NewAction("user.boom", input.SourceAPI))
	require.True(t, result.IsError())
	assert.Contains(t, result.Error.Error(), "kaboom")
	assert.Equal(t, 1, logs.FilterMessage("plugin action failed").Len())
}

func TestRegisterRejectsBadName(t *testing.T) {
	h, _, _ := newHost(t, "")
	assert.Error(t, h.LoadString(`pair.register("has space", function() end)`))
	assert.Error(t, h.LoadString(`pair.register("x", 42)`))
	assert.Empty(t, h.Actions())
}

func TestPrintGoesToLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewHost(dispatcher.NewWithDefaults(), WithLogger(zap.New(core)))
	defer h.Close()

	require.NoError(t, h.LoadString(`print("hello", 42)`))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello\t42", logs.All()[0].Message)
}

func TestRunScript(t *testing.T) {
	h, _, e := newHost(t, "say(hello) done", 5)

	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(`doc.dispatch("pair.exit")`), 0o644))

	require.NoError(t, h.RunScript(path))
	assert.Equal(t, []int{10}, heads(e))
	assert.Equal(t, lua.LNil, h.state.L.GetGlobal("doc"))
}

func TestRunScriptRejectsUnknownAction(t *testing.T) {
	h, _, e := newHost(t, "say(hello) done", 5)

	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(`doc.dispatch("pair.nope")`), 0o644))

	err := h.RunScript(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action: pair.nope")
	assert.Equal(t, []int{5}, heads(e))
}

func TestRunScriptWithoutDocument(t *testing.T) {
	h := NewHost(dispatcher.NewWithDefaults())
	defer h.Close()
	assert.Error(t, h.RunScript("unused.lua"))
}

func TestExecutionTimeout(t *testing.T) {
	h := NewHost(dispatcher.NewWithDefaults(), WithStateOptions(WithExecutionTimeout(50*time.Millisecond)))
	defer h.Close()

	err := h.LoadString(`while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)
}

func TestClosedState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString("x = 1"), ErrStateClosed)
	assert.NoError(t, s.Close())
}
