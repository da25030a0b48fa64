package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/dshills/pairjump/internal/app"
	"github.com/dshills/pairjump/internal/config"
	"github.com/dshills/pairjump/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/pairjump/internal/dispatcher/handlers/cursor"
	"github.com/dshills/pairjump/internal/engine"
	"github.com/dshills/pairjump/internal/engine/buffer"
	"github.com/dshills/pairjump/internal/input"
)

// TabWidth is the display width of a tab stop.
const TabWidth = 4

// builtinKeys are the movement keys used when the keymap does not bind them.
var builtinKeys = map[string]string{
	"h":     cursorhandler.ActionMoveLeft,
	"Left":  cursorhandler.ActionMoveLeft,
	"l":     cursorhandler.ActionMoveRight,
	"Right": cursorhandler.ActionMoveRight,
	"k":     cursorhandler.ActionMoveUp,
	"Up":    cursorhandler.ActionMoveUp,
	"j":     cursorhandler.ActionMoveDown,
	"Down":  cursorhandler.ActionMoveDown,
	"Home":  cursorhandler.ActionMoveLineStart,
	"End":   cursorhandler.ActionMoveLineEnd,
	"g":     cursorhandler.ActionMoveFirstLine,
	"G":     cursorhandler.ActionMoveLastLine,
	"Space": cursorhandler.ActionCollapse,
}

var (
	styleText    = tcell.StyleDefault
	styleGutter  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurrent = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleSelect  = tcell.StyleDefault.Underline(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// Viewer draws the application's document on a screen and turns key
// events into cursor moves and dispatched actions.
type Viewer struct {
	app    *app.Application
	screen tcell.Screen
	logger *zap.Logger

	input *input.Context

	keymap     map[string]string
	keymapFrom *config.Config

	top, left int
	status    string
	quit      bool
}

// New creates a viewer. The screen must already be initialized.
func New(a *app.Application, screen tcell.Screen) *Viewer {
	return &Viewer{
		app:    a,
		screen: screen,
		logger: a.Logger().Named("tui"),
		input:  input.NewContext(),
	}
}

// Run opens the terminal, runs a viewer on it until the user quits or ctx
// is cancelled, and restores the terminal.
func Run(ctx context.Context, a *app.Application) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	return New(a, screen).Run(ctx)
}

// Run processes events until the user quits or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	e := v.app.Document()
	if e == nil {
		return app.ErrNoDocument
	}
	v.input.FilePath = e.FilePath()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	v.draw()
	for !v.quit {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			v.handleKey(ev)
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
		v.draw()
	}
	return nil
}

// Status returns the status message of the last key.
func (v *Viewer) Status() string {
	return v.status
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	name := EventName(ev)

	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		r := ev.Rune()
		if r >= '1' && r <= '9' || r == '0' && v.input.HasPendingCount() {
			v.input.AccumulateCount(int(r - '0'))
			v.status = ""
			return
		}
	}

	if action, ok := v.bindings()[name]; ok {
		v.dispatch(action)
		return
	}

	if action, ok := builtinKeys[name]; ok {
		v.dispatch(action)
		return
	}

	v.input.ClearPending()
	switch name {
	case "q", "Esc", "Ctrl+c":
		v.quit = true
	case ".":
		v.report("repeat", v.app.RepeatLastMotion())
	default:
		v.status = "unbound key " + name
	}
}

func (v *Viewer) dispatch(name string) {
	action := input.NewAction(name, input.SourceKeyboard)
	result := v.app.Dispatcher().DispatchWithContext(action, v.input)
	v.input.ClearPending()
	v.report(name, result)
}

func (v *Viewer) report(name string, result handler.Result) {
	switch {
	case result.IsError():
		v.logger.Debug("action failed", zap.String("action", name), zap.Error(result.Error))
		v.status = fmt.Sprintf("%s: %v", name, result.Error)
	case result.Message != "":
		v.status = fmt.Sprintf("%s: %s (%s)", name, result.Status, result.Message)
	default:
		v.status = fmt.Sprintf("%s: %s", name, result.Status)
	}
}

// bindings returns the keymap of the active config in canonical key names.
func (v *Viewer) bindings() map[string]string {
	cfg := v.app.Config()
	if cfg == v.keymapFrom && v.keymap != nil {
		return v.keymap
	}
	d := v.app.Dispatcher()
	v.keymap = make(map[string]string, len(cfg.Keymap))
	for _, b := range cfg.Keymap.Bindings() {
		key, err := NormalizeKey(b.Key)
		if err != nil {
			v.logger.Warn("ignoring key binding", zap.String("key", b.Key), zap.Error(err))
			continue
		}
		if !d.CanDispatch(b.Action) {
			v.logger.Warn("ignoring key binding to unknown action",
				zap.String("key", b.Key), zap.String("action", b.Action))
			continue
		}
		v.keymap[key] = b.Action
	}
	v.keymapFrom = cfg
	return v.keymap
}

func primaryPoint(e *engine.Engine, snap *buffer.Snapshot) buffer.Point {
	return snap.OffsetToPoint(e.Cursors().Primary().Head)
}

func (v *Viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1
	if rows < 1 || width < 1 {
		v.screen.Show()
		return
	}

	e := v.app.Document()
	snap := e.Snapshot()
	primary := primaryPoint(e, snap)

	m := marks{heads: make(map[buffer.Offset]bool), primary: primary}
	for _, sel := range e.Cursors().All() {
		m.heads[sel.Head] = true
		if !sel.IsEmpty() {
			m.ranges = append(m.ranges, sel.Range())
		}
	}

	gutter := len(strconv.Itoa(int(snap.LineCount()))) + 1
	textWidth := max(width-gutter, 1)

	line := int(primary.Line)
	if line < v.top {
		v.top = line
	}
	if line >= v.top+rows {
		v.top = line - rows + 1
	}
	cx := displayColumn(snap.LineText(primary.Line), int(primary.Column))
	if cx < v.left {
		v.left = cx
	}
	if cx >= v.left+textWidth {
		v.left = cx - textWidth + 1
	}

	for row := 0; row < rows; row++ {
		ln := v.top + row
		if ln >= int(snap.LineCount()) {
			break
		}
		numStyle := styleGutter
		if ln == line {
			numStyle = styleCurrent
		}
		drawString(v.screen, 0, row, fmt.Sprintf("%*d ", gutter-1, ln+1), numStyle)
		v.drawLine(snap, uint32(ln), row, gutter, width, m)
	}

	v.drawStatus(e, primary, width, height-1)
	v.screen.ShowCursor(gutter+cx-v.left, line-v.top)
	v.screen.Show()
}

// marks are the cursor heads and selected ranges drawn over the text.
type marks struct {
	heads   map[buffer.Offset]bool
	ranges  []buffer.Range
	primary buffer.Point
}

// style returns the style of the character at offset, which sits at
// column col of line ln. The terminal cursor shows the primary head.
func (m marks) style(offset buffer.Offset, ln, col uint32) tcell.Style {
	if m.heads[offset] && !(ln == m.primary.Line && col == m.primary.Column) {
		return styleCursor
	}
	for _, r := range m.ranges {
		if r.Contains(offset) {
			return styleSelect
		}
	}
	return styleText
}

func (v *Viewer) drawLine(snap *buffer.Snapshot, ln uint32, row, gutter, width int, m marks) {
	start := snap.LineStartOffset(ln)
	col := 0
	for i, r := range []rune(snap.LineText(ln)) {
		w := runeWidth(r, col)
		x := gutter + col - v.left
		col += w
		if w == 0 || x < gutter || x+w > width {
			continue
		}
		style := m.style(start+i, ln, uint32(i))
		if r == '\t' {
			for j := 0; j < w; j++ {
				v.screen.SetContent(x+j, row, ' ', nil, style)
			}
			continue
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

func (v *Viewer) drawStatus(e *engine.Engine, primary buffer.Point, width, row int) {
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, row, ' ', nil, styleStatus)
	}

	name := e.FilePath()
	if name == "" {
		name = "[stdin]"
	}
	text := fmt.Sprintf(" %s  %d:%d", name, primary.Line+1, primary.Column+1)
	if n := len(e.Cursors().All()); n > 1 {
		text += fmt.Sprintf(" (%d cursors)", n)
	}
	if v.input.HasPendingCount() {
		text += fmt.Sprintf("  [%d]", v.input.PendingCount)
	}
	if v.status != "" {
		text += "  " + v.status
	}
	drawString(v.screen, 0, row, text, styleStatus)
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// displayColumn returns the display width of the first n characters of
// line.
func displayColumn(line string, n int) int {
	col := 0
	for i, r := range []rune(line) {
		if i >= n {
			break
		}
		col += runeWidth(r, col)
	}
	return col
}

// runeWidth is the display width of r drawn at display column col.
func runeWidth(r rune, col int) int {
	if r == '\t' {
		return TabWidth - col%TabWidth
	}
	return runewidth.RuneWidth(r)
}
