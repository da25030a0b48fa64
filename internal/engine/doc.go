// Package engine holds one document open for pair motions.
//
// An Engine combines an immutable buffer.Snapshot with a multi-cursor
// cursor.CursorSet and the path the text came from. It is the object the
// dispatcher hands to action handlers: handlers read text through it and
// move its cursors.
//
// # Basic Usage
//
//	e := engine.New("call(a, [b])", engine.WithCursors(cursor.NewCursorSelection(8)))
//	d.SetEngine(e)
//	d.SetCursors(e.Cursors())
//	d.Dispatch(input.NewAction("pair.exit", input.SourceAPI))
//	e.Cursors().Primary().Head // 11
//
// # Loading Files
//
//	e, err := engine.Open("main.go")
//	e, err := engine.NewFromReader(os.Stdin)
//
// # Replacing Text
//
// Engines never edit text. A host that sends a new version of the document
// calls Replace, which swaps in a fresh snapshot with a new revision and
// clamps the cursors into it.
//
// # Thread Safety
//
// Reads and Replace are safe for concurrent use. The CursorSet returned by
// Cursors is not; the dispatcher serializes access to it.
package engine
