// Package cursor provides the selection model the pair motions operate on.
//
// Selections use an anchor/head model. The head is where the cursor sits
// and where motions move it; the anchor stays put when a selection is
// extended. A zero-width selection (Anchor == Head) is a plain cursor.
//
// CursorSet keeps a document's selections sorted by position. Selections
// that overlap, or cursors that end up on the same offset after a motion,
// are merged, so a multi-cursor motion never produces duplicates.
//
// Selection is an immutable value type. CursorSet is not thread-safe; the
// dispatcher serializes access to it.
package cursor
