// Package buffer provides the immutable text snapshot the editor engine and
// the delimiter scanner read from.
//
// A Snapshot is built once from a string and never changes. It addresses
// text by character (Unicode code point) so that offsets line up with the
// columns editors show, and converts between linear offsets and
// line/column points:
//
//	snap := buffer.NewSnapshot("foo(\n  bar)\n")
//	snap.OffsetToPoint(10)                         // (1:5)
//	snap.PointToOffset(buffer.Point{Line: 1})      // 5
//	r, ok := snap.RuneAt(10)                       // ')', true
//
// Position Types:
//
//   - Offset: character index into the snapshot
//   - Point: line and column, both 0-indexed, column in characters
//   - PointUTF16: line and column with the column in UTF-16 code units,
//     for hosts that speak LSP-style positions
//
// Line Endings:
//
// Lines are split on "\n". A "\r" directly before the "\n" belongs to the
// terminator, so it is excluded from LineLen and LineText but still
// occupies an offset.
//
// Thread Safety:
//
// Snapshots are immutable and safe for concurrent use.
package buffer
