package delim

import "github.com/dshills/pairjump/internal/engine/buffer"

// PointReader is a Reader that also converts between offsets and
// line/column points.
type PointReader interface {
	Reader
	OffsetToPoint(offset Offset) buffer.Point
	PointToOffset(point buffer.Point) Offset
}

// ExitSelections moves every cursor past the closing delimiter of its
// enclosing pair. The result has one entry per input cursor, in the same
// order; cursors with no enclosing pair are returned unchanged.
func ExitSelections(buf PointReader, cursors []buffer.Point) []buffer.Point {
	return Apply(buf, Exit, cursors)
}

// EnterSelections moves every cursor onto the nearest closing delimiter
// behind it. Cursors with nothing to enter are returned unchanged.
func EnterSelections(buf PointReader, cursors []buffer.Point) []buffer.Point {
	return Apply(buf, Enter, cursors)
}

// ExitBackwardSelections moves every cursor onto the opening delimiter of
// its enclosing pair.
func ExitBackwardSelections(buf PointReader, cursors []buffer.Point) []buffer.Point {
	return Apply(buf, ExitBackward, cursors)
}

// EnterForwardSelections moves every cursor just past the next opening
// delimiter.
func EnterForwardSelections(buf PointReader, cursors []buffer.Point) []buffer.Point {
	return Apply(buf, EnterForward, cursors)
}

// Apply runs m for each cursor independently. Output length always equals
// input length.
func Apply(buf PointReader, m Motion, cursors []buffer.Point) []buffer.Point {
	out := make([]buffer.Point, len(cursors))
	for i, p := range cursors {
		next, ok := m(buf, buf.PointToOffset(p))
		if !ok {
			out[i] = p
			continue
		}
		out[i] = buf.OffsetToPoint(next)
	}
	return out
}
