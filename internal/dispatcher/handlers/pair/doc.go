// Package pair provides the dispatcher handler for delimiter-pair motions.
//
// The handler owns the "pair" namespace:
//   - pair.exit: move past the closing delimiter of the enclosing pair
//   - pair.enter: move back onto the nearest closing delimiter, just inside
//     its pair
//   - pair.exitBackward: move onto the opening delimiter of the enclosing
//     pair
//   - pair.enterForward: move just past the next opening delimiter
//
// Every cursor moves independently. A repeat count applies the motion that
// many times per cursor and stops early once the cursor no longer moves. A
// cursor that carries a selection keeps its anchor and extends the
// selection; a plain cursor just moves. Cursors that land on the same
// offset are merged by the cursor set.
//
// The result is Success with data "moved" (how many cursors moved) when any
// cursor moved, and NoOp otherwise.
package pair
