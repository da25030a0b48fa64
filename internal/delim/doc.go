// Package delim finds bracket and quote boundaries around a cursor.
//
// The scanner recognizes three bracket pairs, ( ) [ ] { }, and three
// quotes, " ' `, each of which opens and closes its own pair. A backslash
// escapes the character after it; escaped characters never count as
// delimiters.
//
// Four motions are provided:
//
//   - Exit: forward to just past the enclosing closer
//   - Enter: backward onto the nearest closer, landing inside that pair
//   - ExitBackward: backward onto the enclosing opener
//   - EnterForward: forward to just past the next opener
//
// Exit and ExitBackward skip complete pairs on the way with a depth
// counter. Quotes have no depth: the first unescaped matching quote ends
// the string.
//
// Every scan is a pure function of the text and one offset. "Not found"
// is an ordinary result, not an error: the Find functions report false and
// the motions leave the cursor where it was. The selection-level functions
// (ExitSelections, EnterSelections, ...) map a list of line/column cursors
// to a list of the same length.
package delim
