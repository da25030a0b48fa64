package delim

// Class describes the role a character plays as a delimiter.
type Class uint8

const (
	// None is any character that is not a delimiter.
	None Class = iota
	// Open is an opening bracket: ( [ {
	Open
	// Close is a closing bracket: ) ] }
	Close
	// Quote opens and closes a pair by itself: " ' `
	Quote
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Open:
		return "open"
	case Close:
		return "close"
	case Quote:
		return "quote"
	default:
		return "none"
	}
}

// Escape marks the character after it as literal.
const Escape = '\\'

// Classify returns the delimiter class of r.
// Classification depends on the character alone.
func Classify(r rune) Class {
	switch r {
	case '(', '[', '{':
		return Open
	case ')', ']', '}':
		return Close
	case '"', '\'', '`':
		return Quote
	}
	return None
}

// IsOpening reports whether r can open a pair. Quotes can.
func IsOpening(r rune) bool {
	c := Classify(r)
	return c == Open || c == Quote
}

// IsClosing reports whether r can close a pair. Quotes can.
func IsClosing(r rune) bool {
	c := Classify(r)
	return c == Close || c == Quote
}

// Partner returns the character that pairs with r.
// Quotes are their own partner. The second result is false for
// non-delimiters.
func Partner(r rune) (rune, bool) {
	switch r {
	case '(':
		return ')', true
	case ')':
		return '(', true
	case '[':
		return ']', true
	case ']':
		return '[', true
	case '{':
		return '}', true
	case '}':
		return '{', true
	case '"', '\'', '`':
		return r, true
	}
	return 0, false
}

// bracketKinds is the number of bracket pairs.
const bracketKinds = 3

// bracketKind returns the pair index of a bracket and whether it opens.
// The index is -1 for anything that is not a bracket, quotes included.
func bracketKind(r rune) (int, bool) {
	switch r {
	case '(':
		return 0, true
	case ')':
		return 0, false
	case '[':
		return 1, true
	case ']':
		return 1, false
	case '{':
		return 2, true
	case '}':
		return 2, false
	}
	return -1, false
}
