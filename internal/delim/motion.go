package delim

import "sort"

// Motion moves a cursor offset across a delimiter boundary.
// It returns the new offset and true, or the input offset and false when
// there is no boundary to cross.
type Motion func(r Reader, offset Offset) (Offset, bool)

// Exit places the cursor just past the closing delimiter of the enclosing
// pair.
func Exit(r Reader, offset Offset) (Offset, bool) {
	if c := scanExit(r, offset); c != NoMatch {
		return c + 1, true
	}
	return offset, false
}

// Enter places the cursor on the nearest closing delimiter behind it, just
// inside that pair.
func Enter(r Reader, offset Offset) (Offset, bool) {
	if c := scanEnter(r, offset); c != NoMatch {
		return c, true
	}
	return offset, false
}

// ExitBackward places the cursor on the opening delimiter of the enclosing
// pair, just outside it.
func ExitBackward(r Reader, offset Offset) (Offset, bool) {
	if c := scanExitBackward(r, offset); c != NoMatch {
		return c, true
	}
	return offset, false
}

// EnterForward places the cursor just past the next opening delimiter,
// inside that pair.
func EnterForward(r Reader, offset Offset) (Offset, bool) {
	if c := scanEnterForward(r, offset); c != NoMatch {
		return c + 1, true
	}
	return offset, false
}

// Repeat returns a motion that applies m up to count times, stopping at
// the first application that finds nothing. The result reports whether
// the cursor moved at all.
func Repeat(m Motion, count int) Motion {
	if count <= 1 {
		return m
	}
	return func(r Reader, offset Offset) (Offset, bool) {
		moved := false
		for i := 0; i < count; i++ {
			next, ok := m(r, offset)
			if !ok || next == offset {
				break
			}
			offset = next
			moved = true
		}
		return offset, moved
	}
}

var motions = map[string]Motion{
	"exit":         Exit,
	"enter":        Enter,
	"exitBackward": ExitBackward,
	"enterForward": EnterForward,
}

// Lookup returns the motion registered under name.
func Lookup(name string) (Motion, bool) {
	m, ok := motions[name]
	return m, ok
}

// Names returns the names of all motions, sorted.
func Names() []string {
	names := make([]string, 0, len(motions))
	for name := range motions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
