package delim

import "github.com/dshills/pairjump/internal/engine/buffer"

// Offset is an alias for buffer.Offset for convenience.
type Offset = buffer.Offset

// NoMatch is the sentinel offset for a scan that found nothing.
const NoMatch Offset = -1

// Reader is the read-only text a scan walks.
// buffer.Snapshot implements it.
type Reader interface {
	Len() Offset
	RuneAt(offset Offset) (rune, bool)
}

// FindExit scans forward from offset, inclusive, for the closing
// delimiter of the nearest enclosing pair. Pairs that open and close
// ahead of the cursor are skipped whole. It returns the offset of the
// closing character.
func FindExit(r Reader, offset Offset) (Offset, bool) {
	pos := scanExit(r, offset)
	return pos, pos != NoMatch
}

// FindEnter scans backward from the character before offset for the
// nearest closing delimiter and returns its offset.
func FindEnter(r Reader, offset Offset) (Offset, bool) {
	pos := scanEnter(r, offset)
	return pos, pos != NoMatch
}

// FindExitBackward scans backward from the character before offset for
// the opening delimiter of the nearest enclosing pair, skipping pairs that
// lie wholly behind the cursor. It returns the offset of the opening
// character.
func FindExitBackward(r Reader, offset Offset) (Offset, bool) {
	pos := scanExitBackward(r, offset)
	return pos, pos != NoMatch
}

// FindEnterForward scans forward from offset, inclusive, for the next
// opening delimiter and returns its offset.
func FindEnterForward(r Reader, offset Offset) (Offset, bool) {
	pos := scanEnterForward(r, offset)
	return pos, pos != NoMatch
}

// MatchClose returns the offset of the delimiter closing the pair opened
// at openAt. A quote is closed by the next unescaped occurrence of the same
// quote; brackets nest.
func MatchClose(r Reader, openAt Offset) (Offset, bool) {
	pos := matchClose(r, openAt)
	return pos, pos != NoMatch
}

// MatchOpen returns the offset of the delimiter opening the pair closed at
// closeAt, searching backward. It is the mirror of MatchClose.
func MatchOpen(r Reader, closeAt Offset) (Offset, bool) {
	pos := matchOpen(r, closeAt)
	return pos, pos != NoMatch
}

func scanExit(r Reader, offset Offset) Offset {
	n := r.Len()
	pos := max(offset, 0)
	// closes is built from base the first time an opener runs to the end
	// of the text unmatched. Later openers look their partner up instead
	// of rescanning to the edge.
	var closes []Offset
	var base Offset
	for pos < n {
		ch, _ := r.RuneAt(pos)
		if ch == Escape && pos+1 < n {
			pos += 2
			continue
		}
		if IsClosing(ch) {
			return pos
		}
		if IsOpening(ch) {
			end := NoMatch
			if closes != nil {
				end = closes[pos-base]
			} else if end = matchClose(r, pos); end == NoMatch {
				base = pos
				closes = pairForward(r, pos)
			}
			if end != NoMatch {
				pos = end + 1
				continue
			}
		}
		pos++
	}
	return NoMatch
}

func scanEnter(r Reader, offset Offset) Offset {
	if offset <= 0 {
		return NoMatch
	}
	pos := min(offset, r.Len()) - 1
	for pos >= 0 {
		if escapedBefore(r, pos) {
			pos -= 2
			continue
		}
		ch, _ := r.RuneAt(pos)
		if IsClosing(ch) {
			return pos
		}
		pos--
	}
	return NoMatch
}

func scanExitBackward(r Reader, offset Offset) Offset {
	if offset <= 0 {
		return NoMatch
	}
	pos := min(offset, r.Len()) - 1
	// opens mirrors closes in scanExit. It is indexed by offset.
	var opens []Offset
	for pos >= 0 {
		if escapedBefore(r, pos) {
			pos -= 2
			continue
		}
		ch, _ := r.RuneAt(pos)
		if IsOpening(ch) {
			return pos
		}
		if IsClosing(ch) {
			start := NoMatch
			if opens != nil {
				start = opens[pos]
			} else if start = matchOpen(r, pos); start == NoMatch {
				opens = pairBackward(r, pos)
			}
			if start != NoMatch {
				pos = start - 1
				continue
			}
		}
		pos--
	}
	return NoMatch
}

func scanEnterForward(r Reader, offset Offset) Offset {
	n := r.Len()
	pos := max(offset, 0)
	for pos < n {
		ch, _ := r.RuneAt(pos)
		if ch == Escape && pos+1 < n {
			pos += 2
			continue
		}
		if IsOpening(ch) {
			return pos
		}
		pos++
	}
	return NoMatch
}

func matchClose(r Reader, openAt Offset) Offset {
	opener, ok := r.RuneAt(openAt)
	if !ok {
		return NoMatch
	}
	closer, ok := Partner(opener)
	if !ok {
		return NoMatch
	}

	n := r.Len()
	depth := 1
	for pos := openAt + 1; pos < n; pos++ {
		ch, _ := r.RuneAt(pos)
		if ch == Escape && pos+1 < n {
			pos++
			continue
		}
		switch {
		case ch == closer:
			// For quotes opener == closer, so the first one ends the pair.
			depth--
			if depth == 0 {
				return pos
			}
		case ch == opener:
			depth++
		}
	}
	return NoMatch
}

func matchOpen(r Reader, closeAt Offset) Offset {
	closer, ok := r.RuneAt(closeAt)
	if !ok {
		return NoMatch
	}
	opener, ok := Partner(closer)
	if !ok {
		return NoMatch
	}

	depth := 1
	for pos := closeAt - 1; pos >= 0; pos-- {
		if escapedBefore(r, pos) {
			pos--
			continue
		}
		ch, _ := r.RuneAt(pos)
		switch {
		case ch == opener:
			depth--
			if depth == 0 {
				return pos
			}
		case ch == closer:
			depth++
		}
	}
	return NoMatch
}

// pairForward pairs every bracket from start to the end of the text in
// one pass. The result is indexed by offset-start and holds the partner of
// each opener, or NoMatch. The walk skips escapes exactly like matchClose,
// so for any opener it reaches the entry equals matchClose's answer.
func pairForward(r Reader, start Offset) []Offset {
	n := r.Len()
	table := make([]Offset, n-start)
	for i := range table {
		table[i] = NoMatch
	}
	var pending [bracketKinds][]Offset
	for pos := start; pos < n; pos++ {
		ch, _ := r.RuneAt(pos)
		if ch == Escape && pos+1 < n {
			pos++
			continue
		}
		kind, opening := bracketKind(ch)
		switch {
		case kind < 0:
		case opening:
			pending[kind] = append(pending[kind], pos)
		case len(pending[kind]) > 0:
			top := len(pending[kind]) - 1
			table[pending[kind][top]-start] = pos
			pending[kind] = pending[kind][:top]
		}
	}
	return table
}

// pairBackward is the mirror of pairForward, walking from start down to
// the beginning of the text. The result is indexed by offset and holds
// the partner of each closer, or NoMatch.
func pairBackward(r Reader, start Offset) []Offset {
	table := make([]Offset, start+1)
	for i := range table {
		table[i] = NoMatch
	}
	var pending [bracketKinds][]Offset
	for pos := start; pos >= 0; pos-- {
		if escapedBefore(r, pos) {
			pos--
			continue
		}
		ch, _ := r.RuneAt(pos)
		kind, opening := bracketKind(ch)
		switch {
		case kind < 0:
		case !opening:
			pending[kind] = append(pending[kind], pos)
		case len(pending[kind]) > 0:
			top := len(pending[kind]) - 1
			table[pending[kind][top]] = pos
			pending[kind] = pending[kind][:top]
		}
	}
	return table
}

// escapedBefore reports whether the character at pos follows an escape.
func escapedBefore(r Reader, pos Offset) bool {
	if pos <= 0 {
		return false
	}
	prev, _ := r.RuneAt(pos - 1)
	return prev == Escape
}
