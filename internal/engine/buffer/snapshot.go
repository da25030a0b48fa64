package buffer

import (
	"io"
	"unicode/utf16"
)

// Snapshot is an immutable, character-addressable view of a document.
// It is safe for concurrent reads.
type Snapshot struct {
	text       string
	runes      []rune
	lineStarts []Offset // offset of the first character of each line
	revisionID RevisionID
}

// NewSnapshot creates a snapshot of text.
// Invalid UTF-8 bytes decode to utf8.RuneError, one character each.
func NewSnapshot(text string) *Snapshot {
	s := &Snapshot{
		text:       text,
		runes:      []rune(text),
		revisionID: NewRevisionID(),
	}
	s.indexLines()
	return s
}

// NewSnapshotFromReader reads all of r into a snapshot.
func NewSnapshotFromReader(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(string(data)), nil
}

func (s *Snapshot) indexLines() {
	s.lineStarts = append(s.lineStarts[:0], 0)
	for i, r := range s.runes {
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return s.text
}

// Len returns the number of characters in the snapshot.
func (s *Snapshot) Len() Offset {
	return len(s.runes)
}

// IsEmpty returns true if the snapshot has no characters.
func (s *Snapshot) IsEmpty() bool {
	return len(s.runes) == 0
}

// RuneAt returns the character at offset.
// The second result is false when offset is outside [0, Len()).
func (s *Snapshot) RuneAt(offset Offset) (rune, bool) {
	if offset < 0 || offset >= len(s.runes) {
		return 0, false
	}
	return s.runes[offset], true
}

// Slice returns the characters in [start, end), clamped to the snapshot.
func (s *Snapshot) Slice(start, end Offset) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if end <= start {
		return ""
	}
	return string(s.runes[start:end])
}

// LineCount returns the number of lines. An empty snapshot has one line.
func (s *Snapshot) LineCount() uint32 {
	return uint32(len(s.lineStarts))
}

// LineStartOffset returns the offset of the first character of line.
// Lines past the end map to Len().
func (s *Snapshot) LineStartOffset(line uint32) Offset {
	if int(line) >= len(s.lineStarts) {
		return len(s.runes)
	}
	return s.lineStarts[line]
}

// LineEndOffset returns the offset just past the last character of line,
// excluding the line terminator ("\n" or "\r\n").
func (s *Snapshot) LineEndOffset(line uint32) Offset {
	if int(line) >= len(s.lineStarts) {
		return len(s.runes)
	}
	if int(line)+1 == len(s.lineStarts) {
		return len(s.runes)
	}
	end := s.lineStarts[line+1] - 1 // the '\n'
	if end > s.lineStarts[line] && s.runes[end-1] == '\r' {
		end--
	}
	return end
}

// LineLen returns the number of characters on line, without terminator.
func (s *Snapshot) LineLen(line uint32) uint32 {
	return uint32(s.LineEndOffset(line) - s.LineStartOffset(line))
}

// LineText returns the text of line without its terminator.
func (s *Snapshot) LineText(line uint32) string {
	return s.Slice(s.LineStartOffset(line), s.LineEndOffset(line))
}

// OffsetToPoint converts an offset to a line/column point.
// Offsets outside the snapshot are clamped.
func (s *Snapshot) OffsetToPoint(offset Offset) Point {
	offset = s.clamp(offset)
	line := s.lineOf(offset)
	return Point{
		Line:   uint32(line),
		Column: uint32(offset - s.lineStarts[line]),
	}
}

// PointToOffset converts a line/column point to an offset.
// Lines past the end clamp to Len(); columns past the line end clamp to
// the line end.
func (s *Snapshot) PointToOffset(point Point) Offset {
	if int(point.Line) >= len(s.lineStarts) {
		return len(s.runes)
	}
	start := s.lineStarts[point.Line]
	end := s.LineEndOffset(point.Line)
	offset := start + Offset(point.Column)
	if offset > end {
		offset = end
	}
	return offset
}

// OffsetToPointUTF16 converts an offset to a point whose column counts
// UTF-16 code units.
func (s *Snapshot) OffsetToPointUTF16(offset Offset) PointUTF16 {
	offset = s.clamp(offset)
	line := s.lineOf(offset)
	var col uint32
	for _, r := range s.runes[s.lineStarts[line]:offset] {
		col += uint32(utf16Len(r))
	}
	return PointUTF16{Line: uint32(line), Column: col}
}

// PointUTF16ToOffset converts a UTF-16 point to an offset.
// A column that falls inside a surrogate pair resolves to the character
// that owns the pair.
func (s *Snapshot) PointUTF16ToOffset(point PointUTF16) Offset {
	if int(point.Line) >= len(s.lineStarts) {
		return len(s.runes)
	}
	offset := s.lineStarts[point.Line]
	end := s.LineEndOffset(point.Line)
	var units uint32
	for offset < end {
		w := uint32(utf16Len(s.runes[offset]))
		if units+w > point.Column {
			break
		}
		units += w
		offset++
	}
	return offset
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// lineOf returns the index of the line containing offset.
func (s *Snapshot) lineOf(offset Offset) int {
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (s *Snapshot) clamp(offset Offset) Offset {
	if offset < 0 {
		return 0
	}
	if offset > len(s.runes) {
		return len(s.runes)
	}
	return offset
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}
