// Package source owns the byte storage for one compilation unit: a
// UTF-8-validated buffer, a rune cursor with arbitrary-depth backtracking,
// and a line index built exactly once at load time.
package source

import (
	"os"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Buffer owns the bytes of one compilation unit and a rune cursor over
// them.
type Buffer struct {
	Name  string
	bytes []byte
	lines []Line

	offsetPos int // byte offset of curr
	curr      rune
	currWidth int

	marks  []int
	widths []int
}

// Load reads path from disk and builds a Buffer from its contents.
func Load(path string) (*Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newFault(FaultIO, 0, "%v", err)
	}
	return newBuffer(path, raw)
}

// LoadString builds a Buffer from an in-memory string, named for
// diagnostics purposes only.
func LoadString(name, text string) (*Buffer, error) {
	return newBuffer(name, []byte(text))
}

func newBuffer(name string, raw []byte) (*Buffer, error) {
	clean, err := stripLeadingBOM(raw)
	if err != nil {
		return nil, err
	}
	if len(clean) == 0 || clean[len(clean)-1] != '\n' {
		clean = append(clean, '\n')
	}

	b := &Buffer{Name: name, bytes: clean}
	if err := b.buildLineIndex(); err != nil {
		return nil, err
	}
	b.decodeAt(0)
	return b, nil
}

// stripLeadingBOM removes a byte-order mark at offset 0, recognized via
// golang.org/x/text/encoding/unicode, normalizing the result to plain
// UTF-8 bytes.
func stripLeadingBOM(raw []byte) ([]byte, error) {
	if len(raw) < 3 || raw[0] != 0xEF || raw[1] != 0xBB || raw[2] != 0xBF {
		return raw, nil
	}
	decoder := unicode.UTF8BOM.NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		return nil, newFault(FaultInvalidUTF8, 0, "failed decoding byte-order mark: %v", err)
	}
	return out, nil
}

// buildLineIndex scans the buffer exactly once, validating UTF-8 and NUL
// bytes, rejecting a byte-order mark anywhere but offset 0 (already
// stripped there), and recording every line's [begin,end) byte range.
func (b *Buffer) buildLineIndex() error {
	lines := make([]Line, 0, 64)
	lineStart := 0
	i := 0
	for i < len(b.bytes) {
		r, width := utf8.DecodeRune(b.bytes[i:])
		if r == utf8.RuneError && width <= 1 {
			return newFault(FaultInvalidUTF8, i, "illegal UTF-8 sequence")
		}
		if r == 0 {
			return newFault(FaultEmbeddedNUL, i, "embedded NUL byte")
		}
		if r == BOM {
			return newFault(FaultMisplacedBOM, i, "byte-order mark outside offset 0")
		}
		if r == '\n' {
			lines = append(lines, Line{Begin: lineStart, End: i + 1})
			lineStart = i + 1
		}
		i += width
	}
	if lineStart < len(b.bytes) {
		lines = append(lines, Line{Begin: lineStart, End: len(b.bytes)})
	}
	b.lines = lines
	return nil
}

// decodeAt repositions the cursor to byte offset i and decodes the rune
// there (EOF if i is at or past the end of the buffer).
func (b *Buffer) decodeAt(i int) {
	b.offsetPos = i
	if i >= len(b.bytes) {
		b.curr = EOF
		b.currWidth = 0
		return
	}
	r, w := utf8.DecodeRune(b.bytes[i:])
	b.curr = r
	b.currWidth = w
}

func (b *Buffer) atEnd() bool { return b.curr == EOF }

func (b *Buffer) offset() int { return b.offsetPos }

// Offset returns the byte offset of the rune currently under the cursor.
func (b *Buffer) Offset() int { return b.offsetPos }

// Curr returns the rune at the cursor without advancing it.
func (b *Buffer) Curr() rune { return b.curr }

// Next decodes the rune under the cursor, advances past it, and records
// its byte width so Prev can retreat.
func (b *Buffer) Next() (rune, error) {
	if b.atEnd() {
		return EOF, newFault(FaultSeekPastEnd, b.offset(), "advance past end of buffer")
	}
	r := b.curr
	b.widths = append(b.widths, b.currWidth)
	b.decodeAt(b.offsetPos + b.currWidth)
	return r, nil
}

// Prev retreats the cursor by the width of the most recently consumed
// rune. It fails if the width stack is empty.
func (b *Buffer) Prev() error {
	if len(b.widths) == 0 {
		return newFault(FaultNoMark, b.offset(), "no prior rune to retreat across")
	}
	w := b.widths[len(b.widths)-1]
	b.widths = b.widths[:len(b.widths)-1]
	b.decodeAt(b.offsetPos - w)
	return nil
}

// PushMark records the current cursor position for later backtracking.
func (b *Buffer) PushMark() {
	b.marks = append(b.marks, b.offsetPos)
}

// PopMark discards the most recent mark without moving the cursor.
func (b *Buffer) PopMark() (int, bool) {
	if len(b.marks) == 0 {
		return 0, false
	}
	m := b.marks[len(b.marks)-1]
	b.marks = b.marks[:len(b.marks)-1]
	return m, true
}

// RestoreTopMark seeks the cursor back to the most recent mark and pops
// it. It clears the whole width history, including widths recorded before
// the mark, so Prev fails until Next is called again.
func (b *Buffer) RestoreTopMark() error {
	if len(b.marks) == 0 {
		return newFault(FaultNoMark, b.offset(), "no mark to restore")
	}
	m := b.marks[len(b.marks)-1]
	b.marks = b.marks[:len(b.marks)-1]
	b.widths = b.widths[:0]
	b.decodeAt(m)
	return nil
}

// CurrentMark returns the most recently pushed mark without popping it.
func (b *Buffer) CurrentMark() (int, bool) {
	if len(b.marks) == 0 {
		return 0, false
	}
	return b.marks[len(b.marks)-1], true
}

// LineByIndex returns the line containing byte offset i, found by binary
// search over the sorted [Begin,End) ranges built at load time.
func (b *Buffer) LineByIndex(i int) (Line, bool) {
	n := len(b.lines)
	at := sort.Search(n, func(idx int) bool { return b.lines[idx].End > i })
	if at == n || i < b.lines[at].Begin {
		return Line{}, false
	}
	return b.lines[at], true
}

// LineIndexOf returns the 0-based index of the line containing byte offset
// i, for Position construction.
func (b *Buffer) LineIndexOf(i int) int {
	n := len(b.lines)
	return sort.Search(n, func(idx int) bool { return b.lines[idx].End > i })
}

// Substring returns the text of bytes [start,end) as a string.
func (b *Buffer) Substring(start, end int) string {
	return string(b.bytes[start:end])
}

// MakeSlice returns a non-owning view of length bytes starting at offset.
func (b *Buffer) MakeSlice(offset, length int) []byte {
	return b.bytes[offset : offset+length]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int { return len(b.bytes) }

// LineText returns the full text of the given line, including its
// trailing newline.
func (b *Buffer) LineText(l Line) string {
	return b.Substring(l.Begin, l.End)
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineAt returns the line at 0-based index idx.
func (b *Buffer) LineAt(idx int) (Line, bool) {
	if idx < 0 || idx >= len(b.lines) {
		return Line{}, false
	}
	return b.lines[idx], true
}

// PositionAt converts a byte offset into a line/column Position.
func (b *Buffer) PositionAt(offset int) Position {
	idx := b.LineIndexOf(offset)
	line, ok := b.LineAt(idx)
	if !ok {
		return Position{}
	}
	return Position{Line: idx, Column: offset - line.Begin}
}
