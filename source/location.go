package source

import "fmt"

// Position is a 0-based line/column pair. Column is a byte offset within
// the line, not a rune offset, matching the teacher's Position.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Location spans from Start (the first byte) to End (one past the last
// byte, exclusive). Every token and diagnostic carries one.
type Location struct {
	Start Position
	End   Position
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Line is a half-open byte range [Begin, End) covering exactly one line,
// including its trailing newline.
type Line struct {
	Begin int
	End   int
}
