package lexer

import (
	"strings"

	"github.com/basecode-lang/basecode-sub005/escape"
	"github.com/basecode-lang/basecode-sub005/source"
)

// structuralEscapes are parsed into their canonical byte at tokenize time;
// numeric escapes (\x \u \U \D) are length-checked here and decoded at
// tokenize time too, by calling escape.Decode, per spec.md §4.4.
var structuralEscapes = map[rune]byte{
	'\\': '\\', '"': '"', '\'': '\'', 'a': '\a', 'b': '\b', 'e': 0x1b,
	'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

// lexString implements the `"..."` sub-tokenizer.
func lexString(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()
	_, _ = l.buf.Next() // consume opening quote

	var out strings.Builder
	for {
		c := l.buf.Curr()
		switch {
		case c == source.EOF || c == '\n':
			return Token{}, &lexError{msg: "unterminated string literal"}
		case c == '"':
			_, _ = l.buf.Next()
			endOffset := l.buf.Offset()
			loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
			return Token{Type: TokenString, Lexeme: out.String(), Loc: loc}, nil
		case c == '\\':
			_, _ = l.buf.Next()
			if err := lexEscapeBody(l, &out); err != nil {
				return Token{}, err
			}
		default:
			out.WriteRune(c)
			_, _ = l.buf.Next()
		}
	}
}

// lexEscapeBody accepts (and, for structural escapes, materializes) one
// escape sequence after the backslash has been consumed.
func lexEscapeBody(l *Lexer, out *strings.Builder) error {
	c := l.buf.Curr()
	if b, ok := structuralEscapes[c]; ok {
		out.WriteByte(b)
		_, _ = l.buf.Next()
		return nil
	}

	switch c {
	case 'x':
		return lexNumericEscape(l, out, 2)
	case 'u':
		return lexNumericEscape(l, out, 4)
	case 'U':
		return lexNumericEscape(l, out, 8)
	default:
		if c >= '0' && c <= '9' {
			return lexDecimalEscape(l, out)
		}
		return &lexError{msg: "unknown escape sequence"}
	}
}

func lexNumericEscape(l *Lexer, out *strings.Builder, n int) error {
	var body strings.Builder
	body.WriteRune(l.buf.Curr())
	_, _ = l.buf.Next()
	for i := 0; i < n; i++ {
		if !source.IsXDigit(l.buf.Curr()) {
			return &lexError{msg: "bad escape digits"}
		}
		body.WriteRune(l.buf.Curr())
		_, _ = l.buf.Next()
	}
	decoded, _, err := escape.Decode(body.String())
	if err != nil {
		return err
	}
	out.Write(decoded)
	return nil
}

func lexDecimalEscape(l *Lexer, out *strings.Builder) error {
	var body strings.Builder
	for i := 0; i < 3 && l.buf.Curr() >= '0' && l.buf.Curr() <= '9'; i++ {
		body.WriteRune(l.buf.Curr())
		_, _ = l.buf.Next()
	}
	decoded, _, err := escape.Decode(body.String())
	if err != nil {
		return err
	}
	out.Write(decoded)
	return nil
}

// lexBlockLiteral implements the `{{ ... }}` sub-tokenizer.
func lexBlockLiteral(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()
	_, _ = l.buf.Next() // consume first {
	_, _ = l.buf.Next() // consume second {

	bodyStart := l.buf.Offset()
	for {
		c := l.buf.Curr()
		if c == source.EOF {
			return Token{}, &lexError{msg: "unterminated block literal"}
		}
		if c == '}' {
			peekMark := l.buf.Offset()
			_, _ = l.buf.Next()
			if l.buf.Curr() == '}' {
				bodyEnd := peekMark
				_, _ = l.buf.Next()
				body := l.buf.Substring(bodyStart, bodyEnd)
				endOffset := l.buf.Offset()
				loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
				_ = startOffset
				return Token{Type: TokenBlockLiteral, Lexeme: body, Loc: loc}, nil
			}
			continue
		}
		_, _ = l.buf.Next()
	}
}
