package lexer

import (
	"math"
	"strconv"
	"strings"

	"github.com/basecode-lang/basecode-sub005/source"
)

// lexDecimalNumber implements spec.md §4.4's decimal sub-tokenizer: an
// optional leading '-' (the trie's "-0".."-9" keys route here, and Next
// rewinds to the start of the lexeme, so this function consumes it), digits with
// '_' skipped, an optional single '.', an optional e[+-]digits exponent,
// and an optional trailing 'i' for imaginary.
func lexDecimalNumber(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()

	negative := false
	if l.buf.Curr() == '-' {
		negative = true
		_, _ = l.buf.Next()
	}

	var digits strings.Builder
	if negative {
		digits.WriteByte('-')
	}
	consumeDigits(l, &digits, source.IsDigit)

	isFloat := false
	if l.buf.Curr() == '.' {
		isFloat = true
		digits.WriteByte('.')
		_, _ = l.buf.Next()
		consumeDigits(l, &digits, source.IsDigit)
	}

	if l.buf.Curr() == 'e' || l.buf.Curr() == 'E' {
		isFloat = true
		digits.WriteByte('e')
		_, _ = l.buf.Next()
		if l.buf.Curr() == '+' || l.buf.Curr() == '-' {
			digits.WriteRune(l.buf.Curr())
			_, _ = l.buf.Next()
		}
		consumeDigits(l, &digits, source.IsDigit)
	}

	imaginary := false
	if l.buf.Curr() == 'i' {
		imaginary = true
		_, _ = l.buf.Next()
	}

	if source.IsAlpha(l.buf.Curr()) {
		return Token{}, unexpectedLetterAfterNumber(l)
	}

	endOffset := l.buf.Offset()
	lexeme := l.buf.Substring(startOffset, endOffset)
	loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
	return buildNumberToken(loc, lexeme, digits.String(), 10, isFloat, imaginary), nil
}

// lexRadixNumber implements the $hex / @oct / %bin sub-tokenizers. The
// returned sub-tokenizer starts on the radix marker rune and consumes it;
// digitOK filters which runes are legal digits for this radix.
func lexRadixNumber(radix int, digitOK func(rune) bool) SubTokenizer {
	return func(l *Lexer) (Token, error) {
		startPos := l.buf.PositionAt(l.buf.Offset())
		startOffset := l.buf.Offset()
		_, _ = l.buf.Next() // consume the radix marker

		var digits strings.Builder
		for digitOK(l.buf.Curr()) || l.buf.Curr() == '_' {
			if l.buf.Curr() != '_' {
				digits.WriteRune(l.buf.Curr())
			}
			_, _ = l.buf.Next()
		}

		if source.IsAlpha(l.buf.Curr()) {
			return Token{}, unexpectedLetterAfterNumber(l)
		}

		endOffset := l.buf.Offset()
		lexeme := l.buf.Substring(startOffset, endOffset)
		loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
		return buildNumberToken(loc, lexeme, digits.String(), radix, false, false), nil
	}
}

func isOctalDigit(r rune) bool  { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// lexPercentSign disambiguates spec.md's two uses of '%': the `%bin`
// number prefix (§4.4) and the modulo/compound-assign operator (§6). Both
// share the trie key "%", so the sub-tokenizer peeks one rune ahead: a
// binary digit starts a number, anything else falls back to a plain `%`
// token so the calling Lexer.Next can still extend it into `%:=` via the
// ordinary trie walk... except the sub-tokenizer owns the whole match, so
// it also checks for the `:=` suffix itself.
func lexPercentSign(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()

	l.buf.PushMark()
	_, _ = l.buf.Next()
	next := l.buf.Curr()
	_ = l.buf.RestoreTopMark()

	if isBinaryDigit(next) {
		return lexRadixNumber(2, isBinaryDigit)(l)
	}

	_, _ = l.buf.Next() // consume %
	tokType := TokenPercent
	if l.buf.Curr() == ':' {
		l.buf.PushMark()
		_, _ = l.buf.Next()
		if l.buf.Curr() == '=' {
			_, _ = l.buf.Next()
			tokType = TokenPercentAssign
			_, _ = l.buf.PopMark()
		} else {
			_ = l.buf.RestoreTopMark()
		}
	}
	endOffset := l.buf.Offset()
	loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
	return Token{Type: tokType, Lexeme: l.buf.Substring(startOffset, endOffset), Loc: loc}, nil
}

func consumeDigits(l *Lexer, out *strings.Builder, ok func(rune) bool) {
	for ok(l.buf.Curr()) || l.buf.Curr() == '_' {
		if l.buf.Curr() != '_' {
			out.WriteRune(l.buf.Curr())
		}
		_, _ = l.buf.Next()
	}
}

func unexpectedLetterAfterNumber(l *Lexer) error {
	return &lexError{msg: "unexpected letter after decimal number literal"}
}

type lexError struct{ msg string }

func (e *lexError) Error() string { return e.msg }

// buildNumberToken parses digits in the given radix/float-ness and
// narrows the result to the smallest representable size, per spec.md
// §4.4's "Number narrowing" paragraph.
func buildNumberToken(loc source.Location, lexeme, digits string, radix int, isFloat, imaginary bool) Token {
	nt := &NumberToken{Radix: radix, Imaginary: imaginary}

	if isFloat {
		nt.Kind = FloatLiteral
		v, _ := strconv.ParseFloat(digits, 64)
		nt.FloatValue = v
		if v == float64(float32(v)) {
			nt.Size = SizeDword
		} else {
			nt.Size = SizeQword
		}
		return Token{Type: TokenNumber, Lexeme: lexeme, Loc: loc, Number: nt}
	}

	nt.Kind = IntegerLiteral
	signed := strings.HasPrefix(digits, "-")
	magnitude := strings.TrimPrefix(digits, "-")
	u, _ := strconv.ParseUint(magnitude, radix, 64)

	if signed {
		nt.IsSigned = true
		nt.IntValue = uint64(-int64(u))
		narrowSigned(nt, -int64(u))
	} else {
		narrowUnsigned(nt, u)
		nt.IntValue = u
	}
	return Token{Type: TokenNumber, Lexeme: lexeme, Loc: loc, Number: nt}
}

func narrowUnsigned(nt *NumberToken, v uint64) {
	switch {
	case v <= math.MaxUint8:
		nt.Size = SizeByte
	case v <= math.MaxUint16:
		nt.Size = SizeWord
	case v <= math.MaxUint32:
		nt.Size = SizeDword
	default:
		nt.Size = SizeQword
	}
}

func narrowSigned(nt *NumberToken, v int64) {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		nt.Size = SizeByte
	case v >= math.MinInt16 && v <= math.MaxInt16:
		nt.Size = SizeWord
	case v >= math.MinInt32 && v <= math.MaxInt32:
		nt.Size = SizeDword
	default:
		nt.Size = SizeQword
	}
}
