package lexer

import "github.com/basecode-lang/basecode-sub005/source"

// lexDirective implements the `#directive` sub-tokenizer.
func lexDirective(l *Lexer) (Token, error) {
	return lexPrefixedIdentifier(l, TokenDirective)
}

// lexAtSign disambiguates spec.md's two uses of '@': the `@oct` number
// prefix (§4.4) and the `@annotation` expression-position marker (§6).
// Both share the single trie key "@", so the sub-tokenizer peeks at the
// rune immediately following '@': an octal digit starts a number, an
// identifier-starting rune starts an annotation.
func lexAtSign(l *Lexer) (Token, error) {
	l.buf.PushMark()
	_, _ = l.buf.Next()
	next := l.buf.Curr()
	_ = l.buf.RestoreTopMark()

	if isOctalDigit(next) {
		return lexRadixNumber(8, isOctalDigit)(l)
	}
	return lexPrefixedIdentifier(l, TokenAnnotation)
}

func lexPrefixedIdentifier(l *Lexer, tokType TokenType) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()
	_, _ = l.buf.Next() // consume # or @

	nameStart := l.buf.Offset()
	if !source.IsAlpha(l.buf.Curr()) {
		return Token{}, &lexError{msg: "expected identifier after directive/annotation marker"}
	}
	for source.IsIdentifierContinue(l.buf.Curr()) {
		_, _ = l.buf.Next()
	}
	name := l.buf.Substring(nameStart, l.buf.Offset())
	endOffset := l.buf.Offset()
	loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
	return Token{Type: tokType, Lexeme: name, Loc: loc}, nil
}
