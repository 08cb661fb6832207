package lexer

import "github.com/basecode-lang/basecode-sub005/source"

// lexLineComment implements the `//` and `--` sub-tokenizer: everything
// up to (not including) the newline.
func lexLineComment(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()
	_, _ = l.buf.Next()
	_, _ = l.buf.Next()

	for l.buf.Curr() != '\n' && l.buf.Curr() != source.EOF {
		_, _ = l.buf.Next()
	}
	endOffset := l.buf.Offset()
	loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
	return Token{Type: TokenLineComment, Lexeme: l.buf.Substring(startOffset, endOffset), Loc: loc}, nil
}

// lexBlockComment implements the nestable `/* ... */` sub-tokenizer. Each
// nesting level captures its own text span, producing a tree exposed as
// the token's Comment field, per spec.md §4.4 and SPEC_FULL.md §3.
func lexBlockComment(l *Lexer) (Token, error) {
	startPos := l.buf.PositionAt(l.buf.Offset())
	startOffset := l.buf.Offset()
	_, _ = l.buf.Next() // consume /
	_, _ = l.buf.Next() // consume *

	root, err := readBlockCommentBody(l)
	if err != nil {
		return Token{}, err
	}

	endOffset := l.buf.Offset()
	loc := source.Location{Start: startPos, End: l.buf.PositionAt(endOffset)}
	return Token{
		Type:    TokenBlockComment,
		Lexeme:  l.buf.Substring(startOffset, endOffset),
		Loc:     loc,
		Comment: root,
	}, nil
}

// readBlockCommentBody reads until the matching `*/`, recursing into any
// nested `/* */` pair and attaching it as a child.
func readBlockCommentBody(l *Lexer) (*BlockComment, error) {
	bc := &BlockComment{}
	bodyStart := l.buf.Offset()

	for {
		c := l.buf.Curr()
		switch {
		case c == source.EOF:
			return nil, &lexError{msg: "unterminated block comment"}
		case c == '*' && peekIs(l, '/'):
			bc.Capture += l.buf.Substring(bodyStart, l.buf.Offset())
			_, _ = l.buf.Next()
			_, _ = l.buf.Next()
			return bc, nil
		case c == '/' && peekIs(l, '*'):
			bc.Capture += l.buf.Substring(bodyStart, l.buf.Offset())
			_, _ = l.buf.Next()
			_, _ = l.buf.Next()
			child, err := readBlockCommentBody(l)
			if err != nil {
				return nil, err
			}
			bc.Children = append(bc.Children, child)
			bodyStart = l.buf.Offset()
		default:
			_, _ = l.buf.Next()
		}
	}
}

// peekIs reports whether the rune one past the cursor equals r, without
// disturbing the lexer's permanent position (uses a mark/restore pair
// since Buffer has no raw peek).
func peekIs(l *Lexer, r rune) bool {
	l.buf.PushMark()
	_, err := l.buf.Next()
	if err != nil {
		_ = l.buf.RestoreTopMark()
		return false
	}
	match := l.buf.Curr() == r
	_ = l.buf.RestoreTopMark()
	return match
}
