package lexer

import (
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/source"
)

// Lexer tokenizes a source.Buffer via the package's shared rune trie.
type Lexer struct {
	buf   *source.Buffer
	trie  *Trie
	pool  *intern.Pool
	diags *diag.Bag
}

// New builds a Lexer over buf, interning retained token text into pool and
// recording failures into diags.
func New(buf *source.Buffer, pool *intern.Pool, diags *diag.Bag) *Lexer {
	return &Lexer{buf: buf, trie: defaultTrie(), pool: pool, diags: diags}
}

// Diagnostics returns the diagnostic bag shared with this Lexer.
func (l *Lexer) Diagnostics() *diag.Bag { return l.diags }

func (l *Lexer) locFrom(start source.Position, endOffset int) source.Location {
	return source.Location{Start: start, End: l.buf.PositionAt(endOffset)}
}

// skipWhitespace advances past runes for which source.IsSpace holds.
func (l *Lexer) skipWhitespace() {
	for source.IsSpace(l.buf.Curr()) && l.buf.Curr() != source.EOF {
		_, _ = l.buf.Next()
	}
}

// Next implements the algorithm of spec.md §4.4.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	startOffset := l.buf.Offset()
	startPos := l.buf.PositionAt(startOffset)

	if l.buf.Curr() == source.EOF {
		return Token{Type: TokenEOF, Loc: source.Location{Start: startPos, End: startPos}}
	}

	l.buf.PushMark()
	result := l.trie.longestMatch(l)

	// Step 3: discard a keyword match if identifier-continuation follows.
	if result.lexeme != nil && result.lexeme.IsKeyword && source.IsIdentifierContinue(l.buf.Curr()) {
		result.lexeme = nil
	}

	if result.lexeme == nil {
		_ = l.buf.RestoreTopMark()
		return l.lexIdentifierOrError(startPos)
	}

	if result.lexeme.Tokenize != nil {
		_ = l.buf.RestoreTopMark()
		tok, err := result.lexeme.Tokenize(l)
		if err != nil {
			l.diags.Add(diag.New(diag.CodeUnexpectedChar, diag.Error, err.Error()).At(l.locFrom(startPos, l.buf.Offset())))
		}
		return tok
	}

	// Plain fixed-prefix lexeme: discard the mark (keep the advanced
	// cursor) and emit a token spanning the matched text.
	_, _ = l.buf.PopMark()
	endOffset := l.buf.Offset()
	tok := Token{Type: result.lexeme.Type, Lexeme: result.matched, Loc: l.locFrom(startPos, endOffset)}
	if l.pool != nil {
		_, _ = l.pool.InternString(tok.Lexeme)
	}
	return tok
}

// lexIdentifierOrError runs when no trie lexeme survives: rewind already
// happened, so attempt the identifier sub-tokenizer directly.
func (l *Lexer) lexIdentifierOrError(startPos source.Position) Token {
	if !source.IsAlpha(l.buf.Curr()) {
		l.diags.Add(diag.New(diag.CodeExpectedIdentifier, diag.Error, "expected identifier").At(l.locFrom(startPos, l.buf.Offset())))
		_, _ = l.buf.Next()
		return l.Next()
	}
	return lexIdentifier(l, startPos)
}

func lexIdentifier(l *Lexer, startPos source.Position) Token {
	startOffset := l.buf.Offset()
	for source.IsIdentifierContinue(l.buf.Curr()) {
		_, _ = l.buf.Next()
	}
	endOffset := l.buf.Offset()
	text := l.buf.Substring(startOffset, endOffset)

	tokType := TokenIdentifier
	if kw, ok := keywords[text]; ok {
		tokType = kw
	}
	if l.pool != nil {
		_, _ = l.pool.InternString(text)
	}
	return Token{Type: tokType, Lexeme: text, Loc: l.locFrom(startPos, endOffset)}
}

// TokenizeAll drains the Lexer to a slice, always ending with TokenEOF.
func (l *Lexer) TokenizeAll() []Token {
	var toks []Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Type == TokenEOF {
			break
		}
	}
	return toks
}
