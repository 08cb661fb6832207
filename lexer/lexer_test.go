package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/source"
)

func newLexer(t *testing.T, text string) *Lexer {
	t.Helper()
	buf, err := source.LoadString("t.bc", text)
	require.NoError(t, err)
	return New(buf, intern.New(), diag.NewBag())
}

func TestNumberLexingNarrowsSize(t *testing.T) {
	l := newLexer(t, "200 70000 -5 3.5 $ff @17 %101")
	toks := l.TokenizeAll()
	require.True(t, len(toks) >= 7)

	assert.Equal(t, TokenNumber, toks[0].Type)
	assert.Equal(t, SizeByte, toks[0].Number.Size)

	assert.Equal(t, TokenNumber, toks[1].Type)
	assert.Equal(t, SizeDword, toks[1].Number.Size)

	assert.Equal(t, TokenNumber, toks[2].Type)
	assert.True(t, toks[2].Number.IsSigned)
	assert.Equal(t, int64(-5), int64(toks[2].Number.IntValue))

	assert.Equal(t, TokenNumber, toks[3].Type)
	assert.Equal(t, FloatLiteral, toks[3].Number.Kind)

	assert.Equal(t, TokenNumber, toks[4].Type)
	assert.Equal(t, 16, toks[4].Number.Radix)

	assert.Equal(t, TokenNumber, toks[5].Type)
	assert.Equal(t, 8, toks[5].Number.Radix)

	assert.Equal(t, TokenNumber, toks[6].Type)
	assert.Equal(t, 2, toks[6].Number.Radix)
}

func TestNestedBlockCommentsBuildTree(t *testing.T) {
	l := newLexer(t, "/* outer /* inner */ tail */")
	tok := l.Next()
	require.Equal(t, TokenBlockComment, tok.Type)
	require.NotNil(t, tok.Comment)
	require.Len(t, tok.Comment.Children, 1)
	assert.Contains(t, tok.Comment.Capture, "outer")
	assert.Contains(t, tok.Comment.Children[0].Capture, "inner")
}

func TestKeywordIsNotIdentifierPrefix(t *testing.T) {
	l := newLexer(t, "continueif := 1")
	tok := l.Next()
	assert.Equal(t, TokenIdentifier, tok.Type)
	assert.Equal(t, "continueif", tok.Lexeme)
}

func TestKeywordAloneLexesAsKeyword(t *testing.T) {
	l := newLexer(t, "continue ;")
	tok := l.Next()
	assert.Equal(t, TokenContinue, tok.Type)
}

func TestStringEscapesDecode(t *testing.T) {
	l := newLexer(t, `"a\tb\x41é"`)
	tok := l.Next()
	require.Equal(t, TokenString, tok.Type)
	assert.Equal(t, "a\tbAé", tok.Lexeme)
}

func TestDirectiveAndAnnotationDisambiguatedFromNumberPrefixes(t *testing.T) {
	l := newLexer(t, "#inline @deprecated @17")
	toks := l.TokenizeAll()
	assert.Equal(t, TokenDirective, toks[0].Type)
	assert.Equal(t, "inline", toks[0].Lexeme)
	assert.Equal(t, TokenAnnotation, toks[1].Type)
	assert.Equal(t, "deprecated", toks[1].Lexeme)
	assert.Equal(t, TokenNumber, toks[2].Type)
}

func TestCompoundAssignOperators(t *testing.T) {
	l := newLexer(t, "+:= -:= *:= /:= %:= |:= &:=")
	toks := l.TokenizeAll()
	want := []TokenType{
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenPipeAssign, TokenAmpAssign,
	}
	for i, w := range want {
		assert.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestBlockLiteralCapturesRawText(t *testing.T) {
	l := newLexer(t, "{{ raw text with { braces } inside }}")
	tok := l.Next()
	require.Equal(t, TokenBlockLiteral, tok.Type)
	assert.Contains(t, tok.Lexeme, "raw text")
}

func TestLineCommentStopsAtNewline(t *testing.T) {
	l := newLexer(t, "// comment text\nx")
	tok := l.Next()
	require.Equal(t, TokenLineComment, tok.Type)
	next := l.Next()
	assert.Equal(t, TokenIdentifier, next.Type)
	assert.Equal(t, "x", next.Lexeme)
}

func TestNegativeNumberVsSubtractionAmbiguity(t *testing.T) {
	// spec.md's own maximal-munch rule: "x -5" lexes as identifier then a
	// negative number literal, not subtraction.
	l := newLexer(t, "x -5")
	toks := l.TokenizeAll()
	assert.Equal(t, TokenIdentifier, toks[0].Type)
	assert.Equal(t, TokenNumber, toks[1].Type)
	assert.True(t, toks[1].Number.IsSigned)
}

func TestUnterminatedStringReportsDiagnostic(t *testing.T) {
	l := newLexer(t, `"no closing quote`)
	_ = l.Next()
	assert.True(t, l.Diagnostics().HasErrors())
}
