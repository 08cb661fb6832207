package lexer

import (
	"fmt"

	"github.com/basecode-lang/basecode-sub005/source"
)

// defaultTrie builds the rune trie for the language described in
// spec.md §6, including the keyword gate, the radix-number prefixes, and
// the negative-number lookahead keys spec.md §4.4 calls for explicitly
// ("-0".."-9" entries distinct from the plain '-' operator).
func defaultTrie() *Trie {
	t := NewTrie()

	// Multi-rune operators, longest alternatives first so shorter
	// prefixes still resolve correctly via the trie's own longest-match
	// walk (insertion order does not matter for correctness, only for
	// readability here).
	fixed := []struct {
		seq string
		typ TokenType
	}{
		{":=", TokenDeclare}, {"::", TokenBind}, {"->", TokenArrow}, {"=>", TokenFatArrow},
		{"+:=", TokenPlusAssign}, {"*:=", TokenStarAssign}, {"/:=", TokenSlashAssign},
		{"|:=", TokenPipeAssign}, {"&:=", TokenAmpAssign},
		{"||", TokenOrOr}, {"&&", TokenAndAnd},
		{"==", TokenEq}, {"!=", TokenNeq}, {"<=", TokenLe}, {">=", TokenGe},
		{"..<", TokenRangeExcl}, {"..", TokenRangeIncl},
		{"**", TokenPow},
		{";", TokenSemicolon}, {",", TokenComma}, {":", TokenColon}, {"=", TokenAssign},
		{"<", TokenLt}, {">", TokenGt},
		{"+", TokenPlus}, {"*", TokenStar}, {"/", TokenSlash},
		{"|", TokenPipe}, {"&", TokenAmp},
		{"~", TokenTilde}, {"!", TokenBang}, {"^", TokenCaret},
		{"[", TokenLBracket}, {"]", TokenRBracket}, {".", TokenDot},
		{"(", TokenLParen}, {")", TokenRParen},
	}
	for _, f := range fixed {
		t.Insert(f.seq, Lexeme{Type: f.typ})
	}

	// '-' and '%' and '@' need lookahead-driven disambiguation; see
	// number.go and directive.go.
	t.Insert("-:=", Lexeme{Type: TokenMinusAssign})
	t.Insert("-", Lexeme{Type: TokenMinus})
	for d := '0'; d <= '9'; d++ {
		t.Insert(fmt.Sprintf("-%c", d), Lexeme{Tokenize: lexDecimalNumber})
		t.Insert(string(d), Lexeme{Tokenize: lexDecimalNumber})
	}
	t.Insert("%", Lexeme{Tokenize: lexPercentSign})
	t.Insert("@", Lexeme{Tokenize: lexAtSign})

	// Sub-tokenizer-driven lexemes.
	t.Insert("$", Lexeme{Tokenize: lexRadixNumber(16, source.IsXDigit)})
	t.Insert("\"", Lexeme{Tokenize: lexString})
	t.Insert("{{", Lexeme{Tokenize: lexBlockLiteral})
	t.Insert("{", Lexeme{Type: TokenLBrace})
	t.Insert("}", Lexeme{Type: TokenRBrace})
	t.Insert("#", Lexeme{Tokenize: lexDirective})
	t.Insert("//", Lexeme{Tokenize: lexLineComment})
	t.Insert("--", Lexeme{Tokenize: lexLineComment})
	t.Insert("/*", Lexeme{Tokenize: lexBlockComment})

	for word, typ := range keywords {
		t.Insert(word, Lexeme{Type: typ, IsKeyword: true})
	}

	return t
}
