// Package parser implements a Pratt/TDOP expression parser over the
// lexer's token stream, producing an ast.Arena-backed tree, per spec.md
// §4.5.
package parser

import (
	"fmt"

	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/intern"
	"github.com/basecode-lang/basecode-sub005/lexer"
	"github.com/basecode-lang/basecode-sub005/source"
)

// NudFunc runs when a token appears at the start of an expression.
type NudFunc func(p *Parser) ast.Handle

// LedFunc runs when a token appears after a sub-expression already parsed.
type LedFunc func(p *Parser, lhs ast.Handle) ast.Handle

// Rule is one token type's production rule: left binding power plus its
// nud/led handlers (either may be nil).
type Rule struct {
	ID  lexer.TokenType
	LBP int
	Nud NudFunc
	Led LedFunc
}

// Parser consumes a lexer.Lexer's token stream with one token of
// lookahead, threading an ast.Arena and a diag.Bag through the recursive
// descent the way the teacher's parser threads a *Lexer + *ErrorList
// through a *Parser (parser/parser.go), generalized here to data-driven
// Pratt dispatch instead of a per-mnemonic switch.
type Parser struct {
	lex   *lexer.Lexer
	arena *ast.Arena
	diags *diag.Bag
	pool  *intern.Pool

	current lexer.Token
	peek    lexer.Token

	// tok is the token whose Nud or Led is currently executing — Expression
	// has already advanced past it by the time the handler runs, so nud/led
	// bodies that need the operator's own lexeme/location/Number read it
	// from here instead of from p.current.
	tok lexer.Token

	scopes []ast.Handle // innermost scope last
}

// New builds a Parser over buf, tokenizing through a lexer.Lexer and recording
// every parsed Identifier/IdentifierRef into a fresh ast.Arena backed by
// pool.
func New(buf *source.Buffer, pool *intern.Pool, diags *diag.Bag) *Parser {
	lx := lexer.New(buf, pool, diags)
	p := &Parser{lex: lx, arena: ast.New(pool), diags: diags, pool: pool}
	p.advance()
	p.advance()
	return p
}

// Arena returns the tree built by ParseModule.
func (p *Parser) Arena() *ast.Arena { return p.arena }

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) currentScope() ast.Handle { return p.scopes[len(p.scopes)-1] }

func (p *Parser) pushScope(parent ast.Handle) ast.Handle {
	s := p.arena.NewScope(parent)
	p.scopes = append(p.scopes, s)
	return s
}

func (p *Parser) popScope() { p.scopes = p.scopes[:len(p.scopes)-1] }

func (p *Parser) errorf(code diag.Code, loc source.Location, format string, args ...interface{}) {
	p.diags.Add(diag.New(code, diag.Error, fmt.Sprintf(format, args...)).At(loc))
}

// expect consumes the current token if it matches tt, else records
// unexpected_token and leaves the cursor where it is.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.current.Type != tt {
		p.errorf(diag.CodeUnexpectedToken, p.current.Loc, "expected %s, found %s", tt, p.current.Type)
		return p.current, false
	}
	tok := p.current
	p.advance()
	return tok, true
}

// ParseModule implements spec.md §4.5's parse loop: a Module wrapping a
// root Block/Scope, with statements appended until end of input.
func (p *Parser) ParseModule() (ast.Handle, *diag.Bag) {
	rootScope := p.pushScope(ast.Handle{})
	startLoc := p.current.Loc
	block := p.arena.NewBlock(rootScope, startLoc)

	for p.current.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if stmt.Valid() {
			p.arena.AppendStatement(block, stmt)
		}
	}

	mod := p.arena.NewModule("", block, rootScope, startLoc)
	p.popScope()
	return mod, p.diags
}

// parseStatement implements the hoisting loop: directive/annotation
// tokens parsed in nud position are hoisted onto the Statement and
// expression() is called again until a non-hoisted expression survives.
func (p *Parser) parseStatement() ast.Handle {
	startLoc := p.current.Loc
	stmt := p.arena.NewStatement(ast.Handle{}, startLoc)

	for {
		if p.current.Type == lexer.TokenEOF {
			return ast.Handle{}
		}
		expr := p.Expression(0)
		switch p.arena.Kind(expr) {
		case ast.KindDirective:
			p.arena.HoistDirective(stmt, expr)
			continue
		case ast.KindAnnotation:
			p.arena.HoistAnnotation(stmt, expr)
			continue
		}
		p.arena.Statement(stmt).Expr = expr
		break
	}

	if _, ok := p.expect(lexer.TokenSemicolon); !ok {
		// Resynchronize to the next statement boundary rather than
		// cascading errors for the rest of the module.
		for p.current.Type != lexer.TokenSemicolon && p.current.Type != lexer.TokenEOF {
			p.advance()
		}
		if p.current.Type == lexer.TokenSemicolon {
			p.advance()
		}
	}
	return stmt
}

// Expression implements spec.md §4.5's expression(rbp) loop.
func (p *Parser) Expression(rbp int) ast.Handle {
	tok := p.current
	rule, ok := rules[tok.Type]
	if !ok || rule.Nud == nil {
		p.errorf(diag.CodeUndefinedProductionRule, tok.Loc, "no nud production rule for %s", tok.Type)
		p.advance()
		return ast.Handle{}
	}
	p.tok = tok
	p.advance()
	lhs := rule.Nud(p)

	for {
		nextRule, ok := rules[p.current.Type]
		if !ok || nextRule.LBP <= rbp {
			break
		}
		if nextRule.Led == nil {
			p.errorf(diag.CodeMissingOperatorRule, p.current.Loc, "no led production rule for %s", p.current.Type)
			break
		}
		p.tok = p.current
		p.advance()
		lhs = nextRule.Led(p, lhs)
	}
	return lhs
}
