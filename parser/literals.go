package parser

import (
	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/lexer"
)

func nudNumber(p *Parser) ast.Handle {
	nt := p.tok.Number
	lit := ast.NumberLiteral{IsFloat: nt.Kind == lexer.FloatLiteral, IsSigned: nt.IsSigned}
	if lit.IsFloat {
		lit.FloatValue = nt.FloatValue
	} else {
		lit.IntValue = nt.IntValue
	}
	return p.arena.NewNumberLiteral(lit, p.tok.Loc)
}

func nudString(p *Parser) ast.Handle {
	return p.arena.NewStringLiteral(p.tok.Lexeme, p.tok.Loc)
}

// nudIdentifier implements spec.md §4.5's identifier-resolution nud: look
// the name up through the scope chain; emit an IdentifierRef on a hit,
// else declare a new Identifier in the current scope. `true`/`false` are
// recognized here rather than as dedicated keyword tokens, since spec.md
// does not reserve them lexically — a call made explicit in DESIGN.md.
func nudIdentifier(p *Parser) ast.Handle {
	name := p.tok.Lexeme
	if name == "true" {
		return p.arena.NewBooleanLiteral(true, p.tok.Loc)
	}
	if name == "false" {
		return p.arena.NewBooleanLiteral(false, p.tok.Loc)
	}

	if existing, ok := p.arena.Resolve(p.currentScope(), name); ok {
		return p.arena.NewIdentifierRef(name, existing, p.tok.Loc)
	}

	ident := p.arena.NewIdentifier(name, name, false, ast.Handle{}, p.tok.Loc)
	p.arena.Declare(p.currentScope(), ident)
	return ident
}

// nudGroup parses a parenthesized sub-expression.
func nudGroup(p *Parser) ast.Handle {
	inner := p.Expression(0)
	p.expect(lexer.TokenRParen)
	return inner
}

// nudBlock parses a brace-delimited block with its own child Scope.
func nudBlock(p *Parser) ast.Handle {
	startLoc := p.tok.Loc
	scope := p.pushScope(p.currentScope())
	block := p.arena.NewBlock(scope, startLoc)
	for p.current.Type != lexer.TokenRBrace && p.current.Type != lexer.TokenEOF {
		stmt := p.parseStatement()
		if stmt.Valid() {
			p.arena.AppendStatement(block, stmt)
		}
	}
	p.expect(lexer.TokenRBrace)
	p.popScope()
	return block
}

func nudBlockLiteral(p *Parser) ast.Handle {
	return p.arena.NewStringLiteral(p.tok.Lexeme, p.tok.Loc)
}

func nudDirective(p *Parser) ast.Handle {
	return p.arena.NewDirective(p.tok.Lexeme, p.tok.Loc)
}

func nudAnnotation(p *Parser) ast.Handle {
	return p.arena.NewAnnotation(p.tok.Lexeme, p.tok.Loc)
}
