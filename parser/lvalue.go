package parser

import (
	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/diag"
)

// isLvalue implements spec.md §4.5's lvalue validity rules.
func (p *Parser) isLvalue(h ast.Handle) bool {
	switch p.arena.Kind(h) {
	case ast.KindIdentifier, ast.KindIdentifierRef:
		return true
	case ast.KindBinaryOperator:
		op := p.arena.BinaryOperator(h).Op
		return op == ast.BinComma || op == ast.BinSubscript || op == ast.BinMemberSelect
	case ast.KindUnaryOperator:
		return p.arena.UnaryOperator(h).Op == ast.UnaryDeref
	default:
		return false
	}
}

// requireLvalue records assignment_requires_valid_lvalue if h fails
// isLvalue, at h's own location.
func (p *Parser) requireLvalue(h ast.Handle) bool {
	if p.isLvalue(h) {
		return true
	}
	p.errorf(diag.CodeInvalidLvalue, p.arena.Loc(h), "assignment requires a valid lvalue")
	return false
}
