package parser

import (
	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/lexer"
)

func nudUnary(op ast.UnaryOperatorKind, lbp int) NudFunc {
	return func(p *Parser) ast.Handle {
		loc := p.tok.Loc
		operand := p.Expression(lbp)
		return p.arena.NewUnaryOperator(op, operand, loc)
	}
}

// ledBinary builds a standard infix BinaryOperator, parsing its
// right-hand operand at rbp (lbp for left-associative operators, lbp-1
// for right-associative ones, set by the caller in rules.go).
func ledBinary(op ast.BinaryOperatorKind, rbp int) LedFunc {
	return func(p *Parser, lhs ast.Handle) ast.Handle {
		loc := p.tok.Loc
		rhs := p.Expression(rbp)
		return p.arena.NewBinaryOperator(op, lhs, rhs, loc)
	}
}

// ledPostfixDeref wraps lhs in a UnaryOperator with no further operand
// parse — `^` is postfix, so it consumes nothing beyond the operator
// itself.
func ledPostfixDeref(p *Parser, lhs ast.Handle) ast.Handle {
	return p.arena.NewUnaryOperator(ast.UnaryDeref, lhs, p.tok.Loc)
}

// ledSubscript parses `lhs[index]`, building it as a BinaryOperator so it
// qualifies as an lvalue per spec.md §4.5.
func ledSubscript(p *Parser, lhs ast.Handle) ast.Handle {
	loc := p.tok.Loc
	index := p.Expression(0)
	p.expect(lexer.TokenRBracket)
	return p.arena.NewBinaryOperator(ast.BinSubscript, lhs, index, loc)
}

// ledMemberSelect implements spec.md §4.5's `.` rule: requires an lvalue
// on the left, parses the next token as a member name (declaring it into
// the current scope exactly as a fresh identifier would be), and builds
// a BinaryOperator.
func ledMemberSelect(p *Parser, lhs ast.Handle) ast.Handle {
	loc := p.tok.Loc
	if !p.requireLvalue(lhs) {
		return lhs
	}
	nameTok, ok := p.expect(lexer.TokenIdentifier)
	if !ok {
		return lhs
	}
	member := p.arena.NewIdentifier(nameTok.Lexeme, nameTok.Lexeme, false, ast.Handle{}, nameTok.Loc)
	p.arena.Declare(p.currentScope(), member)
	return p.arena.NewBinaryOperator(ast.BinMemberSelect, lhs, member, loc)
}

// ledCall parses `callee(args...)`.
func ledCall(p *Parser, lhs ast.Handle) ast.Handle {
	loc := p.tok.Loc
	var args []ast.Handle
	for p.current.Type != lexer.TokenRParen && p.current.Type != lexer.TokenEOF {
		args = append(args, p.Expression(lbpComma))
		if p.current.Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.TokenRParen)
	return p.arena.NewCall(lhs, args, loc)
}

// ledDeclare implements `:=`/`::`. lhs must be the freshly-declared
// Identifier nud produced for the name on its left (spec.md §4.5 requires
// the identifier nud to have already inserted it into the scope trie).
// The declaration binds a value, so it builds the same AssignmentOperator
// shape spec.md §4.5's plain `=` builds, with lhs as the target.
func ledDeclare(isConstant bool) LedFunc {
	return func(p *Parser, lhs ast.Handle) ast.Handle {
		if p.arena.Kind(lhs) != ast.KindIdentifier {
			return p.unexpected(diag.CodeInvalidLvalue, "declaration target must be a new identifier")
		}
		loc := p.tok.Loc
		rhs := p.Expression(lbpAssign - 1)
		if p.arena.Kind(rhs) == ast.KindAssignmentOperator {
			p.errorf(diag.CodeInvalidNestedAssignment, p.arena.Loc(rhs), "nested assignment is not allowed")
		}
		p.arena.Identifier(lhs).IsConstant = isConstant
		return p.arena.NewAssignmentOperator(lhs, rhs, loc)
	}
}

// ledAssign implements plain `=`, rejecting nested assignment on the rhs
// per spec.md §4.5.
func ledAssign(p *Parser, lhs ast.Handle) ast.Handle {
	loc := p.tok.Loc
	if !p.requireLvalue(lhs) {
		return lhs
	}
	rhs := p.Expression(lbpAssign - 1)
	if p.arena.Kind(rhs) == ast.KindAssignmentOperator {
		p.errorf(diag.CodeInvalidNestedAssignment, p.arena.Loc(rhs), "nested assignment is not allowed")
	}
	return p.arena.NewAssignmentOperator(lhs, rhs, loc)
}

// ledCompoundAssign implements spec.md §4.5's desugaring: `a OP:= b`
// becomes `AssignmentOperator{lhs=a, rhs=BinaryOperator{op=OP, lhs=a,
// rhs=b}}`.
func ledCompoundAssign(op ast.BinaryOperatorKind) LedFunc {
	return func(p *Parser, lhs ast.Handle) ast.Handle {
		loc := p.tok.Loc
		if !p.requireLvalue(lhs) {
			return lhs
		}
		rhs := p.Expression(lbpAssign - 1)
		if p.arena.Kind(rhs) == ast.KindAssignmentOperator {
			p.errorf(diag.CodeInvalidNestedAssignment, p.arena.Loc(rhs), "nested assignment is not allowed")
		}
		desugared := p.arena.NewBinaryOperator(op, lhs, rhs, loc)
		return p.arena.NewAssignmentOperator(lhs, desugared, loc)
	}
}
