package parser

import (
	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/diag"
	"github.com/basecode-lang/basecode-sub005/lexer"
)

// Binding powers, per spec.md §4.5's ladder (higher binds tighter).
const (
	lbpAssign      = 20
	lbpComma       = 25
	lbpLogical     = 30
	lbpCompare     = 40
	lbpAdditive    = 50
	lbpMultiplic   = 60
	lbpBitwise     = 70
	lbpPower       = 75
	lbpUnary       = 80
	lbpPostfix     = 90
)

var rules map[lexer.TokenType]Rule

func init() {
	rules = make(map[lexer.TokenType]Rule)

	lit := func(tt lexer.TokenType, nud NudFunc) { rules[tt] = Rule{ID: tt, Nud: nud} }
	prefix := func(tt lexer.TokenType, lbp int, nud NudFunc) { rules[tt] = Rule{ID: tt, LBP: lbp, Nud: nud} }
	infixLeft := func(tt lexer.TokenType, lbp int, op ast.BinaryOperatorKind) {
		rules[tt] = Rule{ID: tt, LBP: lbp, Led: ledBinary(op, lbp)}
	}
	infixRight := func(tt lexer.TokenType, lbp int, op ast.BinaryOperatorKind) {
		rules[tt] = Rule{ID: tt, LBP: lbp, Led: ledBinary(op, lbp-1)}
	}

	// Literals and grouping.
	lit(lexer.TokenNumber, nudNumber)
	lit(lexer.TokenString, nudString)
	lit(lexer.TokenIdentifier, nudIdentifier)
	rules[lexer.TokenLParen] = Rule{ID: lexer.TokenLParen, LBP: lbpPostfix, Nud: nudGroup, Led: ledCall}
	rules[lexer.TokenLBrace] = Rule{ID: lexer.TokenLBrace, Nud: nudBlock}
	rules[lexer.TokenBlockLiteral] = Rule{ID: lexer.TokenBlockLiteral, Nud: nudBlockLiteral}

	// Directives / annotations — hoisted by the statement loop, but still
	// ordinary nuds so Expression can produce them.
	lit(lexer.TokenDirective, nudDirective)
	lit(lexer.TokenAnnotation, nudAnnotation)

	// Declaration / binding / assignment, band 20.
	rules[lexer.TokenDeclare] = Rule{ID: lexer.TokenDeclare, LBP: lbpAssign, Led: ledDeclare(false)}
	rules[lexer.TokenBind] = Rule{ID: lexer.TokenBind, LBP: lbpAssign, Led: ledDeclare(true)}
	rules[lexer.TokenAssign] = Rule{ID: lexer.TokenAssign, LBP: lbpAssign, Led: ledAssign}
	rules[lexer.TokenArrow] = Rule{ID: lexer.TokenArrow, LBP: lbpAssign, Led: ledBinary(ast.BinMemberSelect, lbpAssign)}
	rules[lexer.TokenFatArrow] = Rule{ID: lexer.TokenFatArrow, LBP: lbpAssign, Led: ledBinary(ast.BinMemberSelect, lbpAssign)}
	rules[lexer.TokenPlusAssign] = Rule{ID: lexer.TokenPlusAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinAdd)}
	rules[lexer.TokenMinusAssign] = Rule{ID: lexer.TokenMinusAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinSub)}
	rules[lexer.TokenStarAssign] = Rule{ID: lexer.TokenStarAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinMul)}
	rules[lexer.TokenSlashAssign] = Rule{ID: lexer.TokenSlashAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinDiv)}
	rules[lexer.TokenPercentAssign] = Rule{ID: lexer.TokenPercentAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinMod)}
	rules[lexer.TokenPipeAssign] = Rule{ID: lexer.TokenPipeAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinOr)}
	rules[lexer.TokenAmpAssign] = Rule{ID: lexer.TokenAmpAssign, LBP: lbpAssign, Led: ledCompoundAssign(ast.BinAnd)}

	// Comma, band 25 — builds a BinaryOperator so it doubles as an lvalue
	// for multi-assignment targets, per spec.md §4.5's lvalue table.
	infixLeft(lexer.TokenComma, lbpComma, ast.BinComma)

	// Logical, band 30, right-associative.
	infixRight(lexer.TokenOrOr, lbpLogical, ast.BinLogicalOr)
	infixRight(lexer.TokenAndAnd, lbpLogical, ast.BinLogicalAnd)

	// Comparison / range / membership, band 40.
	infixLeft(lexer.TokenLt, lbpCompare, ast.BinLt)
	infixLeft(lexer.TokenGt, lbpCompare, ast.BinGt)
	infixLeft(lexer.TokenEq, lbpCompare, ast.BinEq)
	infixLeft(lexer.TokenNeq, lbpCompare, ast.BinNeq)
	infixLeft(lexer.TokenLe, lbpCompare, ast.BinLe)
	infixLeft(lexer.TokenGe, lbpCompare, ast.BinGe)
	infixLeft(lexer.TokenRangeIncl, lbpCompare, ast.BinRangeIncl)
	infixLeft(lexer.TokenRangeExcl, lbpCompare, ast.BinRangeExcl)
	rules[lexer.TokenIn] = Rule{ID: lexer.TokenIn, LBP: lbpCompare, Led: ledBinary(ast.BinIn, lbpCompare)}

	// Additive, band 50.
	infixLeft(lexer.TokenPlus, lbpAdditive, ast.BinAdd)
	rules[lexer.TokenMinus] = Rule{
		ID: lexer.TokenMinus, LBP: lbpAdditive,
		Nud: nudUnary(ast.UnaryNeg, lbpUnary),
		Led: ledBinary(ast.BinSub, lbpAdditive),
	}

	// Multiplicative, band 60.
	infixLeft(lexer.TokenStar, lbpMultiplic, ast.BinMul)
	infixLeft(lexer.TokenSlash, lbpMultiplic, ast.BinDiv)
	infixLeft(lexer.TokenPercent, lbpMultiplic, ast.BinMod)

	// Bitwise, band 70.
	infixLeft(lexer.TokenPipe, lbpBitwise, ast.BinOr)
	infixLeft(lexer.TokenAmp, lbpBitwise, ast.BinAnd)
	infixLeft(lexer.TokenXor, lbpBitwise, ast.BinXor)
	infixLeft(lexer.TokenShl, lbpBitwise, ast.BinShl)
	infixLeft(lexer.TokenShr, lbpBitwise, ast.BinShr)
	infixLeft(lexer.TokenRol, lbpBitwise, ast.BinRol)
	infixLeft(lexer.TokenRor, lbpBitwise, ast.BinRor)

	// Power, band 75, right-associative.
	infixRight(lexer.TokenPow, lbpPower, ast.BinPow)

	// Prefix unary, band 80.
	prefix(lexer.TokenTilde, lbpUnary, nudUnary(ast.UnaryBitNot, lbpUnary))
	prefix(lexer.TokenBang, lbpUnary, nudUnary(ast.UnaryNot, lbpUnary))

	// Postfix deref `^`, band 80: a led with no further rhs, just wraps lhs.
	rules[lexer.TokenCaret] = Rule{ID: lexer.TokenCaret, LBP: lbpUnary, Led: ledPostfixDeref}

	// Subscript / member-select, band 90.
	rules[lexer.TokenLBracket] = Rule{ID: lexer.TokenLBracket, LBP: lbpPostfix, Led: ledSubscript}
	rules[lexer.TokenDot] = Rule{ID: lexer.TokenDot, LBP: lbpPostfix, Led: ledMemberSelect}

	// Keyword-expression nuds.
	lit(lexer.TokenIf, nudIf)
	lit(lexer.TokenFor, nudFor)
	lit(lexer.TokenWhile, nudWhile)
	lit(lexer.TokenSwitch, nudSwitch)
	lit(lexer.TokenCase, nudCase)
	lit(lexer.TokenProc, nudProc)
	lit(lexer.TokenStruct, nudStruct)
	lit(lexer.TokenUnion, nudUnion)
	lit(lexer.TokenEnum, nudEnum)
	lit(lexer.TokenFamily, nudFamily)
	lit(lexer.TokenCast, nudCast)
	lit(lexer.TokenBitcast, nudBitcast)
	lit(lexer.TokenModule, nudModule)
	lit(lexer.TokenImport, nudImport)
	lit(lexer.TokenNS, nudNamespace)
	lit(lexer.TokenDefer, nudDefer)
	lit(lexer.TokenYield, nudYield)
	lit(lexer.TokenBreak, nudBreak)
	lit(lexer.TokenContinue, nudContinue)
	lit(lexer.TokenReturn, nudReturn)
	lit(lexer.TokenGoto, nudGoto)
	lit(lexer.TokenWith, nudWith)
	lit(lexer.TokenUse, nudUse)
}

func (p *Parser) unexpected(code diag.Code, msg string) ast.Handle {
	p.errorf(code, p.tok.Loc, "%s", msg)
	return ast.Handle{}
}
