package parser

import (
	"github.com/basecode-lang/basecode-sub005/ast"
	"github.com/basecode-lang/basecode-sub005/lexer"
)

// This file holds one nud per keyword-expression shape, each building the
// matching ast table entry from keywords.go.

func nudIf(p *Parser) ast.Handle {
	loc := p.tok.Loc
	cond := p.Expression(0)
	then := p.Expression(0)
	var els ast.Handle
	if p.current.Type == lexer.TokenElse {
		p.advance()
		els = p.Expression(0)
	}
	return p.arena.NewIf(cond, then, els, loc)
}

func nudFor(p *Parser) ast.Handle {
	loc := p.tok.Loc
	scope := p.pushScope(p.currentScope())
	nameTok, _ := p.expect(lexer.TokenIdentifier)
	binding := p.arena.NewIdentifier(nameTok.Lexeme, nameTok.Lexeme, false, ast.Handle{}, nameTok.Loc)
	p.arena.Declare(scope, binding)
	p.expect(lexer.TokenIn)
	iterable := p.Expression(0)
	body := p.Expression(0)
	p.popScope()
	return p.arena.NewFor(binding, iterable, body, loc)
}

func nudWhile(p *Parser) ast.Handle {
	loc := p.tok.Loc
	cond := p.Expression(0)
	body := p.Expression(0)
	return p.arena.NewWhile(cond, body, loc)
}

func nudSwitch(p *Parser) ast.Handle {
	loc := p.tok.Loc
	subject := p.Expression(0)
	p.expect(lexer.TokenLBrace)
	var cases []ast.Handle
	for p.current.Type == lexer.TokenCase {
		cases = append(cases, p.Expression(0))
	}
	p.expect(lexer.TokenRBrace)
	return p.arena.NewSwitch(subject, cases, loc)
}

func nudCase(p *Parser) ast.Handle {
	loc := p.tok.Loc
	var values []ast.Handle
	if p.current.Type != lexer.TokenLBrace {
		values = append(values, p.Expression(lbpComma))
		for p.current.Type == lexer.TokenComma {
			p.advance()
			values = append(values, p.Expression(lbpComma))
		}
	}
	body := p.Expression(0)
	return p.arena.NewCase(values, body, loc)
}

func nudProc(p *Parser) ast.Handle {
	loc := p.tok.Loc
	p.expect(lexer.TokenLParen)
	scope := p.pushScope(p.currentScope())
	var params []ast.Handle
	for p.current.Type != lexer.TokenRParen && p.current.Type != lexer.TokenEOF {
		nameTok, ok := p.expect(lexer.TokenIdentifier)
		if !ok {
			break
		}
		param := p.arena.NewIdentifier(nameTok.Lexeme, nameTok.Lexeme, false, ast.Handle{}, nameTok.Loc)
		p.arena.Declare(scope, param)
		params = append(params, param)
		if p.current.Type == lexer.TokenComma {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.TokenRParen)

	returnType := ""
	if p.current.Type == lexer.TokenArrow {
		p.advance()
		if t, ok := p.expect(lexer.TokenIdentifier); ok {
			returnType = t.Lexeme
		}
	}

	var body ast.Handle
	if p.current.Type == lexer.TokenLBrace {
		body = p.Expression(0)
	}
	p.popScope()
	return p.arena.NewProc(params, returnType, body, loc)
}

func parseFieldList(p *Parser) []ast.Handle {
	p.expect(lexer.TokenLBrace)
	scope := p.pushScope(p.currentScope())
	var fields []ast.Handle
	for p.current.Type != lexer.TokenRBrace && p.current.Type != lexer.TokenEOF {
		nameTok, ok := p.expect(lexer.TokenIdentifier)
		if !ok {
			break
		}
		f := p.arena.NewIdentifier(nameTok.Lexeme, nameTok.Lexeme, false, ast.Handle{}, nameTok.Loc)
		p.arena.Declare(scope, f)
		fields = append(fields, f)
		if p.current.Type == lexer.TokenComma || p.current.Type == lexer.TokenSemicolon {
			p.advance()
		}
	}
	p.expect(lexer.TokenRBrace)
	p.popScope()
	return fields
}

func nudStruct(p *Parser) ast.Handle {
	loc := p.tok.Loc
	return p.arena.NewStruct(parseFieldList(p), loc)
}

func nudUnion(p *Parser) ast.Handle {
	loc := p.tok.Loc
	return p.arena.NewUnion(parseFieldList(p), loc)
}

func nudEnum(p *Parser) ast.Handle {
	loc := p.tok.Loc
	p.expect(lexer.TokenLBrace)
	scope := p.pushScope(p.currentScope())
	var members []ast.Handle
	for p.current.Type != lexer.TokenRBrace && p.current.Type != lexer.TokenEOF {
		nameTok, ok := p.expect(lexer.TokenIdentifier)
		if !ok {
			break
		}
		var init ast.Handle
		if p.current.Type == lexer.TokenAssign {
			p.advance()
			init = p.Expression(lbpComma)
		}
		m := p.arena.NewIdentifier(nameTok.Lexeme, nameTok.Lexeme, true, init, nameTok.Loc)
		p.arena.Declare(scope, m)
		members = append(members, m)
		if p.current.Type == lexer.TokenComma {
			p.advance()
		}
	}
	p.expect(lexer.TokenRBrace)
	p.popScope()
	return p.arena.NewEnum(members, loc)
}

func nudFamily(p *Parser) ast.Handle {
	loc := p.tok.Loc
	p.expect(lexer.TokenLBrace)
	var variants []ast.Handle
	for p.current.Type == lexer.TokenStruct {
		variants = append(variants, p.Expression(0))
		if p.current.Type == lexer.TokenComma {
			p.advance()
		}
	}
	p.expect(lexer.TokenRBrace)
	return p.arena.NewFamily(variants, loc)
}

// nudCast and nudBitcast parse `cast<Type>(expr)` / `bitcast<Type>(expr)`,
// reusing the `<`/`>` tokens for the generic-looking type argument rather
// than a dedicated angle-bracket token, per token.go's TokenLAngleGeneric
// comment.
func nudCast(p *Parser) ast.Handle {
	loc := p.tok.Loc
	p.expect(lexer.TokenLt)
	typeTok, _ := p.expect(lexer.TokenIdentifier)
	p.expect(lexer.TokenGt)
	p.expect(lexer.TokenLParen)
	operand := p.Expression(0)
	p.expect(lexer.TokenRParen)
	return p.arena.NewCast(typeTok.Lexeme, operand, loc)
}

func nudBitcast(p *Parser) ast.Handle {
	loc := p.tok.Loc
	p.expect(lexer.TokenLt)
	typeTok, _ := p.expect(lexer.TokenIdentifier)
	p.expect(lexer.TokenGt)
	p.expect(lexer.TokenLParen)
	operand := p.Expression(0)
	p.expect(lexer.TokenRParen)
	return p.arena.NewBitcast(typeTok.Lexeme, operand, loc)
}

func nudModule(p *Parser) ast.Handle {
	loc := p.tok.Loc
	nameTok, _ := p.expect(lexer.TokenIdentifier)
	scope := p.pushScope(p.currentScope())
	body := p.Expression(0)
	p.popScope()
	return p.arena.NewModule(nameTok.Lexeme, body, scope, loc)
}

func nudImport(p *Parser) ast.Handle {
	loc := p.tok.Loc
	pathTok, _ := p.expect(lexer.TokenString)
	return p.arena.NewImport(pathTok.Lexeme, loc)
}

func nudNamespace(p *Parser) ast.Handle {
	loc := p.tok.Loc
	nameTok, _ := p.expect(lexer.TokenIdentifier)
	body := p.Expression(0)
	return p.arena.NewNamespace(nameTok.Lexeme, body, loc)
}

func nudDefer(p *Parser) ast.Handle {
	loc := p.tok.Loc
	return p.arena.NewDefer(p.Expression(0), loc)
}

func nudYield(p *Parser) ast.Handle {
	loc := p.tok.Loc
	var value ast.Handle
	if p.current.Type != lexer.TokenSemicolon {
		value = p.Expression(0)
	}
	return p.arena.NewYield(value, loc)
}

func nudBreak(p *Parser) ast.Handle {
	loc := p.tok.Loc
	label := ""
	if p.current.Type == lexer.TokenIdentifier {
		label = p.current.Lexeme
		p.advance()
	}
	return p.arena.NewBreak(label, loc)
}

func nudContinue(p *Parser) ast.Handle {
	loc := p.tok.Loc
	label := ""
	if p.current.Type == lexer.TokenIdentifier {
		label = p.current.Lexeme
		p.advance()
	}
	return p.arena.NewContinue(label, loc)
}

func nudReturn(p *Parser) ast.Handle {
	loc := p.tok.Loc
	var value ast.Handle
	if p.current.Type != lexer.TokenSemicolon {
		value = p.Expression(0)
	}
	return p.arena.NewReturn(value, loc)
}

func nudGoto(p *Parser) ast.Handle {
	loc := p.tok.Loc
	labelTok, _ := p.expect(lexer.TokenIdentifier)
	return p.arena.NewGoto(labelTok.Lexeme, loc)
}

func nudWith(p *Parser) ast.Handle {
	loc := p.tok.Loc
	subject := p.Expression(0)
	body := p.Expression(0)
	return p.arena.NewWith(subject, body, loc)
}

func nudUse(p *Parser) ast.Handle {
	loc := p.tok.Loc
	nameTok, _ := p.expect(lexer.TokenIdentifier)
	return p.arena.NewUse(nameTok.Lexeme, loc)
}
