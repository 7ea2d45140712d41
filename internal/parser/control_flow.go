package parser

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/token"
)

// parseIf parses `if (cond) body [else body]`, including the value-binding
// variant `if (const|var x ?= e)`.
func (p *Parser) parseIf() ast.ExprID {
	start := p.cur().Span
	p.expect(token.KwIf)
	p.expect(token.LParen)
	id := p.file.NewExpr(ast.ExprIf, start)
	e := p.file.Exprs.Get(id)
	p.parseOptionalBinding(e)
	if !e.Binding.Valid() {
		e.Cond = p.parseExpr()
	}
	p.expect(token.RParen)
	e.A = p.parseBlockOrExpr()
	if _, ok := p.accept(token.KwElse); ok {
		e.ElseBody = p.parseBlockOrExpr()
	}
	e.Span = p.span(start)
	return id
}

// parseOptionalBinding recognizes `const|var name ?= expr` inside an `if`/
// `while` condition's parens and fills e.Binding/e.BindMut/e.Cond; it leaves
// e.Binding unset (NoName) if the condition is a plain expression.
func (p *Parser) parseOptionalBinding(e *ast.Expr) {
	if !p.at(token.KwConst) && !p.at(token.KwVar) {
		return
	}
	save := p.mark()
	mutable := p.cur().Kind == token.KwVar
	p.advance()
	ptrBind := false
	if _, ok := p.accept(token.Star); ok {
		ptrBind = true
	}
	if !p.at(token.Ident) {
		p.reset(save)
		return
	}
	name := p.name()
	p.advance()
	if !p.at(token.Question) {
		p.reset(save)
		return
	}
	p.advance()
	p.expect(token.Eq)
	e.Binding = name
	e.BindMut = mutable
	e.BindPtr = ptrBind
	e.Cond = p.parseExpr()
}

// parseWhile parses `while (cond) [: (continueExpr)] body [else body]`.
func (p *Parser) parseWhile() ast.ExprID {
	start := p.cur().Span
	p.expect(token.KwWhile)
	p.expect(token.LParen)
	id := p.file.NewExpr(ast.ExprWhile, start)
	e := p.file.Exprs.Get(id)
	p.parseOptionalBinding(e)
	if !e.Binding.Valid() {
		e.Cond = p.parseExpr()
	}
	p.expect(token.RParen)
	if _, ok := p.accept(token.Colon); ok {
		p.expect(token.LParen)
		e.Cont = p.parseExpr()
		p.expect(token.RParen)
	}
	e.A = p.parseBlockOrExpr()
	if _, ok := p.accept(token.KwElse); ok {
		e.ElseBody = p.parseBlockOrExpr()
	}
	e.Span = p.span(start)
	return id
}

// parseFor parses `for (iterable) |elem[, index]| body`.
func (p *Parser) parseFor() ast.ExprID {
	start := p.cur().Span
	p.expect(token.KwFor)
	p.expect(token.LParen)
	id := p.file.NewExpr(ast.ExprFor, start)
	e := p.file.Exprs.Get(id)
	e.Cond = p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.Pipe)
	e.Binding = p.name()
	p.expect(token.Ident)
	if _, ok := p.accept(token.Comma); ok {
		e.IndexName = p.name()
		p.expect(token.Ident)
	}
	p.expect(token.Pipe)
	e.A = p.parseBlockOrExpr()
	e.Span = p.span(start)
	return id
}

// parseSwitch parses `switch (scrutinee) { (values|"else") ["|" binding "|"] => body ,* }`.
func (p *Parser) parseSwitch() ast.ExprID {
	start := p.cur().Span
	p.expect(token.KwSwitch)
	p.expect(token.LParen)
	id := p.file.NewExpr(ast.ExprSwitch, start)
	e := p.file.Exprs.Get(id)
	e.Cond = p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.LBrace)
	for !p.at(token.RBrace) {
		e.Cases = append(e.Cases, p.parseSwitchCase())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace)
	e.Span = p.span(start)
	return id
}

func (p *Parser) parseSwitchCase() ast.SwitchCase {
	var c ast.SwitchCase
	if _, ok := p.accept(token.KwElse); ok {
		c.Else = true
	} else {
		for {
			v := p.parseExpr()
			cv := ast.CaseValue{Value: v, RangeEnd: ast.NoExpr}
			if _, ok := p.accept(token.DotDotDot); ok {
				cv.RangeEnd = p.parseExpr()
			}
			c.Values = append(c.Values, cv)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			if p.at(token.FatArrow) || p.at(token.Pipe) {
				break
			}
		}
	}
	if _, ok := p.accept(token.Pipe); ok {
		c.Binding = p.name()
		p.expect(token.Ident)
		p.expect(token.Pipe)
	}
	p.expect(token.FatArrow)
	c.Body = p.parseBlockOrExpr()
	return c
}

func (p *Parser) parseAsm() ast.ExprID {
	start := p.cur().Span
	p.expect(token.KwAsm)
	volatile := false
	if _, ok := p.accept(token.KwVolatile); ok {
		volatile = true
	}
	p.expect(token.LParen)
	tmpl := p.expect(token.StringLiteral)
	asm := &ast.AsmExpr{Volatile: volatile, Template: tmpl.Str}
	if _, ok := p.accept(token.Colon); ok {
		asm.Outputs = p.parseAsmOperands()
		if _, ok := p.accept(token.Colon); ok {
			asm.Inputs = p.parseAsmOperands()
			if _, ok := p.accept(token.Colon); ok {
				for {
					c := p.expect(token.StringLiteral)
					asm.Clobbers = append(asm.Clobbers, c.Str)
					if _, ok := p.accept(token.Comma); !ok {
						break
					}
				}
			}
		}
	}
	p.expect(token.RParen)
	id := p.file.NewExpr(ast.ExprAsm, p.span(start))
	p.file.Exprs.Get(id).Asm = asm
	return id
}

func (p *Parser) parseAsmOperands() []ast.AsmOperand {
	var ops []ast.AsmOperand
	for p.at(token.StringLiteral) {
		constraint := p.advance().Str
		p.expect(token.LParen)
		var op ast.AsmOperand
		op.Constraint = constraint
		if p.at(token.Ident) {
			op.Symbolic = p.name()
			p.advance()
		}
		op.Expr = p.parseExpr()
		if _, ok := p.accept(token.Colon); ok {
			op.Type = p.parseTypeExpr()
		}
		p.expect(token.RParen)
		ops = append(ops, op)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return ops
}
