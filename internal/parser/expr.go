package parser

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// precedence climbs: or > and > comparison > bitor/xor > bitand > shift >
// additive > multiplicative > prefix > postfix > primary, per spec.md.
var binPrec = map[token.Kind]int{
	token.KwOr: 1, token.KwOrelse: 1,
	token.KwAnd: 2,
	token.EqEq:  3, token.BangEq: 3, token.Lt: 3, token.Gt: 3, token.LtEq: 3, token.GtEq: 3,
	token.Pipe: 4, token.Caret: 4,
	token.Amp: 5,
	token.Shl: 6, token.Shr: 6, token.ShlPercent: 6,
	token.Plus: 7, token.Minus: 7, token.PlusPercent: 7, token.MinusPercent: 7,
	token.Star: 8, token.Slash: 8, token.Percent: 8, token.StarPercent: 8,
}

var binOpOf = map[token.Kind]ast.BinOp{
	token.KwOr: ast.OpBoolOr, token.KwOrelse: ast.OpOrelse, token.KwAnd: ast.OpBoolAnd,
	token.EqEq: ast.OpEq, token.BangEq: ast.OpNe, token.Lt: ast.OpLt, token.Gt: ast.OpGt,
	token.LtEq: ast.OpLe, token.GtEq: ast.OpGe,
	token.Pipe: ast.OpBitOr, token.Caret: ast.OpBitXor, token.Amp: ast.OpBitAnd,
	token.Shl: ast.OpShl, token.Shr: ast.OpShr, token.ShlPercent: ast.OpShlWrap,
	token.Plus: ast.OpAdd, token.Minus: ast.OpSub, token.PlusPercent: ast.OpAddWrap, token.MinusPercent: ast.OpSubWrap,
	token.Star: ast.OpMul, token.Slash: ast.OpDiv, token.Percent: ast.OpMod, token.StarPercent: ast.OpMulWrap,
}

// assignOps maps every `=`/compound-assignment token to the BinOp its
// compound form folds in; Eq itself has no entry since a plain assignment
// carries no operator.
var assignOps = map[token.Kind]ast.BinOp{
	token.PlusEq: ast.OpAdd, token.MinusEq: ast.OpSub, token.StarEq: ast.OpMul, token.SlashEq: ast.OpDiv,
	token.PercentEq: ast.OpMod, token.PlusPercentEq: ast.OpAddWrap, token.MinusPercentEq: ast.OpSubWrap,
	token.StarPercentEq: ast.OpMulWrap, token.ShlPercentEq: ast.OpShlWrap,
	token.AmpEq: ast.OpBitAnd, token.PipeEq: ast.OpBitOr, token.CaretEq: ast.OpBitXor,
	token.ShlEq: ast.OpShl, token.ShrEq: ast.OpShr,
}

// parseExpr parses a full expression at the lowest precedence: assignment
// (right-associative, over a boolean-or expression on each side).
func (p *Parser) parseExpr() ast.ExprID {
	lhs := p.parseBinary(0)
	if p.at(token.Eq) {
		start := p.file.Exprs.Get(lhs).Span
		p.advance()
		rhs := p.parseExpr()
		id := p.file.NewExpr(ast.ExprAssign, p.span(start))
		e := p.file.Exprs.Get(id)
		e.A, e.B = lhs, rhs
		return id
	}
	if op, ok := assignOps[p.cur().Kind]; ok {
		start := p.file.Exprs.Get(lhs).Span
		p.advance()
		rhs := p.parseExpr()
		id := p.file.NewExpr(ast.ExprAssign, p.span(start))
		e := p.file.Exprs.Get(id)
		e.A, e.B = lhs, rhs
		e.BinOp = op
		e.Compound = true
		return id
	}
	return lhs
}

func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	lhs := p.parseUnary()
	for {
		prec, ok := binPrec[p.cur().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		opKind := p.cur().Kind
		start := p.file.Exprs.Get(lhs).Span
		p.advance()
		rhs := p.parseBinary(prec + 1)
		id := p.file.NewExpr(ast.ExprBinary, p.span(start))
		e := p.file.Exprs.Get(id)
		e.A, e.B = lhs, rhs
		e.BinOp = binOpOf[opKind]
		lhs = id
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Minus, token.Bang, token.Tilde:
		opKind := p.cur().Kind
		p.advance()
		operand := p.parseUnary()
		id := p.file.NewExpr(ast.ExprUnary, p.span(start))
		e := p.file.Exprs.Get(id)
		e.A = operand
		switch opKind {
		case token.Minus:
			e.UnOp = ast.OpNeg
		case token.Bang:
			e.UnOp = ast.OpNot
		case token.Tilde:
			e.UnOp = ast.OpBitNot
		}
		return id
	case token.Amp:
		p.advance()
		operand := p.parseUnary()
		id := p.file.NewExpr(ast.ExprAddrOf, p.span(start))
		p.file.Exprs.Get(id).A = operand
		return id
	case token.KwTry:
		return p.parseTry(start)
	case token.KwComptime:
		p.advance()
		inner := p.parseUnary()
		id := p.file.NewExpr(ast.ExprComptime, p.span(start))
		p.file.Exprs.Get(id).A = inner
		return id
	case token.KwInline:
		p.advance()
		inner := p.parseUnary()
		id := p.file.NewExpr(ast.ExprInline, p.span(start))
		p.file.Exprs.Get(id).A = inner
		return id
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.ExprID {
	start := p.cur().Span
	e := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			e = p.parseCallArgs(e, start)
		case token.Dot:
			p.advance()
			if _, ok := p.accept(token.Star); ok {
				id := p.file.NewExpr(ast.ExprDeref, p.span(start))
				p.file.Exprs.Get(id).A = e
				e = id
				continue
			}
			name := p.name()
			p.expect(token.Ident)
			id := p.file.NewExpr(ast.ExprField, p.span(start))
			fe := p.file.Exprs.Get(id)
			fe.A, fe.Name = e, name
			e = id
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			if _, ok := p.accept(token.DotDot); ok {
				end := ast.NoExpr
				if !p.at(token.RBracket) {
					end = p.parseExpr()
				}
				p.expect(token.RBracket)
				id := p.file.NewExpr(ast.ExprSlice, p.span(start))
				se := p.file.Exprs.Get(id)
				se.A, se.B, se.C = e, idx, end
				e = id
				continue
			}
			p.expect(token.RBracket)
			id := p.file.NewExpr(ast.ExprIndex, p.span(start))
			ie := p.file.Exprs.Get(id)
			ie.A, ie.B = e, idx
			e = id
		case token.KwCatch:
			e = p.parseCatch(e, start)
		default:
			return e
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.ExprID, start source.Span) ast.ExprID {
	p.expect(token.LParen)
	var args []ast.ExprID
	for !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	id := p.file.NewExpr(ast.ExprCall, p.span(start))
	ce := p.file.Exprs.Get(id)
	ce.A, ce.Children = callee, args
	return id
}

// parseTry parses `try expr`, optionally followed by `else |err| body`.
func (p *Parser) parseTry(start source.Span) ast.ExprID {
	p.advance() // 'try'
	inner := p.parseUnary()
	id := p.file.NewExpr(ast.ExprTry, p.span(start))
	e := p.file.Exprs.Get(id)
	e.A = inner
	if _, ok := p.accept(token.KwElse); ok {
		e.ErrName = p.parseErrCapture()
		e.ElseBody = p.parseBlockOrExpr()
	}
	return id
}

// parseCatch parses the postfix `expr catch [|err|] body` form.
func (p *Parser) parseCatch(lhs ast.ExprID, start source.Span) ast.ExprID {
	p.advance() // 'catch'
	id := p.file.NewExpr(ast.ExprCatch, p.span(start))
	e := p.file.Exprs.Get(id)
	e.A = lhs
	if p.at(token.Pipe) {
		e.ErrName = p.parseErrCapture()
	}
	e.ElseBody = p.parseBlockOrExpr()
	return id
}

func (p *Parser) parseErrCapture() (name source.Name) {
	p.expect(token.Pipe)
	n := p.name()
	p.expect(token.Ident)
	p.expect(token.Pipe)
	return n
}

func (p *Parser) parseBlockOrExpr() ast.ExprID {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	return p.parseExpr()
}

func (p *Parser) parsePrimary() ast.ExprID {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Ident:
		name := p.name()
		p.advance()
		id := p.file.NewExpr(ast.ExprIdent, p.span(start))
		p.file.Exprs.Get(id).Name = name
		return id
	case token.IntLiteral:
		t := p.advance()
		id := p.file.NewExpr(ast.ExprIntLit, p.span(start))
		ast.FillLiteral(p.file.Exprs.Get(id), t)
		return id
	case token.FloatLiteral:
		t := p.advance()
		id := p.file.NewExpr(ast.ExprFloatLit, p.span(start))
		ast.FillLiteral(p.file.Exprs.Get(id), t)
		return id
	case token.StringLiteral, token.CStringLiteral:
		t := p.advance()
		kind := ast.ExprStringLit
		if t.Kind == token.CStringLiteral {
			kind = ast.ExprCStringLit
		}
		id := p.file.NewExpr(kind, p.span(start))
		ast.FillLiteral(p.file.Exprs.Get(id), t)
		return id
	case token.CharLiteral:
		t := p.advance()
		id := p.file.NewExpr(ast.ExprCharLit, p.span(start))
		ast.FillLiteral(p.file.Exprs.Get(id), t)
		return id
	case token.KwTrue, token.KwFalse:
		t := p.advance()
		id := p.file.NewExpr(ast.ExprBoolLit, p.span(start))
		p.file.Exprs.Get(id).Bool = t.Kind == token.KwTrue
		return id
	case token.KwNull:
		p.advance()
		return p.file.NewExpr(ast.ExprNullLit, p.span(start))
	case token.KwUndefined:
		p.advance()
		return p.file.NewExpr(ast.ExprUndefinedLit, p.span(start))
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		id := p.file.NewExpr(ast.ExprGroup, p.span(start))
		p.file.Exprs.Get(id).A = inner
		return id
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwAsm:
		return p.parseAsm()
	case token.At:
		return p.parseBuiltinCall()
	default:
		p.fail(diag.CodeParseUnexpected, "unexpected token %s in expression", p.cur().Kind)
		return ast.NoExpr
	}
}

func (p *Parser) parseBuiltinCall() ast.ExprID {
	start := p.cur().Span
	p.expect(token.At)
	name := p.cur().Text
	p.expect(token.Ident)
	p.expect(token.LParen)
	var args []ast.ExprID
	for !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	id := p.file.NewExpr(ast.ExprBuiltinCall, p.span(start))
	e := p.file.Exprs.Get(id)
	e.Builtin, e.Children = name, args
	return id
}
