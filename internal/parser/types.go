package parser

import (
	"strings"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// parseTypeExpr parses the full type-syntax grammar, topped by the
// `ErrorSet!Payload` suffix — `!T` infers the error set, `E!T` names it.
func (p *Parser) parseTypeExpr() ast.TypeExprID {
	start := p.cur().Span
	if _, ok := p.accept(token.Bang); ok {
		payload := p.parseTypeExpr()
		id := p.file.NewTypeExpr(ast.TypeErrorUnion, p.span(start))
		te := p.file.TypeExprs.Get(id)
		te.Error, te.Elem = ast.NoTypeExpr, payload
		return id
	}
	atom := p.parseTypeAtom(start)
	if _, ok := p.accept(token.Bang); ok {
		payload := p.parseTypeExpr()
		id := p.file.NewTypeExpr(ast.TypeErrorUnion, p.span(start))
		te := p.file.TypeExprs.Get(id)
		te.Error, te.Elem = atom, payload
		return id
	}
	return atom
}

func (p *Parser) parseTypeAtom(start source.Span) ast.TypeExprID {
	switch p.cur().Kind {
	case token.Star:
		p.advance()
		constFlag := false
		if _, ok := p.accept(token.KwConst); ok {
			constFlag = true
		}
		volatile := false
		if _, ok := p.accept(token.KwVolatile); ok {
			volatile = true
		}
		elem := p.parseTypeExpr()
		id := p.file.NewTypeExpr(ast.TypePointer, p.span(start))
		te := p.file.TypeExprs.Get(id)
		te.Elem, te.Const, te.Volatile = elem, constFlag, volatile
		return id
	case token.LBracket:
		p.advance()
		if _, ok := p.accept(token.RBracket); ok {
			constFlag := false
			if _, ok := p.accept(token.KwConst); ok {
				constFlag = true
			}
			elem := p.parseTypeExpr()
			id := p.file.NewTypeExpr(ast.TypeSlice, p.span(start))
			te := p.file.TypeExprs.Get(id)
			te.Elem, te.Const = elem, constFlag
			return id
		}
		length := p.parseExpr()
		p.expect(token.RBracket)
		elem := p.parseTypeExpr()
		id := p.file.NewTypeExpr(ast.TypeArray, p.span(start))
		te := p.file.TypeExprs.Get(id)
		te.Len, te.Elem = length, elem
		return id
	case token.Question:
		p.advance()
		elem := p.parseTypeExpr()
		id := p.file.NewTypeExpr(ast.TypeNullable, p.span(start))
		p.file.TypeExprs.Get(id).Elem = elem
		return id
	case token.KwFn:
		return p.parseFnType(start)
	case token.Ident:
		return p.parseNamedType(start)
	default:
		p.fail(diag.CodeParseUnexpected, "unexpected token %s in type", p.cur().Kind)
		return ast.NoTypeExpr
	}
}

// parseNamedType accepts a (possibly dotted) type name: `Foo`, `pkg.Foo`.
func (p *Parser) parseNamedType(start source.Span) ast.TypeExprID {
	var b strings.Builder
	b.WriteString(p.cur().Text)
	p.expect(token.Ident)
	for p.at(token.Dot) {
		save := p.mark()
		p.advance()
		if !p.at(token.Ident) {
			p.reset(save)
			break
		}
		b.WriteByte('.')
		b.WriteString(p.cur().Text)
		p.advance()
	}
	id := p.file.NewTypeExpr(ast.TypeName, p.span(start))
	p.file.TypeExprs.Get(id).Name = p.intern.Intern(b.String())
	return id
}

// parseCallConvArg parses a callconv/section-style attribute argument, the
// common `.C`/`.Naked` enum-literal shorthand or a plain identifier.
func (p *Parser) parseCallConvArg() source.Name {
	p.accept(token.Dot)
	name := p.name()
	p.expect(token.Ident)
	return name
}

func (p *Parser) parseFnType(start source.Span) ast.TypeExprID {
	p.expect(token.KwFn)
	var callConv source.Name
	if _, ok := p.accept(token.KwCallconv); ok {
		p.expect(token.LParen)
		callConv = p.parseCallConvArg()
		p.expect(token.RParen)
	}
	p.expect(token.LParen)
	var params []ast.FnParam
	for !p.at(token.RParen) {
		params = append(params, p.parseFnParam())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	ret := p.parseTypeExpr()
	id := p.file.NewTypeExpr(ast.TypeFn, p.span(start))
	te := p.file.TypeExprs.Get(id)
	te.Params, te.Ret, te.CallCnv = params, ret, callConv
	return id
}

// parseFnParam parses one `[comptime] [noalias] name: Type` parameter,
// shared by function-type syntax and function declarations.
func (p *Parser) parseFnParam() ast.FnParam {
	var fp ast.FnParam
	if _, ok := p.accept(token.KwComptime); ok {
		fp.Comptime = true
	}
	if _, ok := p.accept(token.KwNoalias); ok {
		fp.NoAlias = true
	}
	fp.Name = p.name()
	p.expect(token.Ident)
	p.expect(token.Colon)
	fp.Type = p.parseTypeExpr()
	if te := p.file.TypeExprs.Get(fp.Type); te.Kind == ast.TypeName && p.intern.Text(te.Name) == "type" {
		fp.Comptime = true // `T: type` is compile-time-known just like `comptime T: type`
	}
	return fp
}
