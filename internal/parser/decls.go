package parser

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// parseItem parses one top-level (or container-body) declaration: a
// function, a var/const binding, a struct/enum/union container, a use
// import, a test block, or a top-level comptime block.
func (p *Parser) parseItem() ast.ItemID {
	start := p.cur().Span
	vis := ast.Private
	if _, ok := p.accept(token.KwPub); ok {
		vis = ast.Pub
	} else if _, ok := p.accept(token.KwExport); ok {
		vis = ast.Export
	}

	extern := false
	if _, ok := p.accept(token.KwExtern); ok {
		extern = true
	}
	packed := false
	if _, ok := p.accept(token.KwPacked); ok {
		packed = true
	}
	inline := false
	if _, ok := p.accept(token.KwInline); ok {
		inline = true
	}

	switch p.cur().Kind {
	case token.KwFn:
		return p.parseFnItem(start, vis, extern, inline)
	case token.KwConst, token.KwVar:
		return p.parseVarItem(start, vis)
	case token.KwStruct, token.KwEnum, token.KwUnion:
		return p.parseContainerItem(start, vis, extern, packed)
	case token.KwUse:
		return p.parseUseItem(start)
	case token.KwTest:
		return p.parseTestItem(start)
	case token.KwComptime:
		return p.parseComptimeItem(start)
	default:
		p.fail(diag.CodeParseUnexpected, "expected a declaration, found %s", p.cur().Kind)
		return ast.NoItem
	}
}

// startsItem reports whether the current token can begin a nested
// declaration inside a container body, as opposed to a plain field.
func (p *Parser) startsItem() bool {
	switch p.cur().Kind {
	case token.KwPub, token.KwExport, token.KwExtern, token.KwPacked, token.KwInline,
		token.KwFn, token.KwConst, token.KwVar, token.KwStruct, token.KwEnum, token.KwUnion,
		token.KwUse, token.KwTest, token.KwComptime:
		return true
	default:
		return false
	}
}

func (p *Parser) parseFnItem(start source.Span, vis ast.Visibility, extern, inline bool) ast.ItemID {
	p.expect(token.KwFn)
	name := p.name()
	p.expect(token.Ident)
	p.expect(token.LParen)
	var params []ast.FnParam
	for !p.at(token.RParen) {
		params = append(params, p.parseFnParam())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)

	var callConv, section source.Name
	align := ast.NoExpr
	for {
		switch p.cur().Kind {
		case token.KwCallconv:
			p.advance()
			p.expect(token.LParen)
			callConv = p.parseCallConvArg()
			p.expect(token.RParen)
			continue
		case token.KwAlign:
			p.advance()
			p.expect(token.LParen)
			align = p.parseExpr()
			p.expect(token.RParen)
			continue
		case token.KwLinksection:
			p.advance()
			p.expect(token.LParen)
			lit := p.expect(token.StringLiteral)
			section = p.intern.Intern(lit.Str)
			p.expect(token.RParen)
			continue
		}
		break
	}

	ret := ast.NoTypeExpr
	if !p.at(token.Semi) && !p.at(token.LBrace) {
		ret = p.parseTypeExpr()
	}

	id := p.file.NewItem(ast.ItemFn, start)
	item := p.file.Items.Get(id)
	item.Name, item.Visibility = name, vis
	item.Params, item.RetType = params, ret
	item.Extern, item.Inline = extern, inline
	item.CallConv, item.Section, item.Align = callConv, section, align

	if extern || p.at(token.Semi) {
		p.expect(token.Semi)
		item.Body = ast.NoExpr
	} else {
		item.Body = p.parseBlock()
	}
	item.Span = p.span(start)
	return id
}

// parseVarItem parses a top-level or container-scoped `(const|var) name
// [: Type] [= expr] ;` binding.
func (p *Parser) parseVarItem(start source.Span, vis ast.Visibility) ast.ItemID {
	mutable := p.cur().Kind == token.KwVar
	p.advance()
	name := p.name()
	p.expect(token.Ident)

	typ := ast.NoTypeExpr
	if _, ok := p.accept(token.Colon); ok {
		typ = p.parseTypeExpr()
	}
	value := ast.NoExpr
	if _, ok := p.accept(token.Eq); ok {
		value = p.parseExpr()
	}
	p.expect(token.Semi)

	id := p.file.NewItem(ast.ItemVar, start)
	item := p.file.Items.Get(id)
	item.Name, item.Visibility, item.Mutable = name, vis, mutable
	item.Type, item.Value = typ, value
	item.Span = p.span(start)
	return id
}

// parseContainerItem parses `(struct|enum|union) name ["(" BackingType ")"]
// "{" (member | field ",")* "}"`.
func (p *Parser) parseContainerItem(start source.Span, vis ast.Visibility, extern, packed bool) ast.ItemID {
	var kind ast.ContainerKind
	switch p.cur().Kind {
	case token.KwStruct:
		kind = ast.ContainerStruct
	case token.KwEnum:
		kind = ast.ContainerEnum
	case token.KwUnion:
		kind = ast.ContainerUnion
	}
	p.advance()
	name := p.name()
	p.expect(token.Ident)

	backing := ast.NoTypeExpr
	if _, ok := p.accept(token.LParen); ok {
		backing = p.parseTypeExpr()
		p.expect(token.RParen)
	}

	p.expect(token.LBrace)
	var fields []ast.ContainerField
	var members []ast.ItemID
	for !p.at(token.RBrace) {
		if p.startsItem() {
			members = append(members, p.parseItem())
			continue
		}
		fields = append(fields, p.parseContainerField(kind))
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace)

	layout := ast.LayoutAuto
	switch {
	case extern:
		layout = ast.LayoutExtern
	case packed:
		layout = ast.LayoutPacked
	}

	id := p.file.NewItem(ast.ItemContainer, start)
	item := p.file.Items.Get(id)
	item.Name, item.Visibility = name, vis
	item.ContainerKind, item.Layout = kind, layout
	item.Fields, item.Members, item.BackingType = fields, members, backing
	item.Span = p.span(start)
	return id
}

// parseContainerField parses one struct field (`name: Type [= default]`),
// union field (`name: Type`), or enum variant (`name [= value]`).
func (p *Parser) parseContainerField(kind ast.ContainerKind) ast.ContainerField {
	var f ast.ContainerField
	f.Type, f.Default, f.Value = ast.NoTypeExpr, ast.NoExpr, ast.NoExpr
	f.Name = p.name()
	p.expect(token.Ident)
	switch kind {
	case ast.ContainerEnum:
		if _, ok := p.accept(token.Eq); ok {
			f.Value = p.parseExpr()
		}
	default: // struct, union
		p.expect(token.Colon)
		f.Type = p.parseTypeExpr()
		if kind == ast.ContainerStruct {
			if _, ok := p.accept(token.Eq); ok {
				f.Default = p.parseExpr()
			}
		}
	}
	return f
}

// parseUseItem parses `use path("::" path)* ";"`.
func (p *Parser) parseUseItem(start source.Span) ast.ItemID {
	p.expect(token.KwUse)
	var path []source.Name
	path = append(path, p.name())
	p.expect(token.Ident)
	for {
		if _, ok := p.accept(token.ColonColon); !ok {
			break
		}
		path = append(path, p.name())
		p.expect(token.Ident)
	}
	p.expect(token.Semi)

	id := p.file.NewItem(ast.ItemUse, start)
	item := p.file.Items.Get(id)
	item.UsePath = path
	item.Span = p.span(start)
	return id
}

// parseTestItem parses `test ["name"] block`.
func (p *Parser) parseTestItem(start source.Span) ast.ItemID {
	p.expect(token.KwTest)
	testName := ""
	if p.at(token.StringLiteral) {
		testName = p.cur().Str
		p.advance()
	}
	body := p.parseBlock()

	id := p.file.NewItem(ast.ItemTest, start)
	item := p.file.Items.Get(id)
	item.TestName = testName
	item.Body = body
	item.Span = p.span(start)
	return id
}

// parseComptimeItem parses a top-level `comptime block`, evaluated once at
// compile time for its side effects (registering types, asserting invariants).
func (p *Parser) parseComptimeItem(start source.Span) ast.ItemID {
	p.expect(token.KwComptime)
	body := p.parseBlock()

	id := p.file.NewItem(ast.ItemComptimeBlock, start)
	item := p.file.Items.Get(id)
	item.Body = body
	item.Span = p.span(start)
	return id
}
