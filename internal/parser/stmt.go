package parser

import (
	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/token"
)

// parseBlock parses `{ stmt* }` as an ExprBlock.
func (p *Parser) parseBlock() ast.ExprID {
	start := p.cur().Span
	p.expect(token.LBrace)
	id := p.file.NewExpr(ast.ExprBlock, start)
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && p.cur().Kind != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBrace)
	be := p.file.Exprs.Get(id)
	be.Span = p.span(start)
	be.Stmts = stmts
	return id
}

// parseStmt parses one statement: `VariableDeclaration ";" |
// Defer(Block) | Defer(Expression) ";" | BlockExpression(Block) |
// Expression ";" | ";"`.
func (p *Parser) parseStmt() ast.StmtID {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.KwConst, token.KwVar:
		return p.parseLetStmt()
	case token.KwReturn:
		p.advance()
		id := p.file.NewStmt(ast.StmtReturn, start)
		if !p.at(token.Semi) {
			p.file.Stmts.Get(id).Value = p.parseExpr()
		}
		p.expect(token.Semi)
		p.file.Stmts.Get(id).Span = p.span(start)
		return id
	case token.KwBreak:
		p.advance()
		id := p.file.NewStmt(ast.StmtBreak, start)
		s := p.file.Stmts.Get(id)
		if p.at(token.Colon) {
			p.advance()
			s.Label = p.name()
			p.expect(token.Ident)
		}
		if !p.at(token.Semi) {
			s.Value = p.parseExpr()
		}
		p.expect(token.Semi)
		s.Span = p.span(start)
		return id
	case token.KwContinue:
		p.advance()
		id := p.file.NewStmt(ast.StmtContinue, start)
		s := p.file.Stmts.Get(id)
		if p.at(token.Colon) {
			p.advance()
			s.Label = p.name()
			p.expect(token.Ident)
		}
		p.expect(token.Semi)
		s.Span = p.span(start)
		return id
	case token.KwDefer, token.PercentDefer, token.QuestionDefer:
		return p.parseDeferStmt()
	case token.Semi:
		p.advance()
		return p.file.NewStmt(ast.StmtExpr, p.span(start))
	default:
		return p.parseExprOrLabelStmt()
	}
}

// parseLetStmt parses `(const|var) name [: Type] = expr ;`.
func (p *Parser) parseLetStmt() ast.StmtID {
	start := p.cur().Span
	mutable := p.cur().Kind == token.KwVar
	p.advance()
	id := p.file.NewStmt(ast.StmtLet, start)
	s := p.file.Stmts.Get(id)
	s.Mutable = mutable
	s.Name = p.name()
	p.expect(token.Ident)
	if _, ok := p.accept(token.Colon); ok {
		s.Type = p.parseTypeExpr()
	}
	p.expect(token.Eq)
	s.Value = p.parseExpr()
	p.expect(token.Semi)
	s.Span = p.span(start)
	return id
}

// parseDeferStmt parses `(%|?)?defer (Block|Expression;)`.
func (p *Parser) parseDeferStmt() ast.StmtID {
	start := p.cur().Span
	kind := ast.DeferUnconditional
	switch p.cur().Kind {
	case token.PercentDefer:
		kind = ast.DeferError
	case token.QuestionDefer:
		kind = ast.DeferMaybe
	}
	p.advance()
	id := p.file.NewStmt(ast.StmtDefer, start)
	s := p.file.Stmts.Get(id)
	s.DeferKind = kind
	s.Value = p.parseBlockOrExpr()
	if p.file.Exprs.Get(s.Value).Kind != ast.ExprBlock {
		p.expect(token.Semi)
	}
	s.Span = p.span(start)
	return id
}

// parseExprOrLabelStmt parses a bare expression statement. Labels are not
// recognized: neither this function nor parseWhile/parseFor parses a
// `label:` prefix, so a statement starting with an identifier is always a
// plain expression here.
func (p *Parser) parseExprOrLabelStmt() ast.StmtID {
	start := p.cur().Span
	expr := p.parseExpr()
	id := p.file.NewStmt(ast.StmtExpr, start)
	s := p.file.Stmts.Get(id)
	s.Value = expr
	kind := p.file.Exprs.Get(expr).Kind
	if kind == ast.ExprInline || kind == ast.ExprComptime {
		// `inline while (...) {}` and `comptime {}` end where the form they wrap ends.
		kind = p.file.Exprs.Get(p.file.Exprs.Get(expr).A).Kind
	}
	if needsTrailingSemi(kind) {
		p.expect(token.Semi)
	} else {
		p.accept(token.Semi)
	}
	s.Span = p.span(start)
	return id
}

// needsTrailingSemi reports whether an expression statement of this kind
// requires a terminating ";". Constructs whose surface form already ends in
// "}" (blocks and the control-flow forms built on them) don't.
func needsTrailingSemi(k ast.ExprKind) bool {
	switch k {
	case ast.ExprBlock, ast.ExprIf, ast.ExprWhile, ast.ExprFor, ast.ExprSwitch, ast.ExprAsm:
		return false
	default:
		return true
	}
}
