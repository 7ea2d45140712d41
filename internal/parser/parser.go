// Package parser implements Thresh's hand-written recursive-descent parser.
// It turns a token.Token stream into an internal/ast.File; it never consults
// or builds type information, and it halts eagerly on the first syntax
// error rather than guessing a recovery point, matching the rest of the
// pipeline's "never guess intent on ambiguous source" policy.
package parser

import (
	"fmt"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// Parser buffers every token it has read from the Lexer in toks, and reads
// through a movable index pos. A handful of constructs (the `if (const x ?=
// e)` binding form) need to try a shape and fall back to a plain expression;
// buffering the whole stream (rather than a single lookahead slot) lets
// mark/reset implement that without re-lexing.
type Parser struct {
	lx     *lexer.Lexer
	file   *ast.File
	bag    *diag.Bag
	intern *source.Interner

	toks []token.Token
	pos  int
}

// abort is the panic value used to unwind to ParseFile on the first syntax
// error; ParseFile recovers it and turns it back into a (nil, error) return.
type abort struct{ err error }

// New returns a Parser reading from lx and building nodes into file,
// reporting into bag and interning identifiers through intern.
func New(lx *lexer.Lexer, file *ast.File, bag *diag.Bag, intern *source.Interner) *Parser {
	p := &Parser{lx: lx, file: file, bag: bag, intern: intern}
	p.toks = append(p.toks, lx.Next())
	return p
}

// ParseFile parses a complete compilation unit: a sequence of top-level
// items until EOF.
func ParseFile(lx *lexer.Lexer, file *ast.File, bag *diag.Bag, intern *source.Interner) (err error) {
	p := New(lx, file, bag, intern)
	defer func() {
		if r := recover(); r != nil {
			if a, ok := r.(abort); ok {
				err = a.err
				return
			}
			panic(r)
		}
	}()
	for p.cur().Kind != token.EOF {
		item := p.parseItem()
		file.Root = append(file.Root, item)
	}
	return nil
}

// cur returns the token at the parser's current position, fetching from the
// lexer if it hasn't been read yet.
func (p *Parser) cur() token.Token {
	p.ensure(0)
	return p.toks[p.pos]
}

// prev returns the token just consumed by the most recent advance().
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return token.Token{}
	}
	return p.toks[p.pos-1]
}

// ensure grows toks until at least n tokens are available past pos.
func (p *Parser) ensure(n int) {
	for p.pos+n >= len(p.toks) {
		last := p.toks[len(p.toks)-1]
		if last.Kind == token.EOF {
			p.toks = append(p.toks, last)
			continue
		}
		p.toks = append(p.toks, p.lx.Next())
	}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	p.pos++
	return t
}

// mark returns a position that reset can later rewind to, for constructs
// that speculatively parse a shape and fall back to a different one.
func (p *Parser) mark() int { return p.pos }

func (p *Parser) reset(m int) { p.pos = m }

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or halts compilation with a diagnostic
// naming what was expected and what was actually found.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.fail(diag.CodeParseExpected, "expected %s, found %s", k, p.cur().Kind)
	return token.Token{}
}

// fail records a diagnostic and unwinds the parse via panic(abort{...}),
// matching spec.md's "parser errors print the token and halt the process".
func (p *Parser) fail(code diag.Code, format string, args ...any) {
	d := diag.Errorf(code, p.cur().Span, format, args...)
	p.bag.Add(d)
	panic(abort{err: fmt.Errorf("%s: %s", code, d.Message)})
}

func (p *Parser) span(start source.Span) source.Span {
	return start.Cover(p.prev().Span)
}

// name interns the current token's text and returns its Name. Callers
// typically call this right before advancing past an Ident token.
func (p *Parser) name() source.Name {
	return p.intern.Intern(p.cur().Text)
}
