package lexer

import (
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

// Lexer converts one source.File into a stream of tokens. It never blocks
// and never backtracks across Next() calls: Next() always returns the next
// significant token, with trivia (if requested) attached to it as Leading.
type Lexer struct {
	file   *source.File
	cur    cursor
	opts   Options
	bag    *diag.Bag
	fileID source.FileID

	Leading []token.Trivia // trivia collected before the token just returned
}

// New returns a Lexer over file, reporting lex errors into bag.
func New(file *source.File, opts Options, bag *diag.Bag) *Lexer {
	return &Lexer{file: file, cur: newCursor(file), opts: opts, bag: bag, fileID: file.ID}
}

// Next scans and returns the next token. After EOF it keeps returning an EOF
// token at the same position, so callers can always peek one past the end.
func (lx *Lexer) Next() token.Token {
	lx.Leading = lx.Leading[:0]
	lx.skipTrivia()

	start := lx.cur.pos
	if lx.cur.eof() {
		return lx.tok(token.EOF, start)
	}

	ch := lx.cur.peek()
	switch {
	case ch == 'c' && lx.peekIsCString():
		lx.cur.advance() // consume 'c'
		return lx.scanString(start, true)
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword(start)
	case isDigit(ch):
		return lx.scanNumber(start)
	case ch == '"':
		return lx.scanString(start, false)
	case ch == '\'':
		return lx.scanChar(start)
	default:
		return lx.scanOperator(start)
	}
}

func (lx *Lexer) peekIsCString() bool {
	b, ok := lx.cur.peekAt(1)
	return ok && b == '"'
}

// skipTrivia consumes whitespace and comments, optionally recording them as
// Leading trivia for the token that follows.
func (lx *Lexer) skipTrivia() {
	for {
		switch lx.cur.peek() {
		case ' ', '\t', '\r', '\n':
			lx.cur.advance()
		case '/':
			if b, ok := lx.cur.peekAt(1); ok && b == '/' {
				start := lx.cur.pos
				for !lx.cur.eof() && lx.cur.peek() != '\n' {
					lx.cur.advance()
				}
				if lx.opts.KeepTrivia {
					lx.Leading = append(lx.Leading, token.Trivia{
						Kind: token.TriviaLineComment,
						Span: source.Span{File: lx.fileID, Start: start, End: lx.cur.pos},
					})
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (lx *Lexer) tok(kind token.Kind, start uint32) token.Token {
	end := lx.cur.pos
	return token.Token{
		Kind: kind,
		Span: source.Span{File: lx.fileID, Start: start, End: end},
		Text: string(lx.file.Content[start:end]),
	}
}

func (lx *Lexer) errorf(span source.Span, code diag.Code, format string, args ...any) {
	if lx.bag != nil {
		lx.bag.Add(diag.Errorf(code, span, format, args...))
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) scanIdentOrKeyword(start uint32) token.Token {
	for !lx.cur.eof() && isIdentContinue(lx.cur.peek()) {
		lx.cur.advance()
	}
	t := lx.tok(token.Ident, start)
	if kw, ok := token.LookupKeyword(t.Text); ok {
		t.Kind = kw
	}
	return t
}
