package lexer

import (
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/token"
)

// scanOperator lexes punctuation and operators, including the arithmetic-
// wrap family (+% -% *% <<%) and their assign-variants.
func (lx *Lexer) scanOperator(start uint32) token.Token {
	ch := lx.cur.advance()
	kind := token.Invalid
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semi
	case ':':
		kind = token.Colon
		if lx.cur.matches(':') {
			kind = token.ColonColon
		}
	case '.':
		kind = token.Dot
		if lx.cur.matches('.') {
			kind = token.DotDot
			if lx.cur.matches('.') {
				kind = token.DotDotDot
			}
		}
	case '@':
		kind = token.At
	case '~':
		kind = token.Tilde
	case '+':
		kind = lx.opWrap(token.Plus, token.PlusPercent, token.PlusEq, token.PlusPercentEq)
	case '-':
		if lx.cur.matches('>') {
			kind = token.Arrow
		} else {
			kind = lx.opWrap(token.Minus, token.MinusPercent, token.MinusEq, token.MinusPercentEq)
		}
	case '*':
		kind = lx.opWrap(token.Star, token.StarPercent, token.StarEq, token.StarPercentEq)
	case '/':
		kind = token.Slash
		if lx.cur.matches('=') {
			kind = token.SlashEq
		}
	case '%':
		kind = token.Percent
		if lx.cur.matches('=') {
			kind = token.PercentEq
		} else if matchesKw(lx, "defer") {
			kind = token.PercentDefer
		}
	case '?':
		kind = token.Question
		if matchesKw(lx, "defer") {
			kind = token.QuestionDefer
		}
	case '=':
		kind = token.Eq
		if lx.cur.matches('=') {
			kind = token.EqEq
		} else if lx.cur.matches('>') {
			kind = token.FatArrow
		}
	case '!':
		kind = token.Bang
		if lx.cur.matches('=') {
			kind = token.BangEq
		}
	case '<':
		if lx.cur.matches('<') {
			kind = token.Shl
			if lx.cur.matches('%') {
				kind = token.ShlPercent
				if lx.cur.matches('=') {
					kind = token.ShlPercentEq
				}
			} else if lx.cur.matches('=') {
				kind = token.ShlEq
			}
		} else if lx.cur.matches('=') {
			kind = token.LtEq
		} else {
			kind = token.Lt
		}
	case '>':
		if lx.cur.matches('>') {
			kind = token.Shr
			if lx.cur.matches('=') {
				kind = token.ShrEq
			}
		} else if lx.cur.matches('=') {
			kind = token.GtEq
		} else {
			kind = token.Gt
		}
	case '&':
		kind = token.Amp
		if lx.cur.matches('=') {
			kind = token.AmpEq
		}
	case '|':
		kind = token.Pipe
		if lx.cur.matches('=') {
			kind = token.PipeEq
		}
	case '^':
		kind = token.Caret
		if lx.cur.matches('=') {
			kind = token.CaretEq
		}
	default:
		t := lx.tok(token.Invalid, start)
		lx.errorf(t.Span, diag.CodeLexUnknownByte, "unexpected byte %q", ch)
		return t
	}
	return lx.tok(kind, start)
}

// opWrap handles the four-way split every wrapping arithmetic operator
// needs: plain, wrap (%), assign (=), wrap-assign (%=).
func (lx *Lexer) opWrap(plain, wrap, assign, wrapAssign token.Kind) token.Kind {
	if lx.cur.matches('%') {
		if lx.cur.matches('=') {
			return wrapAssign
		}
		return wrap
	}
	if lx.cur.matches('=') {
		return assign
	}
	return plain
}

// matchesKw peeks for a bare identifier-like keyword (used for "?defer" and
// "%defer", which are two tokens glued without whitespace in the grammar).
func matchesKw(lx *Lexer, word string) bool {
	save := lx.cur.pos
	for i := 0; i < len(word); i++ {
		if lx.cur.peek() != word[i] {
			lx.cur.pos = save
			return false
		}
		lx.cur.advance()
	}
	if !lx.cur.eof() && isIdentContinue(lx.cur.peek()) {
		lx.cur.pos = save
		return false
	}
	return true
}
