package lexer

import (
	"strings"

	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/token"
)

// scanString lexes a double-quoted string literal, decoding escapes
// (\n \t \r \\ \" \' \0 and \xHH / octal \NNN forms) into Str.
func (lx *Lexer) scanString(start uint32, isC bool) token.Token {
	lx.cur.advance() // opening quote
	var decoded strings.Builder
	for {
		if lx.cur.eof() {
			t := lx.tok(token.StringLiteral, start)
			lx.errorf(t.Span, diag.CodeLexUnterminated, "unterminated string literal")
			return t
		}
		ch := lx.cur.peek()
		if ch == '"' {
			lx.cur.advance()
			break
		}
		if ch == '\\' {
			lx.cur.advance()
			decoded.WriteByte(lx.scanEscape())
			continue
		}
		decoded.WriteByte(ch)
		lx.cur.advance()
	}
	kind := token.StringLiteral
	if isC {
		kind = token.CStringLiteral
	}
	t := lx.tok(kind, start)
	t.Str = decoded.String()
	t.IsC = isC
	return t
}

func (lx *Lexer) scanChar(start uint32) token.Token {
	lx.cur.advance() // opening quote
	var value byte
	if lx.cur.peek() == '\\' {
		lx.cur.advance()
		value = lx.scanEscape()
	} else {
		value = lx.cur.advance()
	}
	if lx.cur.peek() == '\'' {
		lx.cur.advance()
	} else {
		t := lx.tok(token.CharLiteral, start)
		lx.errorf(t.Span, diag.CodeLexUnterminated, "unterminated char literal")
		return t
	}
	t := lx.tok(token.CharLiteral, start)
	t.Str = string(value)
	return t
}

// scanEscape decodes one escape sequence after the backslash has already
// been consumed, including \NNN octal escapes as called out in the lexer's
// literal grammar.
func (lx *Lexer) scanEscape() byte {
	ch := lx.cur.advance()
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '\'', '"':
		return ch
	case 'x':
		hi, lo := lx.cur.advance(), lx.cur.advance()
		return hexByte(hi)<<4 | hexByte(lo)
	default:
		if ch >= '0' && ch <= '7' {
			v := ch - '0'
			for i := 0; i < 2 && lx.cur.peek() >= '0' && lx.cur.peek() <= '7'; i++ {
				v = v*8 + (lx.cur.advance() - '0')
			}
			return v
		}
		return ch
	}
}

func hexByte(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}
