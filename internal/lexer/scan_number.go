package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/token"
)

// scanNumber lexes decimal, hex (0x), octal (0o), and binary (0b) integer
// and floating-point literals. The decoded value is always computed, even
// when it overflows 64 signed bits, so the arbitrary-precision arena in
// internal/types can still represent it; Overflow just flags that consumers
// asking for a 64-bit view must reject it.
func (lx *Lexer) scanNumber(start uint32) token.Token {
	base := 10
	digits := "0123456789"
	if lx.cur.peek() == '0' {
		if b, ok := lx.cur.peekAt(1); ok {
			switch b {
			case 'x', 'X':
				base, digits = 16, "0123456789abcdefABCDEF"
				lx.cur.advance()
				lx.cur.advance()
			case 'o', 'O':
				base, digits = 8, "01234567"
				lx.cur.advance()
				lx.cur.advance()
			case 'b', 'B':
				base, digits = 2, "01"
				lx.cur.advance()
				lx.cur.advance()
			}
		}
	}

	isFloat := false
	for {
		ch := lx.cur.peek()
		if strings.IndexByte(digits, ch) >= 0 || ch == '_' {
			lx.cur.advance()
			continue
		}
		break
	}
	if base == 10 && lx.cur.peek() == '.' {
		if next, ok := lx.cur.peekAt(1); ok && isDigit(next) {
			isFloat = true
			lx.cur.advance() // '.'
			for isDigit(lx.cur.peek()) || lx.cur.peek() == '_' {
				lx.cur.advance()
			}
		}
	}
	if base == 10 && (lx.cur.peek() == 'e' || lx.cur.peek() == 'E') {
		isFloat = true
		lx.cur.advance()
		if lx.cur.peek() == '+' || lx.cur.peek() == '-' {
			lx.cur.advance()
		}
		for isDigit(lx.cur.peek()) {
			lx.cur.advance()
		}
	}
	if base == 16 && (lx.cur.peek() == 'p' || lx.cur.peek() == 'P') {
		isFloat = true
		lx.cur.advance()
		if lx.cur.peek() == '+' || lx.cur.peek() == '-' {
			lx.cur.advance()
		}
		for isDigit(lx.cur.peek()) {
			lx.cur.advance()
		}
	}

	t := lx.tok(token.IntLiteral, start)
	text := strings.ReplaceAll(t.Text, "_", "")
	if isFloat {
		t.Kind = token.FloatLiteral
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			f = math.NaN()
		}
		t.Number = token.BigValue{IsFloat: true, Float: f}
		return t
	}

	body := text
	switch base {
	case 16:
		body = body[2:]
	case 8:
		body = body[2:]
	case 2:
		body = body[2:]
	}
	n, ok := new(big.Int).SetString(body, base)
	if !ok {
		lx.errorf(t.Span, diag.CodeLexIntOverflow, "invalid integer literal %q", t.Text)
		n = big.NewInt(0)
	}
	t.Number = token.BigValue{IntText: n.String()}
	if n.BitLen() > 64 || (n.BitLen() == 64 && n.Sign() > 0) {
		// Needs more than 64 signed bits to represent exactly.
		if !(n.BitLen() <= 63) {
			t.Number.Overflow = true
		}
	}
	return t
}
