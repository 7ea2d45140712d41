package lexer

import "github.com/thresh-lang/threshc/internal/token"

// All drains lx to a slice, including the trailing EOF token. Used by tests
// that want the whole stream at once.
func All(lx *Lexer) []token.Token {
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}
