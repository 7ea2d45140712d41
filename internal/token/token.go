package token

import "github.com/thresh-lang/threshc/internal/source"

// BigValue carries a numeric literal's decoded payload. Integers keep exact
// arbitrary-precision text (Go's math/big.Int in the lexer package, decoded
// lazily); Overflow marks a literal that needs more than 64 signed bits,
// and ast.FillLiteral copies it onto the literal's Expr.
type BigValue struct {
	IsFloat  bool
	Overflow bool
	IntText  string // normalized decimal text, valid when !IsFloat
	Float    float64
}

// Token is one lexical unit: its kind, source span, raw text, and (for
// literals) the decoded payload.
type Token struct {
	Kind Kind
	Span source.Span
	Text string

	Number BigValue // valid when Kind is IntLiteral/FloatLiteral
	Str    string    // decoded string/char content, valid for *Literal string kinds
	IsC    bool      // c"..." prefix
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Kind.String()
}
