package lexer

// Options tunes lexer behavior. KeepTrivia is expensive (retains comment
// spans for the pretty-printer) and off by default for plain compilation.
type Options struct {
	KeepTrivia bool
}
