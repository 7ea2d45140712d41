package token

import "github.com/thresh-lang/threshc/internal/source"

// TriviaKind distinguishes the two kinds of non-semantic source text
// (comments and blank lines) the lexer can record.
type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
	TriviaNewline
)

// Trivia is a comment or blank-line run, collected into the lexer's
// Leading slice ahead of the token that follows it when lexer.Options's
// KeepTrivia is set. Nothing in this tree sets KeepTrivia or renders
// source text back from recorded trivia.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
}
