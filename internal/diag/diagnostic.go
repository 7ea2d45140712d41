package diag

import (
	"fmt"

	"github.com/thresh-lang/threshc/internal/source"
)

// Note is a secondary span attached to a Diagnostic, e.g. pointing at the
// earlier declaration in a "duplicate symbol" error.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one lex/parse/resolve/type/eval error, warning, or note.
// Diagnostics never carry pointers into the AST or IR arenas: they are
// self-contained so a Bag can outlive the analysis pass that produced it.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns d with an additional secondary span, leaving d unmodified.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Span: span, Msg: msg})
	return d
}

func New(sev Severity, code Code, primary source.Span, message string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: message, Primary: primary}
}

func Errorf(code Code, primary source.Span, format string, args ...any) Diagnostic {
	return New(SevError, code, primary, fmt.Sprintf(format, args...))
}

func Notef(primary source.Span, format string, args ...any) Diagnostic {
	return New(SevNote, "", primary, fmt.Sprintf(format, args...))
}
