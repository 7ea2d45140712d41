// Package diagfmt renders a diag.Bag for a terminal: one line per
// diagnostic (path:line:col: severity code: message), optionally
// colorized by severity, followed by any attached notes indented beneath
// it. Grounded on the teacher's internal/diagfmt (its PrettyOpts shape;
// its own Pretty was an unimplemented stub, so this is a from-scratch
// rendering rather than an adaptation of working teacher code).
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/source"
)

// PrettyOpts configures Pretty's rendering. Trimmed from the teacher's
// fuller PrettyOpts (path-mode variants, preview/fix rendering) to the two
// knobs cmd/threshc's --color flag and diagnostic volume actually need;
// JSON/SARIF output (the teacher's json.go/sarif.go) has no spec.md §6
// flag asking for it, so it isn't built here.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	locColor     = color.New(color.Faint)
)

// Pretty writes one formatted line per diagnostic in bag to w, resolving
// each Diagnostic's Primary span back to a file path and line/column
// through fs. Call bag.SortBySpan first for deterministic, source-ordered
// output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	loc := locationText(d.Primary, fs)
	sevText := d.Severity.String()
	if opts.Color {
		loc = locColor.Sprint(loc)
		sevText = severityColor(d.Severity).Sprint(sevText)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sevText, string(d.Code), d.Message)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		noteLoc := locationText(n.Span, fs)
		if opts.Color {
			noteLoc = locColor.Sprint(noteLoc)
		}
		text := fmt.Sprintf("    note: %s", n.Msg)
		if opts.Color {
			text = noteColor.Sprint(text)
		}
		fmt.Fprintf(w, "%s (%s)\n", text, noteLoc)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError, diag.SevFatal:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return noteColor
	}
}

func locationText(span source.Span, fs *source.FileSet) string {
	if fs == nil || span.File == source.NoFile {
		return "<builtin>"
	}
	file := fs.File(span.File)
	pos := fs.Position(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, pos.Line, pos.Column)
}

// Summary renders a one-line error/warning count, the way a CLI's final
// status line ("3 errors, 1 warning") reads after a failed compile.
func Summary(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError, diag.SevFatal:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return
	}
	text := fmt.Sprintf("%d error(s), %d warning(s)\n", errs, warns)
	if opts.Color && errs > 0 {
		text = errorColor.Sprint(text)
	} else if opts.Color {
		text = warningColor.Sprint(text)
	}
	fmt.Fprint(w, text)
}
