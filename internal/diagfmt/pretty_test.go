package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/diagfmt"
	"github.com/thresh-lang/threshc/internal/source"
)

func TestPrettyFormatsLocationSeverityAndMessage(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.Add("main.th", "", []byte("const x: u8 = 300;\n"))
	if err != nil {
		t.Fatalf("unexpected Add error: %v", err)
	}

	bag := diag.NewBag(8)
	bag.Add(diag.Errorf(diag.CodeOverflow, source.Span{File: id, Start: 14, End: 17},
		"integer value 300 cannot be implicitly casted to type 'u8'"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	out := buf.String()
	if !strings.Contains(out, "main.th:1:") {
		t.Fatalf("expected output to name the file and line, got: %s", out)
	}
	if !strings.Contains(out, "error") || !strings.Contains(out, string(diag.CodeOverflow)) {
		t.Fatalf("expected output to carry the severity and code, got: %s", out)
	}
	if !strings.Contains(out, "cannot be implicitly casted") {
		t.Fatalf("expected output to carry the message, got: %s", out)
	}
}

func TestSummaryCountsErrorsAndWarnings(t *testing.T) {
	bag := diag.NewBag(8)
	bag.Add(diag.Errorf(diag.CodeOverflow, source.Span{}, "boom"))
	bag.Add(diag.New(diag.SevWarning, diag.CodeOverflow, source.Span{}, "careful"))

	var buf bytes.Buffer
	diagfmt.Summary(&buf, bag, diagfmt.PrettyOpts{})

	out := buf.String()
	if !strings.Contains(out, "1 error") || !strings.Contains(out, "1 warning") {
		t.Fatalf("expected a 1 error / 1 warning summary, got: %s", out)
	}
}

func TestPrettyRendersNotesOnlyWhenRequested(t *testing.T) {
	fs := source.NewFileSet()
	id, _ := fs.Add("main.th", "", []byte("x\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Errorf(diag.CodeOverflow, source.Span{File: id}, "bad").
		WithNote(source.Span{File: id}, "declared here"))

	var withoutNotes bytes.Buffer
	diagfmt.Pretty(&withoutNotes, bag, fs, diagfmt.PrettyOpts{ShowNotes: false})
	if strings.Contains(withoutNotes.String(), "declared here") {
		t.Fatalf("expected no note text when ShowNotes is false, got: %s", withoutNotes.String())
	}

	var withNotes bytes.Buffer
	diagfmt.Pretty(&withNotes, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(withNotes.String(), "declared here") {
		t.Fatalf("expected note text when ShowNotes is true, got: %s", withNotes.String())
	}
}
