package lexer_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Add("test.th", "", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(16)
	lx := lexer.New(fs.File(id), lexer.Options{}, bag)
	return lexer.All(lx), bag
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, bag := lexAll(t, "const x fn myFunc")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	want := []token.Kind{token.KwConst, token.Ident, token.KwFn, token.Ident, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexWrappingOperators(t *testing.T) {
	toks, bag := lexAll(t, "+% -% *% <<% +%= <<%=")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	want := []token.Kind{
		token.PlusPercent, token.MinusPercent, token.StarPercent, token.ShlPercent,
		token.PlusPercentEq, token.ShlPercentEq, token.EOF,
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexIntegerOverflowFlag(t *testing.T) {
	toks, _ := lexAll(t, "99999999999999999999999999")
	if !toks[0].Number.Overflow {
		t.Errorf("expected overflow flag to be set for oversized literal")
	}
}

func TestLexUnknownByteIsError(t *testing.T) {
	_, bag := lexAll(t, "`")
	if !bag.HasErrors() {
		t.Errorf("expected a lex error for an unknown byte")
	}
}

func TestLexDeferVariants(t *testing.T) {
	toks, bag := lexAll(t, "defer %defer ?defer")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	want := []token.Kind{token.KwDefer, token.PercentDefer, token.QuestionDefer, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}
