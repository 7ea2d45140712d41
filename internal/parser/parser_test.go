package parser_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/parser"
	"github.com/thresh-lang/threshc/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Add("test.th", "", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(16)
	intern := source.NewInterner()
	file := ast.NewFile(id, "test.th")
	lx := lexer.New(fs.File(id), lexer.Options{}, bag)
	perr := parser.ParseFile(lx, file, bag, intern)
	return file, bag, perr
}

func mustParse(t *testing.T, src string) (*ast.File, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Add("test.th", "", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(16)
	intern := source.NewInterner()
	file := ast.NewFile(id, "test.th")
	lx := lexer.New(fs.File(id), lexer.Options{}, bag)
	if err := parser.ParseFile(lx, file, bag, intern); err != nil {
		t.Fatalf("unexpected parse error: %v (diagnostics: %v)", err, bag.Items())
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	return file, intern
}

func TestParseFnDecl(t *testing.T) {
	file, intern := mustParse(t, `
pub fn add(a: i32, b: i32) i32 {
	return a + b;
}
`)
	if len(file.Root) != 1 {
		t.Fatalf("got %d root items, want 1", len(file.Root))
	}
	item := file.Items.Get(file.Root[0])
	if item.Kind != ast.ItemFn {
		t.Fatalf("got kind %v, want ItemFn", item.Kind)
	}
	if intern.Text(item.Name) != "add" {
		t.Errorf("got name %q, want add", intern.Text(item.Name))
	}
	if item.Visibility != ast.Pub {
		t.Errorf("got visibility %v, want Pub", item.Visibility)
	}
	if len(item.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(item.Params))
	}
	if !item.Body.Valid() {
		t.Error("expected a function body")
	}
}

func TestParseExternFnDecl(t *testing.T) {
	file, _ := mustParse(t, `extern fn puts(s: *const u8) i32;`)
	item := file.Items.Get(file.Root[0])
	if !item.Extern {
		t.Error("expected Extern to be set")
	}
	if item.Body.Valid() {
		t.Error("extern fn prototype must not have a body")
	}
}

func TestParseStructDecl(t *testing.T) {
	file, intern := mustParse(t, `
struct Point {
	x: i32 = 0,
	y: i32 = 0,
}
`)
	item := file.Items.Get(file.Root[0])
	if item.Kind != ast.ItemContainer || item.ContainerKind != ast.ContainerStruct {
		t.Fatalf("got kind %v/%v, want struct container", item.Kind, item.ContainerKind)
	}
	if len(item.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(item.Fields))
	}
	if intern.Text(item.Fields[0].Name) != "x" {
		t.Errorf("got field 0 name %q, want x", intern.Text(item.Fields[0].Name))
	}
	if !item.Fields[0].Default.Valid() {
		t.Error("expected field x to carry a default value")
	}
}

func TestParseEnumWithExplicitTags(t *testing.T) {
	file, _ := mustParse(t, `
enum Color(u8) {
	Red = 1,
	Green = 2,
	Blue,
}
`)
	item := file.Items.Get(file.Root[0])
	if item.ContainerKind != ast.ContainerEnum {
		t.Fatalf("got %v, want enum", item.ContainerKind)
	}
	if !item.BackingType.Valid() {
		t.Error("expected an explicit backing type")
	}
	if len(item.Fields) != 3 {
		t.Fatalf("got %d variants, want 3", len(item.Fields))
	}
	if !item.Fields[0].Value.Valid() || item.Fields[2].Value.Valid() {
		t.Error("expected explicit tags on Red/Green only")
	}
}

func TestParseIfOptionalBindingThenPlainIf(t *testing.T) {
	// Exercises the speculative-then-reset path in parseOptionalBinding:
	// the first `if` commits to the binding form, the second never even
	// attempts it, and both must parse cleanly off the same token stream.
	file, _ := mustParse(t, `
fn f() void {
	if (const v ?= maybe()) {
		use_it(v);
	} else {
	}
	if (x > 0) {
	}
}
`)
	fn := file.Items.Get(file.Root[0])
	body := file.Exprs.Get(fn.Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(body.Stmts))
	}
	firstIf := file.Exprs.Get(file.Stmts.Get(body.Stmts[0]).Value)
	if !firstIf.Binding.Valid() {
		t.Error("expected the first if to carry a value binding")
	}
	secondIf := file.Exprs.Get(file.Stmts.Get(body.Stmts[1]).Value)
	if secondIf.Binding.Valid() {
		t.Error("expected the second if to be a plain condition")
	}
}

func TestParseOptionalBindingBacktrackDoesNotDropTokens(t *testing.T) {
	// `const` starts the binding guess but the next token isn't `?`, so
	// parseOptionalBinding must reset and let parseExpr see `const` again
	// rather than silently swallowing it.
	_, bag, err := parseSrc(t, `
fn f() void {
	if (const 1) {
	}
}
`)
	if err == nil && !bag.HasErrors() {
		t.Fatal("expected a parse error for a binding guess that can't fall back to a valid expression")
	}
}

func TestParseDeferVariants(t *testing.T) {
	file, _ := mustParse(t, `
fn f() void {
	defer cleanup();
	%defer rollback();
	?defer maybeClose();
}
`)
	fn := file.Items.Get(file.Root[0])
	body := file.Exprs.Get(fn.Body)
	want := []ast.DeferKind{ast.DeferUnconditional, ast.DeferError, ast.DeferMaybe}
	if len(body.Stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(body.Stmts), len(want))
	}
	for i, k := range want {
		s := file.Stmts.Get(body.Stmts[i])
		if s.Kind != ast.StmtDefer {
			t.Fatalf("statement %d: got kind %v, want StmtDefer", i, s.Kind)
		}
		if s.DeferKind != k {
			t.Errorf("statement %d: got defer kind %v, want %v", i, s.DeferKind, k)
		}
	}
}

func TestParseErrorUnionTypes(t *testing.T) {
	file, _ := mustParse(t, `
fn a() !i32 {
	return 0;
}
fn b() MyError!i32 {
	return 0;
}
`)
	aRet := file.TypeExprs.Get(file.Items.Get(file.Root[0]).RetType)
	if aRet.Kind != ast.TypeErrorUnion || aRet.Error.Valid() {
		t.Errorf("got %v, want inferred error union", aRet.Kind)
	}
	bRet := file.TypeExprs.Get(file.Items.Get(file.Root[1]).RetType)
	if bRet.Kind != ast.TypeErrorUnion || !bRet.Error.Valid() {
		t.Errorf("got %v, want named error union", bRet.Kind)
	}
}

func TestParseSwitchRangesAndElse(t *testing.T) {
	file, _ := mustParse(t, `
fn classify(n: i32) i32 {
	return switch (n) {
		0 => 0,
		1...9 => 1,
		else => -1,
	};
}
`)
	fn := file.Items.Get(file.Root[0])
	body := file.Exprs.Get(fn.Body)
	ret := file.Stmts.Get(body.Stmts[0])
	sw := file.Exprs.Get(ret.Value)
	if len(sw.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(sw.Cases))
	}
	if !sw.Cases[1].Values[0].RangeEnd.Valid() {
		t.Error("expected case 1 to carry a range")
	}
	if !sw.Cases[2].Else {
		t.Error("expected the last case to be the else arm")
	}
}

func TestParseUseAndTestItems(t *testing.T) {
	file, intern := mustParse(t, `
use std::io;

test "addition works" {
	assert(1 + 1 == 2);
}
`)
	if len(file.Root) != 2 {
		t.Fatalf("got %d root items, want 2", len(file.Root))
	}
	use := file.Items.Get(file.Root[0])
	if use.Kind != ast.ItemUse || len(use.UsePath) != 2 {
		t.Fatalf("got %v, want a two-segment use path", use)
	}
	if intern.Text(use.UsePath[0]) != "std" || intern.Text(use.UsePath[1]) != "io" {
		t.Errorf("got path %q::%q, want std::io", intern.Text(use.UsePath[0]), intern.Text(use.UsePath[1]))
	}
	test := file.Items.Get(file.Root[1])
	if test.Kind != ast.ItemTest || test.TestName != "addition works" {
		t.Fatalf("got %v, want a named test item", test)
	}
}
