package symbols_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/parser"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
)

type harness struct {
	bag     *diag.Bag
	names   *source.Interner
	typesIn *types.Interner
	res     *symbols.Resolver
}

func newHarness() *harness {
	names := source.NewInterner()
	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	bag := diag.NewBag(32)
	return &harness{bag: bag, names: names, typesIn: typesIn, res: symbols.New(bag, names, typesIn, b)}
}

func (h *harness) parse(t *testing.T, filename, src string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Add(filename, "", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	file := ast.NewFile(id, filename)
	lx := lexer.New(fs.File(id), lexer.Options{}, h.bag)
	if err := parser.ParseFile(lx, file, h.bag, h.names); err != nil {
		t.Fatalf("unexpected parse error in %s: %v (diagnostics: %v)", filename, err, h.bag.Items())
	}
	return file
}

func codesOf(items []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(items))
	for i, d := range items {
		out[i] = d.Code
	}
	return out
}

func TestResolveDeclaresTopLevelItems(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
pub fn add(a: i32, b: i32) i32 { return a + b; }
var total: i32;
struct Point { x: i32, y: i32 }
`)
	mod := h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(h.bag.Items()))
	}
	for _, name := range []string{"add", "total", "Point"} {
		id, ok := h.res.Lookup(mod.Scope, h.names.Intern(name), source.Span{})
		if !ok {
			t.Fatalf("expected %s to be declared", name)
		}
		if d := h.res.Decl(id); d.State != symbols.Ok {
			t.Fatalf("expected %s to resolve Ok, got state %v", name, d.State)
		}
	}
}

func TestResolveDuplicateDeclarationReported(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
fn f() {}
fn f() {}
`)
	h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", codesOf(h.bag.Items()))
	}
	if h.bag.Items()[0].Code != diag.CodeResolveDuplicate {
		t.Fatalf("expected CodeResolveDuplicate, got %v", h.bag.Items()[0].Code)
	}
}

func TestResolveFnSignatureBuildsType(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
fn add(a: i32, b: i32) i32 { return a + b; }
`)
	mod := h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(h.bag.Items()))
	}
	id, ok := h.res.Lookup(mod.Scope, h.names.Intern("add"), source.Span{})
	if !ok {
		t.Fatalf("expected 'add' to be declared")
	}
	decl := h.res.Decl(id)
	if decl.State != symbols.Ok {
		t.Fatalf("expected Ok, got %v", decl.State)
	}
	if decl.Type == types.Invalid {
		t.Fatalf("expected a resolved function type")
	}
	ty := h.typesIn.Get(decl.Type)
	if ty.Kind != types.KindFn {
		t.Fatalf("expected KindFn, got %v", ty.Kind)
	}
	if len(ty.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(ty.Params))
	}
}

func TestResolveMarksComptimeParamFunctionGeneric(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
fn repeated(comptime n: i32, x: i32) i32 { return x; }
fn add(a: i32, b: i32) i32 { return a + b; }
`)
	mod := h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(h.bag.Items()))
	}

	id, ok := h.res.Lookup(mod.Scope, h.names.Intern("repeated"), source.Span{})
	if !ok {
		t.Fatalf("expected 'repeated' to be declared")
	}
	if !h.res.Decl(id).Generic {
		t.Fatalf("expected a comptime-parameter function to be marked Generic")
	}

	addID, ok := h.res.Lookup(mod.Scope, h.names.Intern("add"), source.Span{})
	if !ok {
		t.Fatalf("expected 'add' to be declared")
	}
	if h.res.Decl(addID).Generic {
		t.Fatalf("expected an ordinary function to not be marked Generic")
	}
}

func TestResolveStructSelfContainmentDiagnosed(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
struct Node { value: i32, next: Node }
`)
	h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", codesOf(h.bag.Items()))
	}
	if h.bag.Items()[0].Code != diag.CodeTypeSelfContain {
		t.Fatalf("expected CodeTypeSelfContain, got %v", h.bag.Items()[0].Code)
	}
}

func TestResolveStructPointerToSelfIsFine(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
struct Node { value: i32, next: *Node }
`)
	h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(h.bag.Items()))
	}
}

func TestResolveMutualStructCycleDiagnosed(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
struct A { b: B }
struct B { a: A }
`)
	h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() == 0 {
		t.Fatalf("expected at least 1 diagnostic")
	}
	for _, d := range h.bag.Items() {
		if d.Code != diag.CodeTypeSelfContain {
			t.Fatalf("expected CodeTypeSelfContain, got %v", d.Code)
		}
	}
}

func TestResolveUndeclaredTypeReported(t *testing.T) {
	h := newHarness()
	file := h.parse(t, "main.th", `
fn f(a: Missing) {}
`)
	h.res.AddModule(h.names.Intern("main"), file)
	h.res.ResolveAll()

	if h.bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", codesOf(h.bag.Items()))
	}
	if h.bag.Items()[0].Code != diag.CodeResolveUndeclared {
		t.Fatalf("expected CodeResolveUndeclared, got %v", h.bag.Items()[0].Code)
	}
}

func TestResolveUseHoistsPublicName(t *testing.T) {
	h := newHarness()
	libFile := h.parse(t, "lib.th", `
pub fn helper() i32 { return 1; }
`)
	mainFile := h.parse(t, "main.th", `
use lib::helper;
fn f() i32 { return 0; }
`)
	h.res.AddModule(h.names.Intern("lib"), libFile)
	mainMod := h.res.AddModule(h.names.Intern("main"), mainFile)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codesOf(h.bag.Items()))
	}
	if _, ok := h.res.Lookup(mainMod.Scope, h.names.Intern("helper"), source.Span{}); !ok {
		t.Fatalf("expected 'helper' to be visible via use")
	}
}

func TestResolveUseOfPrivateNameReportedAtLookup(t *testing.T) {
	h := newHarness()
	libFile := h.parse(t, "lib.th", `
fn helper() i32 { return 1; }
`)
	mainFile := h.parse(t, "main.th", `
use lib::helper;
`)
	h.res.AddModule(h.names.Intern("lib"), libFile)
	mainMod := h.res.AddModule(h.names.Intern("main"), mainFile)
	h.res.ResolveAll()

	if h.bag.Len() != 0 {
		t.Fatalf("use-hoisting itself should not fail for a private name: %v", codesOf(h.bag.Items()))
	}
	if _, ok := h.res.Lookup(mainMod.Scope, h.names.Intern("helper"), source.Span{}); ok {
		t.Fatalf("expected private 'helper' lookup to fail")
	}
	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CodeResolvePrivate {
		t.Fatalf("expected CodeResolvePrivate after the lookup attempt, got %v", codesOf(h.bag.Items()))
	}
}
