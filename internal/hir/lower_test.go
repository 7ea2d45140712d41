package hir_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/hir"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/parser"
	"github.com/thresh-lang/threshc/internal/source"
	"github.com/thresh-lang/threshc/internal/symbols"
	"github.com/thresh-lang/threshc/internal/types"
)

type harness struct {
	bag   *diag.Bag
	names *source.Interner
}

func newHarness() *harness {
	return &harness{bag: diag.NewBag(32), names: source.NewInterner()}
}

// lower parses src as a single module, resolves it, and lowers every
// function body to HIR in one step. Callers that need diagnostics out of
// resolution or lowering can inspect h.bag afterwards.
func (h *harness) lower(t *testing.T, src string) *hir.Module {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Add("main.th", "", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	file := ast.NewFile(id, "main.th")
	lx := lexer.New(fs.File(id), lexer.Options{}, h.bag)
	if err := parser.ParseFile(lx, file, h.bag, h.names); err != nil {
		t.Fatalf("unexpected parse error: %v (diagnostics: %v)", err, h.bag.Items())
	}

	typesIn := types.NewInterner()
	b := types.NewBuiltins(typesIn)
	res := symbols.New(h.bag, h.names, typesIn, b)
	res.AddModule(h.names.Intern("main"), file)
	res.ResolveAll()
	if h.bag.HasErrors() {
		t.Fatalf("unexpected resolve diagnostics: %v", h.bag.Items())
	}

	return hir.LowerModule(res, h.names, h.bag)
}

func (h *harness) fn(t *testing.T, m *hir.Module, name string) *hir.Func {
	t.Helper()
	for i := range m.Funcs {
		if m.Funcs[i].Name == h.names.Intern(name) {
			return &m.Funcs[i]
		}
	}
	t.Fatalf("no lowered function named %q", name)
	return nil
}

func dump(t *testing.T, m *hir.Module, names *source.Interner) string {
	t.Helper()
	var buf bytes.Buffer
	if err := hir.Dump(&buf, m, names); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	return buf.String()
}

func TestLowerStraightLineFunction(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn add(a: i32, b: i32) i32 {
	return a + b;
}
`)
	if len(m.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(m.Funcs))
	}
	fn := h.fn(t, m, "add")
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Blocks) != 1 {
		t.Fatalf("expected a single block for straight-line code, got %d", len(fn.Blocks))
	}
	if fn.Blocks[0].Term.Kind != hir.TermReturn {
		t.Fatalf("expected TermReturn, got %v", fn.Blocks[0].Term.Kind)
	}

	out := dump(t, m, h.names)
	if !strings.Contains(out, "fn add") {
		t.Errorf("expected dump to mention fn add, got:\n%s", out)
	}
}

func TestLowerImplicitReturnAtEndOfBody(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f() void {
	const x = 1;
}
`)
	fn := h.fn(t, m, "f")
	last := fn.Blocks[len(fn.Blocks)-1]
	if last.Term.Kind != hir.TermReturn {
		t.Fatalf("expected an implicit return terminator, got %v", last.Term.Kind)
	}
	if last.Term.Value.Valid() {
		t.Fatalf("expected the implicit return to carry no value")
	}
}

func TestLowerIfElseProducesThreeBlocks(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn classify(x: i32) i32 {
	if (x > 0) {
		return 1;
	} else {
		return 0;
	}
}
`)
	fn := h.fn(t, m, "classify")
	if len(fn.Blocks) < 3 {
		t.Fatalf("expected at least entry+then+else blocks, got %d", len(fn.Blocks))
	}
	entry := fn.Block(fn.Entry)
	if entry.Term.Kind != hir.TermBranch {
		t.Fatalf("expected entry to end in a branch, got %v", entry.Term.Kind)
	}
	then := fn.Block(entry.Term.Then)
	els := fn.Block(entry.Term.Else)
	if then.Term.Kind != hir.TermReturn || els.Term.Kind != hir.TermReturn {
		t.Fatalf("expected both arms to return directly")
	}
}

func TestLowerShortCircuitAndSplitsIntoNestedBranches(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f(a: bool, b: bool) i32 {
	if (a and b) {
		return 1;
	}
	return 0;
}
`)
	fn := h.fn(t, m, "f")
	entry := fn.Block(fn.Entry)
	if entry.Term.Kind != hir.TermBranch {
		t.Fatalf("expected entry to branch on the left operand, got %v", entry.Term.Kind)
	}
	// The right operand is only evaluated when the left is true, so the
	// then-edge of the first branch must itself be a second branch block
	// rather than falling straight into the if's body.
	rhs := fn.Block(entry.Term.Then)
	if rhs.Term.Kind != hir.TermBranch {
		t.Fatalf("expected short-circuit and to produce a nested branch, got %v", rhs.Term.Kind)
	}
}

func TestLowerWhileLoopStructure(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn sum(n: i32) i32 {
	var i: i32 = 0;
	while (i < n) {
		i = i + 1;
	}
	return i;
}
`)
	fn := h.fn(t, m, "sum")
	var header *hir.BasicBlock
	for i := range fn.Blocks {
		if fn.Blocks[i].Term.Kind == hir.TermBranch {
			header = &fn.Blocks[i]
			break
		}
	}
	if header == nil {
		t.Fatalf("expected a header block terminated by a branch")
	}
	body := fn.Block(header.Term.Then)
	if body.Term.Kind != hir.TermJump || body.Term.Target != header.ID {
		t.Fatalf("expected the loop body to jump back to its header")
	}
}

func TestLowerInlineWhileRecordsUnrollMarker(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f() void {
	inline while (true) {
		break;
	}
}
`)
	fn := h.fn(t, m, "f")
	if len(fn.InlineLoops) != 1 {
		t.Fatalf("expected 1 inline-loop marker, got %d", len(fn.InlineLoops))
	}
}

func TestLowerForLoopBindsElementAndIndex(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f(xs: []i32) i32 {
	var total: i32 = 0;
	for (xs) |x, i| {
		total = total + x;
	}
	return total;
}
`)
	fn := h.fn(t, m, "f")
	if fn.NumLocals < 4 {
		t.Fatalf("expected locals for total, xs element and index plus the param, got %d", fn.NumLocals)
	}
}

func TestLowerSwitchWithRangeAndElse(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn classify(n: i32) void {
	switch (n) {
		0 => {},
		1...9 => {},
		else => {},
	}
}
`)
	fn := h.fn(t, m, "classify")
	var sw *hir.BasicBlock
	for i := range fn.Blocks {
		if fn.Blocks[i].Term.Kind == hir.TermSwitch {
			sw = &fn.Blocks[i]
			break
		}
	}
	if sw == nil {
		t.Fatalf("expected a switch terminator")
	}
	if len(sw.Term.Edges) != 2 {
		t.Fatalf("expected 2 non-else edges, got %d", len(sw.Term.Edges))
	}
	if !sw.Term.Default.Valid() {
		t.Fatalf("expected a default target for the else arm")
	}
}

func TestLowerBreakOutsideLoopDiagnosed(t *testing.T) {
	h := newHarness()
	h.lower(t, `
fn f() void {
	break;
}
`)
	if h.bag.Len() != 1 || h.bag.Items()[0].Code != diag.CodeLoopControlMisuse {
		t.Fatalf("expected a single CodeLoopControlMisuse diagnostic, got %v", h.bag.Items())
	}
}

func TestLowerDeferRunsInReverseOrderOnNormalReturn(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f() void {
	defer a();
	defer b();
	return;
}
`)
	fn := h.fn(t, m, "f")
	var calls []ast.ExprID
	for _, blk := range fn.Blocks {
		for _, instr := range blk.Instr {
			if instr.Kind == hir.InstrDeferCall {
				calls = append(calls, instr.Expr)
			}
		}
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 deferred calls to run, got %d", len(calls))
	}
}

func TestLowerTryPropagatesErrorThroughDefers(t *testing.T) {
	h := newHarness()
	m := h.lower(t, `
fn f() !i32 {
	%defer onErr();
	const v = try mayFail();
	return v;
}
`)
	fn := h.fn(t, m, "f")
	var sawErrorExit bool
	for _, blk := range fn.Blocks {
		if blk.Term.Kind == hir.TermReturn && blk.Term.Value.Valid() {
			for _, instr := range blk.Instr {
				if instr.Kind == hir.InstrDeferCall {
					sawErrorExit = true
				}
			}
		}
	}
	if !sawErrorExit {
		t.Fatalf("expected the error-propagation exit to run %%defer before returning")
	}
}
