package sema_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/ast"
	"github.com/thresh-lang/threshc/internal/diag"
	"github.com/thresh-lang/threshc/internal/hir"
	"github.com/thresh-lang/threshc/internal/lexer"
	"github.com/thresh-lang/threshc/internal/mir"
	"github.com/thresh-lang/threshc/internal/parser"
	"github.com/thresh-lang/threshc/internal/sema"
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

// check parses, resolves, lowers to hir, and type-checks src's single
// module in one step, returning the resulting mir.Module. Diagnostics
// raised while checking (as opposed to parsing/resolving, which fail the
// test outright) are left in h.bag for the caller to inspect.
func (h *harness) check(t *testing.T, src string) *mir.Module {
	t.Helper()
	mod, _ := h.checkC(t, src)
	return mod
}

// checkC is check, but also returns the Checker itself so a test can inspect
// internal/mono state (which instantiations a generic call site recorded)
// after checking completes.
func (h *harness) checkC(t *testing.T, src string) (*mir.Module, *sema.Checker) {
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

	hirMod := hir.LowerModule(res, h.names, h.bag)
	checker := sema.NewChecker(h.bag, h.names, typesIn, b, res, 0)
	return checker.CheckModule(hirMod), checker
}

func (h *harness) fn(t *testing.T, m *mir.Module, name string) *mir.Func {
	t.Helper()
	for i := range m.Funcs {
		if m.Funcs[i].Name == h.names.Intern(name) {
			return &m.Funcs[i]
		}
	}
	t.Fatalf("no checked function named %q", name)
	return nil
}

func TestCheckStraightLineArithmetic(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn add(a: i32, b: i32) i32 {
	const sum = a + b;
	return sum;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "add")
	if err := mir.Validate(m); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(fn.Blocks) == 0 {
		t.Fatalf("expected at least one block")
	}
	if fn.Blocks[0].Term.Kind != mir.TermReturn {
		t.Fatalf("expected entry block to return, got %v", fn.Blocks[0].Term.Kind)
	}
}

func TestCheckWrappingAddDoesNotTrap(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn wrapadd(a: u8, b: u8) u8 {
	return a +% b;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "wrapadd")
	found := false
	for _, b := range fn.Blocks {
		for _, in := range b.Instr {
			if in.Kind == mir.InstrBinOp && in.BinOp.Op == mir.OpAdd {
				found = true
				if in.BinOp.Trap != mir.TrapNone || !in.BinOp.Wraps {
					t.Fatalf("expected wrapping add to carry TrapNone/wraps=true, got trap=%v wraps=%v", in.BinOp.Trap, in.BinOp.Wraps)
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected a binop instruction in %q", "wrapadd")
	}
}

func TestCheckPlainAddTrapsOnOverflow(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn plainadd(a: u8, b: u8) u8 {
	return a + b;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "plainadd")
	found := false
	for _, b := range fn.Blocks {
		for _, in := range b.Instr {
			if in.Kind == mir.InstrBinOp && in.BinOp.Op == mir.OpAdd {
				found = true
				if in.BinOp.Trap != mir.TrapOverflow {
					t.Fatalf("expected plain add to trap on overflow, got %v", in.BinOp.Trap)
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected a binop instruction in %q", "plainadd")
	}
}

func TestCheckDivByZeroTrap(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn quotient(a: i32, b: i32) i32 {
	return a / b;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "quotient")
	for _, b := range fn.Blocks {
		for _, in := range b.Instr {
			if in.Kind == mir.InstrBinOp && in.BinOp.Op == mir.OpDiv {
				if in.BinOp.Trap != mir.TrapDivByZero {
					t.Fatalf("expected division to trap on divide-by-zero, got %v", in.BinOp.Trap)
				}
				return
			}
		}
	}
	t.Fatalf("expected a division instruction")
}

func TestCheckAssignmentMutatesExistingLocal(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn counter() i32 {
	var i: i32 = 0;
	i = i + 1;
	return i;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "counter")
	localCount := len(fn.Locals)
	assigns := 0
	for _, b := range fn.Blocks {
		for _, in := range b.Instr {
			if in.Kind == mir.InstrAssign {
				assigns++
			}
		}
	}
	if assigns < 2 {
		t.Fatalf("expected at least 2 assign instructions (let-init and plain assignment), got %d", assigns)
	}
	if localCount == 0 {
		t.Fatalf("expected at least one local to be allocated")
	}
}

func TestCheckDirectCallResolvesCallee(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn helper(x: i32) i32 {
	return x;
}
fn caller() i32 {
	return helper(1);
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "caller")
	found := false
	for _, b := range fn.Blocks {
		for _, in := range b.Instr {
			if in.Kind == mir.InstrCall {
				found = true
				if in.Call.Callee.Kind != mir.CalleeDirect {
					t.Fatalf("expected a direct callee, got %v", in.Call.Callee.Kind)
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected a call instruction in %q", "caller")
	}
}

func TestCheckGenericCallRecordsInstantiation(t *testing.T) {
	h := newHarness()
	m, checker := h.checkC(t, `
fn repeated(comptime n: i32, x: i32) i32 {
	return x;
}
fn caller_a() i32 {
	return repeated(2, 10);
}
fn caller_b() i32 {
	return repeated(2, 20);
}
fn caller_c() i32 {
	return repeated(3, 30);
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	_ = m

	rec := checker.Instantiations()
	if rec.Len() != 2 {
		t.Fatalf("expected 2 distinct instantiations (n=2 shared, n=3 separate), got %d", rec.Len())
	}
	for _, entry := range rec.All() {
		if entry.FnName != h.names.Intern("repeated") {
			t.Fatalf("expected every instantiation to name 'repeated', got %v", entry.FnName)
		}
	}
}

func TestCheckLiteralNarrowingReportsOverflow(t *testing.T) {
	h := newHarness()
	h.check(t, `
fn f() u8 {
	const x: u8 = 300;
	return x;
}
`)
	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.CodeOverflow {
			if d.Message != "integer value 300 cannot be implicitly casted to type 'u8'" {
				t.Fatalf("unexpected message: %q", d.Message)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an eval-overflow diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckLiteralNarrowingAllowsInRangeValue(t *testing.T) {
	h := newHarness()
	h.check(t, `
fn f() u8 {
	const x: u8 = 200;
	return x;
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
}

func TestCheckForcedComptimeCallFoldsToConstant(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn triple(x: i32) i32 {
	return x * 3;
}
fn caller() i32 {
	return comptime triple(4);
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "caller")
	term := fn.Blocks[fn.Entry].Term
	if term.Kind != mir.TermReturn || !term.HasValue {
		t.Fatalf("expected a return with a value")
	}
	if term.Value.Kind != mir.ValueConst || term.Value.Const.Int != "12" {
		t.Fatalf("expected the forced comptime call to fold to constant 12, got %+v", term.Value)
	}
}

func TestCheckInlineCallFoldsToConstant(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn square(x: i32) i32 {
	return x * x;
}
fn caller() i32 {
	return inline square(5);
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "caller")
	term := fn.Blocks[fn.Entry].Term
	if term.Value.Kind != mir.ValueConst || term.Value.Const.Int != "25" {
		t.Fatalf("expected the inline call to fold to constant 25, got %+v", term.Value)
	}
}

func TestCheckForcedComptimeOverflowReportsDiagnostic(t *testing.T) {
	h := newHarness()
	h.check(t, `
fn bump(x: u8) u8 {
	return x + 10;
}
fn caller() u8 {
	return comptime bump(250);
}
`)
	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.CodeOverflow {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an eval-overflow diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckForcedComptimeDivByZeroReportsDiagnostic(t *testing.T) {
	h := newHarness()
	h.check(t, `
fn half(x: i32, y: i32) i32 {
	return x / y;
}
fn caller() i32 {
	return comptime half(1, 0);
}
`)
	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.CodeDivByZero {
			if d.Message != "division by zero is undefined" {
				t.Fatalf("unexpected message: %q", d.Message)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an eval-division-by-zero diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckForcedComptimeQuotaExceededReportsDiagnostic(t *testing.T) {
	h := newHarness()
	h.check(t, `
fn spin(n: i32) i32 {
	var i: i32 = 0;
	while (i < n) {
		i = i + 1;
	}
	return i;
}
fn caller() i32 {
	return comptime spin(5000);
}
`)
	found := false
	for _, d := range h.bag.Items() {
		if d.Code == diag.CodeQuotaExceeded {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an eval-backward-branch-quota diagnostic, got %v", h.bag.Items())
	}
}

func TestCheckSwitchFoldsPlainIntProngs(t *testing.T) {
	h := newHarness()
	m := h.check(t, `
fn classify(x: i32) i32 {
	switch (x) {
		0 => { return 0; },
		1, 2 => { return 1; },
		else => { return -1; },
	}
}
`)
	if h.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", h.bag.Items())
	}
	fn := h.fn(t, m, "classify")
	foundSwitch := false
	for _, b := range fn.Blocks {
		if b.Term.Kind == mir.TermSwitch {
			foundSwitch = true
			if len(b.Term.Edges) != 2 {
				t.Fatalf("expected 2 non-default switch edges, got %d", len(b.Term.Edges))
			}
			if b.Term.Default == mir.NoBlockID {
				t.Fatalf("expected a default edge for the else prong")
			}
		}
	}
	if !foundSwitch {
		t.Fatalf("expected a switch terminator")
	}
}
