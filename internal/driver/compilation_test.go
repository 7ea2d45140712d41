package driver_test

import (
	"testing"

	"github.com/thresh-lang/threshc/internal/backend"
	"github.com/thresh-lang/threshc/internal/driver"
)

// TestCompileHelloWorldEmitsOneCall drives spec.md §8 scenario 1 end to
// end: lex, parse, resolve, lower, check, and emit against an in-memory
// Backend. A real compiled-and-run binary would print "Hello, world!\n";
// here the equivalent observable outcome is that the emitted module calls
// the external print function exactly once with that exact string.
func TestCompileHelloWorldEmitsOneCall(t *testing.T) {
	c := driver.New(driver.Options{})
	err := c.AddModule("main", "main.th", []byte(`
extern fn print(s: []const u8) void;

fn main() void {
	print("Hello, world!\n");
}
`))
	if err != nil {
		t.Fatalf("unexpected AddModule error: %v (diagnostics: %v)", err, c.Bag.Items())
	}

	mem := backend.NewMemModule()
	if err := c.Emit(mem, "a.out"); err != nil {
		t.Fatalf("unexpected Emit error: %v (diagnostics: %v)", err, c.Bag.Items())
	}

	if len(mem.Calls) != 1 {
		t.Fatalf("expected exactly 1 call, got %d: %+v", len(mem.Calls), mem.Calls)
	}
	call := mem.Calls[0]
	if call.Callee != "print" || len(call.Args) != 1 || call.Args[0] != "Hello, world!\n" {
		t.Fatalf("unexpected call: %+v", call)
	}
}

// TestCompileDefersRunInReverseOrder drives spec.md §8 scenario 3: three
// defers declared in order 1,2,3 must run in reverse (3,2,1) after the two
// ordinary calls that precede the function's return, i.e. the full
// observable call sequence a real binary would print is
// "before\nafter\ndefer3\ndefer2\ndefer1\n".
func TestCompileDefersRunInReverseOrder(t *testing.T) {
	c := driver.New(driver.Options{})
	err := c.AddModule("main", "main.th", []byte(`
extern fn print(s: []const u8) void;

fn main() void {
	defer print("defer1\n");
	defer print("defer2\n");
	defer print("defer3\n");
	print("before\n");
	print("after\n");
	return;
}
`))
	if err != nil {
		t.Fatalf("unexpected AddModule error: %v (diagnostics: %v)", err, c.Bag.Items())
	}

	mem := backend.NewMemModule()
	if err := c.Emit(mem, "a.out"); err != nil {
		t.Fatalf("unexpected Emit error: %v (diagnostics: %v)", err, c.Bag.Items())
	}

	want := []string{"before\n", "after\n", "defer3\n", "defer2\n", "defer1\n"}
	if len(mem.Calls) != len(want) {
		t.Fatalf("expected %d calls, got %d: %+v", len(want), len(mem.Calls), mem.Calls)
	}
	for i, w := range want {
		if mem.Calls[i].Callee != "print" || len(mem.Calls[i].Args) != 1 || mem.Calls[i].Args[0] != w {
			t.Fatalf("call %d: expected print(%q), got %+v", i, w, mem.Calls[i])
		}
	}
}

// TestCompileComptimeOverflowReportsDiagnosticAndNeverEmits drives spec.md
// §8 scenario 2: a `const` narrowed to a too-small integer type must fail
// during Compile, so Emit never reaches a Backend at all.
func TestCompileComptimeOverflowReportsDiagnosticAndNeverEmits(t *testing.T) {
	c := driver.New(driver.Options{})
	if err := c.AddModule("main", "main.th", []byte(`
fn main() void {
	const x: u8 = 300;
}
`)); err != nil {
		t.Fatalf("unexpected AddModule error: %v", err)
	}

	mem := backend.NewMemModule()
	if err := c.Emit(mem, "a.out"); err == nil {
		t.Fatalf("expected Emit to fail for a comptime overflow")
	}
	if !c.Bag.HasErrors() {
		t.Fatalf("expected at least one diagnostic")
	}
	if len(mem.Calls) != 0 {
		t.Fatalf("expected no calls recorded on a failed compile, got %+v", mem.Calls)
	}
}
