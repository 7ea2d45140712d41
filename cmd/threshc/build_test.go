package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestBuildExeRunEEmitsOutputFile drives build_exe's RunE directly (not
// through main/os.Exit) against a minimal hello-world source file and
// checks it produced a readable output artifact.
func TestBuildExeRunEEmitsOutputFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.th")
	if err := os.WriteFile(src, []byte(`
extern fn print(s: []const u8) void;

fn main() void {
	print("Hello, world!\n");
}
`), 0o644); err != nil {
		t.Fatalf("unexpected WriteFile error: %v", err)
	}

	cmd := newBuildKindCmd("build_exe", "test", "")
	out := filepath.Join(dir, "a.out")
	cmd.Flags().Set("output", out)
	cmd.SetArgs([]string{src})

	if err := cmd.RunE(cmd, []string{src}); err != nil {
		t.Fatalf("unexpected RunE error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected an output artifact at %s: %v", out, err)
	}
}

// TestBuildExeRunEFailsOnComptimeOverflow checks a failing compile
// returns a non-nil error (cobra turns that into exit code 1) and writes
// no output artifact.
func TestBuildExeRunEFailsOnComptimeOverflow(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.th")
	if err := os.WriteFile(src, []byte(`
fn main() void {
	const x: u8 = 300;
}
`), 0o644); err != nil {
		t.Fatalf("unexpected WriteFile error: %v", err)
	}

	cmd := newBuildKindCmd("build_exe", "test", "")
	out := filepath.Join(dir, "a.out")
	cmd.Flags().Set("output", out)

	if err := cmd.RunE(cmd, []string{src}); err == nil {
		t.Fatalf("expected RunE to fail for a comptime overflow")
	}
	if _, err := os.Stat(out); err == nil {
		t.Fatalf("expected no output artifact to be written on failure")
	}
}
