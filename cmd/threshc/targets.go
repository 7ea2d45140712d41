package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// target is one (arch, os, environ) triple threshc accepts for
// --target-arch/--target-os/--target-environ, the way `zig targets`
// enumerates what Zig's bundled LLVM was built to support. Without a real
// LLVM behind internal/backend/llvm, this list documents the triples
// internal/backend.TargetData can plausibly answer layout queries for
// (pointer width, endianness) rather than what an actual codegen backend
// was compiled against.
type target struct {
	arch, os, environ string
	pointerBits       uint8
}

var supportedTargets = []target{
	{"x86_64", "linux", "gnu", 64},
	{"x86_64", "linux", "musl", 64},
	{"x86_64", "macos", "none", 64},
	{"aarch64", "linux", "gnu", 64},
	{"aarch64", "macos", "none", 64},
	{"aarch64", "windows", "msvc", 64},
	{"x86_64", "windows", "msvc", 64},
	{"wasm32", "wasi", "musl", 32},
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List supported --target-arch/--target-os/--target-environ triples",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ARCH\tOS\tENVIRON\tPOINTER-BITS")
		for _, t := range supportedTargets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", t.arch, t.os, t.environ, t.pointerBits)
		}
		return w.Flush()
	},
}
