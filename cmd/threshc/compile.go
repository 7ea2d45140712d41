package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thresh-lang/threshc/internal/backend"
	"github.com/thresh-lang/threshc/internal/backend/llvm"
	"github.com/thresh-lang/threshc/internal/diagfmt"
	"github.com/thresh-lang/threshc/internal/driver"
	"github.com/thresh-lang/threshc/internal/mir"
)

// colorEnabled resolves the root --color flag (auto|on|off) against
// whether stderr is actually a terminal, the same decision the teacher's
// surge CLI makes with isTerminal.
func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func verboseObserver(cmd *cobra.Command) driver.PhaseObserver {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return nil
	}
	return func(ev driver.PhaseEvent) {
		if ev.Status != driver.PhaseEnd {
			return
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Name, ev.Elapsed.Round(time.Microsecond))
	}
}

// newCompilation builds a driver.Compilation from paths, wiring --verbose
// and --max-diagnostics from the root command's persistent flags.
func newCompilation(cmd *cobra.Command, paths []string) (*driver.Compilation, error) {
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	c := driver.New(driver.Options{
		MaxDiagnostics: maxDiag,
		Observer:       verboseObserver(cmd),
	})
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		moduleName := moduleNameForPath(p)
		if err := c.AddModule(moduleName, p, src); err != nil {
			return c, err
		}
	}
	return c, nil
}

// reportDiagnostics renders every diagnostic a Compilation accumulated to
// stderr (colorized per --color) and returns a non-nil error when any of
// them is an error-or-worse, matching spec.md §6's exit code 1 for a
// compile failure.
func reportDiagnostics(cmd *cobra.Command, c *driver.Compilation) error {
	c.Bag.SortBySpan()
	opts := diagfmt.PrettyOpts{Color: colorEnabled(cmd), ShowNotes: true}
	diagfmt.Pretty(os.Stderr, c.Bag, c.Files, opts)
	diagfmt.Summary(os.Stderr, c.Bag, opts)
	if c.Bag.HasErrors() {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

// compileToModule runs a Compilation through to a checked mir.Module,
// printing diagnostics and returning an error the command's RunE can
// propagate (cobra turns any RunE error into exit code 1) if compilation
// failed.
func compileToModule(cmd *cobra.Command, paths []string) (*driver.Compilation, *mir.Module, error) {
	c, err := newCompilation(cmd, paths)
	if err != nil {
		if c != nil {
			reportDiagnostics(cmd, c)
		}
		return c, nil, err
	}
	mod := c.Compile()
	if rErr := reportDiagnostics(cmd, c); rErr != nil {
		return c, nil, rErr
	}
	return c, mod, nil
}

// emitWithBackend compiles paths and, on success, emits through a fresh
// llvm.Backend (the only real Backend this tree has) to outPath.
func emitWithBackend(cmd *cobra.Command, paths []string, outPath string) error {
	c, err := newCompilation(cmd, paths)
	if err != nil {
		if c != nil {
			reportDiagnostics(cmd, c)
		}
		return err
	}
	b := llvm.New(outputModuleName(outPath))
	emitErr := c.Emit(b, outPath)
	if rErr := reportDiagnostics(cmd, c); rErr != nil {
		return rErr
	}
	return emitErr
}

var _ backend.Module = (*llvm.Backend)(nil) // llvm.Backend must keep satisfying backend.Module
