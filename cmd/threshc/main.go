// Command threshc is the Thresh ahead-of-time compiler's CLI front end:
// one cobra subcommand per spec.md §6 verb, each driving an
// internal/driver.Compilation against internal/backend/llvm's textual
// stub (the only Backend this exercise has a real implementation for).
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thresh-lang/threshc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "threshc",
	Short: "Thresh language ahead-of-time compiler",
	Long:  "threshc compiles Thresh source to a native executable, library, or object file.",
}

func main() {
	rootCmd.Version = version.Plain()

	rootCmd.AddCommand(buildExeCmd)
	rootCmd.AddCommand(buildLibCmd)
	rootCmd.AddCommand(buildObjCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(linkExeCmd)
	rootCmd.AddCommand(linkLibCmd)
	rootCmd.AddCommand(asmCmd)
	rootCmd.AddCommand(parsehCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(targetsCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("verbose", false, "print per-phase timing as compilation proceeds")
	rootCmd.PersistentFlags().Int("max-diagnostics", 128, "maximum number of diagnostics to report before truncating")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
