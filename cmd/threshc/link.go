package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLinkCmd factors link_exe/link_lib. Neither is implemented: linking
// needs a native object-file linker (ld/lld/link.exe) consuming real
// relocatable objects, and internal/backend/llvm's stub emits textual
// pseudo-IR rather than an object internal/backend.TargetData's layout
// could describe to one. The command still parses every flag spec.md §6
// names (addBuildFlags), so a caller driving threshc through its full
// flag surface gets a clear runtime error rather than an unrecognized-flag
// parse failure.
func newLinkCmd(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [flags] <object...>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("%s: linking requires a native linker this build does not embed", use)
		},
	}
	addBuildFlags(cmd)
	return cmd
}

var linkExeCmd = newLinkCmd("link_exe", "Link object files into an executable")
var linkLibCmd = newLinkCmd("link_lib", "Link object files into a library")
