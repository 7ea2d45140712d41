package main

import (
	"github.com/spf13/cobra"

	"github.com/thresh-lang/threshc/internal/backend/llvm"
)

// asmCmd emits the textual IR internal/backend/llvm.Backend renders
// rather than a real target's assembly: without a cgo LLVM binding there
// is no `llc` step to lower that IR to `.s`, so the closest honest
// analog to spec.md §6's `asm` verb this tree can produce is the
// intermediate form the stub backend already builds.
var asmCmd = &cobra.Command{
	Use:   "asm [flags] <file...>",
	Short: "Emit the backend's intermediate representation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		out := defaultOutput(output, args, ".ll")

		c, err := newCompilation(cmd, args)
		if err != nil {
			if c != nil {
				reportDiagnostics(cmd, c)
			}
			return err
		}
		b := llvm.New(outputModuleName(out))
		emitErr := c.Emit(b, out)
		if rErr := reportDiagnostics(cmd, c); rErr != nil {
			return rErr
		}
		return emitErr
	},
}

func init() {
	addBuildFlags(asmCmd)
}
