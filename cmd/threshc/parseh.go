package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// parsehCmd is spec.md §6's `parseh` verb: translate a C header into a
// Thresh declaration file. A real implementation needs a C preprocessor
// and parser (clang's, typically) this exercise has no binding for — it's
// an external collaborator the same way a real LLVM backend is, but
// unlike LLVM there's no textual-IR-shaped stand-in that's still useful,
// so this reports a clear, honest "not supported" error rather than
// emitting something that looks like translated output but isn't.
var parsehCmd = &cobra.Command{
	Use:   "parseh <header.h>",
	Short: "Translate a C header into Thresh declarations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("parseh: C header translation requires a C parser this build does not embed (header: %s)", args[0])
	},
}
