package main

import (
	"github.com/spf13/cobra"
)

// newBuildKindCmd factors the three build_* verbs: they differ only in
// default output extension and cobra Use string, since emitWithBackend's
// pipeline (parse every input, resolve, lower, check, emit) is identical
// regardless of whether the result is meant to be a final executable, a
// static/shared library, or a standalone object file — internal/backend's
// stub doesn't distinguish these at the Emit boundary any more than the
// in-memory test double does.
func newBuildKindCmd(use, short, defaultExt string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [flags] <file...>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			out := defaultOutput(output, args, defaultExt)
			return emitWithBackend(cmd, args, out)
		},
	}
	addBuildFlags(cmd)
	return cmd
}

// addBuildFlags wires spec.md §6's build-affecting options shared across
// every build_* and link_* subcommand. The whole flag surface, including
// the linker-placement flags (-isystem/-dirafter/-framework/
// --linker-script/-rpath/--each-lib-rpath/-rdynamic/
// -m{windows,console,unicode}/-m{macosx,ios}-version-min/--libc-*-dir/
// --zig-std-dir/--dynamic-linker), is accepted and parsed here so it
// shows in --help, but the build_* commands read only --output, and
// link_exe/link_lib return an error before reading any flag.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "output path")
	cmd.Flags().String("name", "", "output artifact name, overriding the input file stem")
	cmd.Flags().Bool("release", false, "optimize for release (disables safety-check traps this backend would otherwise emit)")
	cmd.Flags().Bool("static", false, "prefer static linking")
	cmd.Flags().Bool("strip", false, "strip debug info from the output")
	cmd.Flags().String("target-arch", "", "target CPU architecture")
	cmd.Flags().String("target-os", "", "target operating system")
	cmd.Flags().String("target-environ", "", "target environment (e.g. gnu, musl, msvc)")
	cmd.Flags().StringArray("library", nil, "link against a named library")
	cmd.Flags().StringArrayP("library-path", "L", nil, "add a library search directory")
	cmd.Flags().StringArray("isystem", nil, "add a system include directory")
	cmd.Flags().StringArray("dirafter", nil, "add a deferred include directory")
	cmd.Flags().StringArray("framework", nil, "link against a named macOS framework")
	cmd.Flags().String("linker-script", "", "use a custom linker script")
	cmd.Flags().StringArray("rpath", nil, "add an rpath entry")
	cmd.Flags().Bool("each-lib-rpath", false, "add an rpath entry for every linked library")
	cmd.Flags().Bool("rdynamic", false, "export all symbols for runtime introspection")
	cmd.Flags().Bool("mwindows", false, "target the Windows GUI subsystem")
	cmd.Flags().Bool("mconsole", false, "target the Windows console subsystem")
	cmd.Flags().Bool("municode", false, "use the Windows wide-character entry point")
	cmd.Flags().String("mmacosx-version-min", "", "minimum supported macOS version")
	cmd.Flags().String("mios-version-min", "", "minimum supported iOS version")
	cmd.Flags().String("libc-lib-dir", "", "libc shared library directory")
	cmd.Flags().String("libc-static-lib-dir", "", "libc static library directory")
	cmd.Flags().String("libc-include-dir", "", "libc header directory")
	cmd.Flags().String("zig-std-dir", "", "Zig standard library directory, for interop with Zig-built objects")
	cmd.Flags().String("dynamic-linker", "", "override the dynamic linker path embedded in the executable")
}

var buildExeCmd = newBuildKindCmd("build_exe", "Build a native executable", "")
var buildLibCmd = newBuildKindCmd("build_lib", "Build a static or shared library", ".lib.ll")
var buildObjCmd = newBuildKindCmd("build_obj", "Build a standalone object file", ".o.ll")

// buildCmd is spec.md §6's `build` verb: an alias for build_exe, the
// default artifact kind when the caller doesn't care which of the three
// it gets (mirroring the teacher's own `surge build` default-to-binary
// behavior).
var buildCmd = newBuildKindCmd("build", "Build the default artifact kind (an executable)", "")
