package main

import (
	"path/filepath"
	"strings"
)

// moduleNameForPath derives a module identifier from a source path the way
// the language's own `use` paths name a file: its base name, extension
// stripped.
func moduleNameForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputModuleName derives the emitted module's internal name from the
// requested output path, falling back to "out" when that leaves an empty
// name (an empty path, or a bare extension such as ".ll").
func outputModuleName(outPath string) string {
	name := moduleNameForPath(outPath)
	if name == "" {
		return "out"
	}
	return name
}

// defaultOutput returns --output's value, or name derived from the first
// input path with ext replaced, when the flag was left empty.
func defaultOutput(output string, inputs []string, ext string) string {
	if output != "" {
		return output
	}
	if len(inputs) == 0 {
		return "a.out" + ext
	}
	return moduleNameForPath(inputs[0]) + ext
}
