// Package version holds threshc's own build identity: the semver string
// `version`/`targets` print, plus the git/build-date metadata a release
// build overrides via -ldflags.
package version

import "github.com/fatih/color"

const rawVersion = "0.1.0-dev"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is threshc's semantic version, colorized for a terminal the
	// same way the teacher's surge CLI renders its own.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is the commit threshc was built from, set at build time.
	GitCommit = ""

	// GitMessage is that commit's subject line, set at build time.
	GitMessage = ""

	// BuildDate is an ISO-8601 timestamp, set at build time.
	BuildDate = ""
)

// Plain is Version without its embedded ANSI color codes, for
// `--color=off` or a destination that isn't a terminal (a pipe, a log
// file, a script capturing `--version`).
func Plain() string { return rawVersion }
