package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thresh-lang/threshc/internal/version"
)

const versionTagline = "compiles Thresh, one backward branch at a time"

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Tagline   string `json:"tagline"`
	GitCommit string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show threshc's build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		switch format {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		showHash := versionShowHash || versionShowFull
		showMessage := versionShowMessage || versionShowFull
		showDate := versionShowDate || versionShowFull

		if format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), showHash, showMessage, showDate)
		}
		renderVersionPretty(cmd.OutOrStdout(), showHash, showMessage, showDate)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include the git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "include the git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include the build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

func renderVersionPretty(out io.Writer, showHash, showMessage, showDate bool) {
	fmt.Fprintf(out, "threshc %s — %s\n", version.Version, versionTagline)
	if showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	}
	if showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(version.GitMessage))
	}
	if showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, showHash, showMessage, showDate bool) error {
	payload := versionPayload{Tool: "threshc", Version: version.Plain(), Tagline: versionTagline}
	if showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if showMessage {
		payload.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
