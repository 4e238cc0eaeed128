// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for routegen.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level diagnostics.
	verbose bool

	// logger is the shared structured logger for all commands.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "routegen",
		Short: "Turn command files into generated route maps",
		Long: TitleStyle.Render("routegen") + SubtitleStyle.Render(" - file-convention route generation for CLI apps") + `

routegen scans a conventionally organized commands directory and emits
generated route-map modules that wire those commands into a hierarchical
routing table. File paths become command paths; no hand-maintained
registry required.

` + SubtitleStyle.Render("Conventions:") + `
  index.ts            default route at that directory level
  <name>.ts           route named <name>
  <name>.lazy.ts      deferred route, paired with <name>.handler.ts
  __route.ts          group configuration for its directory
  __root.ts           root configuration (enables application mode)

` + SubtitleStyle.Render("Examples:") + `
  routegen generate           Generate once for the current package
  routegen generate --check   Fail if generated output is stale
  routegen watch              Regenerate on every change
  routegen repo               Generate for every package in a workspace`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(repoCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
