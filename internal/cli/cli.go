// Package cli implements the py3ready command-line interface.
//
// This package provides commands for checking which dependencies block a
// set of Python projects from running on Python 3, rendering the blocker
// forest as a graph, and serving the check over HTTP. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - check: Resolve blocking dependency chains and print the report
//   - graph: Render the blocker forest as DOT, SVG, or PNG
//   - serve: Expose the check as a JSON HTTP endpoint
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"context"
	"errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/py3ready/pkg/buildinfo"
)

// ErrBlocked reports that at least one checked project cannot move to
// Python 3 yet. The report has already been printed when it is returned;
// main maps it to a non-zero exit without an extra error line.
var ErrBlocked = errors.New("blocked from using Python 3")

// Execute runs the py3ready CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "py3ready",
		Short:         "py3ready finds what blocks your projects from Python 3",
		Long:          `py3ready walks the dependency graphs of your Python projects and reports the shortest chain to each dependency that has not been ported to Python 3 yet.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
