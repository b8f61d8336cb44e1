package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/py3ready/pkg/check"
	"github.com/matzehuels/py3ready/pkg/report"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// newGraphCmd creates the graph command, which renders the blocker
// forest instead of printing it. It takes the same source flags as
// check.
func newGraphCmd() *cobra.Command {
	opts := checkOpts{workers: check.DefaultWorkers}
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the blocker forest as a graph",
		Long: `Render the blocker forest as a graph.

Edges run from each blocking project toward the projects it blocks, so
the sources of the graph are what needs porting first.

Examples:
  py3ready graph -r requirements.txt                  # DOT to stdout
  py3ready graph -r requirements.txt -f svg -o out.svg
  py3ready graph -p django -f png -o blockers.png`,
		RunE: func(c *cobra.Command, args []string) error {
			return runGraph(c.Context(), &opts, output, format)
		},
	}

	addSourceFlags(cmd, &opts)
	addOracleFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", formatDOT, "output format: dot, svg, png")

	return cmd
}

func runGraph(ctx context.Context, opts *checkOpts, output, format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG:
	default:
		return fmt.Errorf("unknown format: %s (available: %s, %s, %s)", format, formatDOT, formatSVG, formatPNG)
	}

	if !opts.hasSources() {
		if err := pickSource(opts); err != nil {
			return err
		}
	}

	seeds, err := opts.seeds(ctx)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return errNoSources
	}

	chains, err := resolveChains(ctx, opts, seeds)
	if err != nil {
		return err
	}
	forest := report.Merge(chains)

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(report.ToDOT(forest))
	case formatSVG:
		data, err = report.RenderSVG(ctx, forest)
	case formatPNG:
		data, err = report.RenderPNG(ctx, forest)
	}
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
