package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/py3ready/pkg/check"
	"github.com/matzehuels/py3ready/pkg/extract"
	"github.com/matzehuels/py3ready/pkg/pypi"
	"github.com/matzehuels/py3ready/pkg/report"
)

// errNoSources matches the flags registered by addSourceFlags; runCheck
// returns it when no dependency source was given and the interactive
// picker produced none either.
var errNoSources = errors.New("missing 'requirements', 'metadata', 'projects', or 'pyproject'")

// checkOpts holds the command-line flags shared by the commands that
// resolve blockers (check, graph, serve).
type checkOpts struct {
	requirements []string // requirements file paths
	metadata     []string // PKG-INFO/METADATA file paths
	projects     []string // project names given directly
	pyproject    []string // pyproject.toml paths
	overrides    string   // extra overrides JSON path
	indexURL     string   // package index API root
	workers      int      // concurrent seed traversals
}

// addSourceFlags registers the dependency source flags.
func addSourceFlags(cmd *cobra.Command, opts *checkOpts) {
	cmd.Flags().StringSliceVarP(&opts.requirements, "requirements", "r", nil, "requirements file(s) to check")
	cmd.Flags().StringSliceVarP(&opts.metadata, "metadata", "m", nil, "PKG-INFO or METADATA file(s) to check")
	cmd.Flags().StringSliceVarP(&opts.projects, "projects", "p", nil, "project name(s) to check")
	cmd.Flags().StringSliceVar(&opts.pyproject, "pyproject", nil, "pyproject.toml file(s) to check")
}

// addOracleFlags registers the flags that configure the index lookup.
func addOracleFlags(cmd *cobra.Command, opts *checkOpts) {
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "JSON file with extra manual overrides")
	cmd.Flags().StringVar(&opts.indexURL, "index-url", "", "package index API root (default: PyPI)")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent dependency traversals")
}

// newCheckCmd creates the check command, the default workflow: gather
// seed projects, resolve their blocker chains against the index, and
// print the report.
func newCheckCmd() *cobra.Command {
	opts := checkOpts{workers: check.DefaultWorkers}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check what blocks your projects from Python 3",
		Long: `Check what blocks your projects from Python 3.

Seed projects come from requirements files, installed-package metadata,
pyproject.toml, or names given directly; the sources combine. Without any
source flags, known dependency files in the working directory are offered
interactively.

Examples:
  py3ready check -r requirements.txt
  py3ready check -p django -p requests
  py3ready check --pyproject pyproject.toml -r dev-requirements.txt

The exit code is 0 when nothing blocks, 1 when blockers remain.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c.Context(), &opts)
		},
	}

	addSourceFlags(cmd, &opts)
	addOracleFlags(cmd, &opts)

	return cmd
}

func runCheck(ctx context.Context, opts *checkOpts) error {
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

	if len(chains) == 0 {
		printSuccess("%s", report.Render(nil)[0])
		return nil
	}
	printReport(chains)
	return ErrBlocked
}

// resolveChains runs the blocker resolution with a spinner, shared by
// check and graph.
func resolveChains(ctx context.Context, opts *checkOpts, seeds []string) ([]check.Chain, error) {
	logger := loggerFromContext(ctx)

	oracle, err := opts.oracle(logger)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d projects...", len(seeds)))
	spinner.Start()

	chains, err := check.Blockers(ctx, oracle, seeds, check.Options{
		Workers: opts.workers,
		Logger:  debugLogger(logger),
	})
	if err != nil {
		spinner.StopWithError("Check failed")
		return nil, err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Checked %d projects", len(seeds)))

	return chains, nil
}

// hasSources reports whether any dependency source flag was given.
func (o *checkOpts) hasSources() bool {
	return len(o.requirements) > 0 || len(o.metadata) > 0 ||
		len(o.projects) > 0 || len(o.pyproject) > 0
}

// seeds loads every configured source and merges the extracted project
// names into one seed set.
func (o *checkOpts) seeds(ctx context.Context) ([]string, error) {
	logger := loggerFromContext(ctx)
	var sets [][]string

	if len(o.projects) > 0 {
		named := make([]string, 0, len(o.projects))
		for _, p := range o.projects {
			named = append(named, extract.Normalize(p))
		}
		sets = append(sets, named)
	}
	for _, path := range o.requirements {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		names := extract.FromRequirements(string(data))
		logger.Debugf("%s: %d projects", path, len(names))
		sets = append(sets, names)
	}
	for _, path := range o.metadata {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		names := extract.FromMetadata(string(data))
		logger.Debugf("%s: %d projects", path, len(names))
		sets = append(sets, names)
	}
	for _, path := range o.pyproject {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		names, err := extract.FromPyProject(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debugf("%s: %d projects", path, len(names))
		sets = append(sets, names)
	}

	return extract.Union(sets...), nil
}

// oracle builds the index-backed compatibility oracle from the flags.
func (o *checkOpts) oracle(logger *log.Logger) (check.Oracle, error) {
	popts := pypi.Options{
		BaseURL: o.indexURL,
		Logger:  debugLogger(logger),
	}
	if o.overrides != "" {
		ov, err := pypi.LoadOverrides(o.overrides)
		if err != nil {
			return nil, err
		}
		popts.Overrides = ov
	}
	return pypi.NewClient(popts), nil
}

// printReport prints the summary sentences and one line per blocker
// chain, blocking project highlighted.
func printReport(chains []check.Chain) {
	lines := report.Render(chains)
	printWarning("%s", lines[0])
	printInfo("%s", lines[1])
	printNewline()
	for _, line := range lines[2:] {
		printChain(line)
	}
}

// printChain prints a single chain line with the leading blocker name
// emphasized. Project names never contain spaces, so the name is
// everything up to the first one.
func printChain(line string) {
	name, rest, found := strings.Cut(line, " ")
	if !found {
		fmt.Println("  " + StyleHighlight.Render(name))
		return
	}
	fmt.Println("  " + StyleHighlight.Render(name) + " " + StyleDim.Render(rest))
}
