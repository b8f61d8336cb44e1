// Package pkg provides the core libraries for py3ready blocker checking.
//
// # Overview
//
// py3ready answers one question: which dependencies keep a Python project
// from moving to Python 3? The pkg directory is organized by pipeline
// stage:
//
//  1. [extract] - Pull project names out of requirements files, package
//     metadata, and pyproject.toml
//  2. [check] - Walk dependency graphs breadth-first and find the
//     shortest chain to each blocking project
//  3. [pypi] - PyPI JSON API client answering compatibility and
//     dependency questions
//  4. [report] - Merge chains into a suffix-shared forest and render it
//     as text or Graphviz output
//  5. [httputil] - Retry for registry lookups and JSON response helpers
//  6. [buildinfo] - Build-time version information
//
// # Architecture
//
// The typical data flow through py3ready:
//
//	requirements.txt / PKG-INFO / pyproject.toml / project names
//	         ↓
//	    [extract] package (normalized seed names)
//	         ↓
//	    [check] package (blocker resolution, consulting [pypi])
//	         ↓
//	    [report] package (suffix-merged forest)
//	         ↓
//	    terminal report / DOT / SVG / PNG / HTTP JSON
//
// # Quick Start
//
// Check a requirements file against PyPI:
//
//	seeds := extract.FromRequirements(text)
//	oracle := pypi.NewClient(pypi.Options{})
//	chains, err := check.Blockers(ctx, oracle, seeds, check.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, line := range report.Render(chains) {
//	    fmt.Println(line)
//	}
//
// [extract]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/extract
// [check]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/check
// [pypi]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/pypi
// [report]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/report
// [httputil]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/py3ready/pkg/buildinfo
package pkg
