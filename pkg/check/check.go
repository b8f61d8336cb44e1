// Package check finds what blocks a set of projects from running on
// Python 3.
//
// Given seed project names and an [Oracle] answering compatibility and
// direct-dependency questions, [Blockers] walks each seed's dependency
// graph breadth-first and returns, per blocked seed, a shortest chain of
// dependencies ending in the first project that is not yet compatible.
// Seeds whose entire reachable graph is compatible contribute nothing.
//
// Names are compared byte-wise; callers provide them already normalized
// (see the extract package).
package check

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers  = 8    // Default concurrent seed traversals
	DefaultMemoSize = 4096 // Default oracle memo capacity
)

// Result is an oracle's answer for a single project.
type Result struct {
	Compatible   bool     // ported to Python 3
	Dependencies []string // direct runtime dependencies, in registry order
}

// Oracle answers compatibility and dependency questions about projects.
// Implementations treat unknown projects as compatible with no
// dependencies rather than failing; a Query error aborts the whole run.
type Oracle interface {
	Query(ctx context.Context, name string) (Result, error)
}

// Chain is a dependency path from a seed to its blocking project. The
// first element is the seed, the last the first incompatible project
// found; for a seed that is itself incompatible they are the same
// element. Adjacent elements are direct-dependency edges.
type Chain []string

// Options configures blocker resolution.
type Options struct {
	Workers  int                  // concurrent seed traversals (default: 8)
	MemoSize int                  // oracle memo capacity (default: 4096)
	Logger   func(string, ...any) // progress/diagnostic callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.MemoSize <= 0 {
		opts.MemoSize = DefaultMemoSize
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Blockers resolves the blocking chain for every seed and returns the
// chains of the blocked ones, ordered by seed name. Seeds are
// deduplicated and traversed independently on a bounded worker pool;
// answers are shared through a per-run memo so projects reachable from
// several seeds are queried once. The first oracle failure cancels the
// remaining traversals and fails the run with no partial result.
func Blockers(ctx context.Context, oracle Oracle, seeds []string, opts Options) ([]Chain, error) {
	opts = opts.WithDefaults()

	sorted := slices.Compact(slices.Sorted(slices.Values(seeds)))
	memo, err := newMemo(oracle, opts.MemoSize)
	if err != nil {
		return nil, err
	}

	found := make([]Chain, len(sorted))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i, seed := range sorted {
		eg.Go(func() error {
			chain, err := trace(ctx, memo, seed)
			if err != nil {
				return err
			}
			if chain == nil {
				opts.Logger("%s: dependency chain is ready for Python 3", seed)
			}
			found[i] = chain
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	chains := make([]Chain, 0, len(found))
	for _, c := range found {
		if c != nil {
			chains = append(chains, c)
		}
	}
	return chains, nil
}

// trace walks seed's dependency graph breadth-first and returns a
// shortest chain to the first incompatible project, or nil when
// everything reachable is compatible. Ties follow oracle dependency
// order. The visited set both avoids requerying shared subtrees within
// one walk and keeps cyclic metadata from looping it.
func trace(ctx context.Context, oracle Oracle, seed string) (Chain, error) {
	visited := map[string]bool{seed: true}
	parent := make(map[string]string)
	queue := []string{seed}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := queue[0]
		queue = queue[1:]

		res, err := oracle.Query(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
		if !res.Compatible {
			return chainTo(parent, seed, name), nil
		}
		for _, dep := range res.Dependencies {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			parent[dep] = name
			queue = append(queue, dep)
		}
	}
	return nil, nil
}

// chainTo rebuilds the seed-to-blocker path from BFS parent links.
func chainTo(parent map[string]string, seed, blocker string) Chain {
	chain := Chain{blocker}
	for cur := blocker; cur != seed; {
		cur = parent[cur]
		chain = append(chain, cur)
	}
	slices.Reverse(chain)
	return chain
}
