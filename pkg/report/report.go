// Package report turns blocker chains into the messages shown to users.
//
// Chains ending in the same blocking project are merged into a forest:
// each tree is rooted at a project with no blocking dependencies of its
// own, with paths running from the root toward the seeds it ultimately
// blocks. Shared suffixes collapse, so ten seeds stuck behind one
// unported library render as one tree instead of ten near-identical
// lines. The forest drives both the text report and the DOT rendering;
// nothing here prints, callers decide where the lines go.
package report

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/py3ready/pkg/check"
)

type node struct {
	name     string
	children map[string]*node
	terminal bool // a full chain ends at this node
}

func (n *node) child(name string) *node {
	c, ok := n.children[name]
	if !ok {
		c = &node{name: name, children: make(map[string]*node)}
		n.children[name] = c
	}
	return c
}

type root struct {
	node
	seeds map[string]bool // distinct seeds this tree blocks
}

// Forest holds blocker chains merged by their blocking project.
type Forest struct {
	roots map[string]*root
}

// Merge folds chains into a forest keyed by each chain's blocking
// project. Chains are inserted blocker-first so shared suffixes share
// tree nodes; terminal marks keep a chain that is a prefix of another
// visible in the output.
func Merge(chains []check.Chain) *Forest {
	f := &Forest{roots: make(map[string]*root)}
	for _, chain := range chains {
		if len(chain) == 0 {
			continue
		}
		blocker := chain[len(chain)-1]
		r, ok := f.roots[blocker]
		if !ok {
			r = &root{
				node:  node{name: blocker, children: make(map[string]*node)},
				seeds: make(map[string]bool),
			}
			f.roots[blocker] = r
		}
		r.seeds[chain[0]] = true

		cur := &r.node
		for i := len(chain) - 2; i >= 0; i-- {
			cur = cur.child(chain[i])
		}
		cur.terminal = true
	}
	return f
}

// Lines renders one line per merged chain. Trees are ordered by how many
// seeds they block, most first, ties broken by root name; paths within a
// tree come out in lexicographic order.
func (f *Forest) Lines() []string {
	var lines []string
	for _, r := range f.sortedRoots() {
		walk(&r.node, nil, &lines)
	}
	return lines
}

func (f *Forest) sortedRoots() []*root {
	roots := slices.Collect(maps.Values(f.roots))
	slices.SortFunc(roots, func(a, b *root) int {
		if d := len(b.seeds) - len(a.seeds); d != 0 {
			return d
		}
		return strings.Compare(a.name, b.name)
	})
	return roots
}

func walk(n *node, path []string, lines *[]string) {
	path = append(path, n.name)
	if n.terminal {
		*lines = append(*lines, formatChain(path))
	}
	for _, name := range slices.Sorted(maps.Keys(n.children)) {
		walk(n.children[name], path, lines)
	}
}

// formatChain renders a root-to-seed path, root first:
// "unported (which is blocking middle, which is blocking seed)".
func formatChain(path []string) string {
	if len(path) == 1 {
		return path[0]
	}
	return fmt.Sprintf("%s (which is blocking %s)",
		path[0], strings.Join(path[1:], ", which is blocking "))
}

// Render produces the complete report for a set of chains: the summary
// sentences followed by one line per merged chain. No blockers yields
// the single celebration line.
func Render(chains []check.Chain) []string {
	seeds := make(map[string]bool)
	for _, chain := range chains {
		if len(chain) > 0 {
			seeds[chain[0]] = true
		}
	}
	if len(seeds) == 0 {
		return []string{"You have 0 projects blocking you from using Python 3!"}
	}

	f := Merge(chains)
	s, r := len(seeds), len(f.roots)
	lines := []string{
		fmt.Sprintf("You need %d project%s to transition to Python 3.", s, pick(s, "", "s")),
		fmt.Sprintf("Of %s %d project%s, %d %s no direct dependencies blocking %s transition:",
			pick(s, "that", "those"), s, pick(s, "", "s"), r, pick(r, "has", "have"), pick(r, "its", "their")),
	}
	return append(lines, f.Lines()...)
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
