package report

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders the forest as a Graphviz digraph. Edges run from each
// blocking project toward the seeds it blocks, so the roots of the
// forest are the sources of the graph. Roots are tinted to stand out.
func ToDOT(f *Forest) string {
	var b strings.Builder
	b.WriteString("digraph blockers {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#ffffff\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\"];\n")

	for _, r := range f.sortedRoots() {
		fmt.Fprintf(&b, "  %q [fillcolor=\"#f4cccc\"];\n", r.name)
	}
	for _, r := range f.sortedRoots() {
		writeEdges(&b, &r.node)
	}

	b.WriteString("}\n")
	return b.String()
}

func writeEdges(b *strings.Builder, n *node) {
	for _, name := range slices.Sorted(maps.Keys(n.children)) {
		child := n.children[name]
		fmt.Fprintf(b, "  %q -> %q;\n", n.name, child.name)
		writeEdges(b, child)
	}
}

// RenderSVG lays out the forest with Graphviz and returns the SVG bytes.
func RenderSVG(ctx context.Context, f *Forest) ([]byte, error) {
	return render(ctx, []byte(ToDOT(f)), graphviz.SVG)
}

// RenderPNG lays out the forest with Graphviz and returns the PNG bytes.
func RenderPNG(ctx context.Context, f *Forest) ([]byte, error) {
	return render(ctx, []byte(ToDOT(f)), graphviz.PNG)
}

func render(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
