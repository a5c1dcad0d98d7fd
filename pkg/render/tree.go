package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/labyrinth/pkg/grid"
)

// ToDOT converts the passages of g into an undirected Graphviz graph.
// Each cell becomes a node labelled "x,y" and each link one edge, so a
// perfect maze yields a tree rooted at the north-west corner.
func ToDOT(g *grid.Grid) string {
	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.4, fixedsize=true];\n")
	buf.WriteString("  ranksep=0.3;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	for _, c := range g.Cells() {
		fmt.Fprintf(&buf, "  %q;\n", nodeID(c))
	}

	buf.WriteString("\n")
	for _, c := range g.Cells() {
		// Only East and South, so every link is written once.
		for _, d := range []grid.Direction{grid.East, grid.South} {
			if !g.IsLinked(c, d) {
				continue
			}
			n, _ := g.Neighbour(c, d)
			fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(c), nodeID(n))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c grid.Cell) string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// RenderTreeSVG lays out a DOT graph with Graphviz and returns SVG bytes.
// Layout stops early when ctx is done.
func RenderTreeSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderTreePNG lays out a DOT graph with Graphviz and returns PNG bytes.
func RenderTreePNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
