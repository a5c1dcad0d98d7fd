package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/labyrinth/pkg/grid"
)

// DefaultCellSize is the edge length of one cell in SVG user units.
const DefaultCellSize = 20.0

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellSize    float64
	stroke      string
	strokeWidth float64
	margin      float64
}

func WithCellSize(s float64) SVGOption    { return func(r *svgRenderer) { r.cellSize = s } }
func WithStroke(color string) SVGOption   { return func(r *svgRenderer) { r.stroke = color } }
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }

// WithMargin pads the drawing on every side so boundary strokes are not clipped.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		cellSize:    DefaultCellSize,
		stroke:      "black",
		strokeWidth: 2,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SVG renders the walls of g as a single stroke-only path.
//
// The maze occupies cellSize*width by cellSize*height. Every wall segment is
// emitted once: each cell contributes its North and West walls unless linked
// that way, and cells on the eastern and southern boundary also close the
// outline. Interior East and South walls are the neighbour's West and North.
func SVG(g *grid.Grid, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	width := r.cellSize*float64(g.Width()) + 2*r.margin
	height := r.cellSize*float64(g.Height()) + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))
	if r.margin > 0 {
		fmt.Fprintf(&buf, `  <g transform="translate(%s, %s)">`+"\n", num(r.margin), num(r.margin))
	}

	fmt.Fprintf(&buf, `  <path fill="none" stroke="%s" stroke-width="%s" stroke-linecap="square" d="`, r.stroke, num(r.strokeWidth))
	for i, s := range wallSegments(g, r.cellSize) {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "M%s %s L%s %s", num(s.x1), num(s.y1), num(s.x2), num(s.y2))
	}
	buf.WriteString(`"/>` + "\n")

	if r.margin > 0 {
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type segment struct {
	x1, y1, x2, y2 float64
}

func wallSegments(g *grid.Grid, size float64) []segment {
	var segs []segment
	for _, c := range g.Cells() {
		x1, y1 := float64(c.X)*size, float64(c.Y)*size
		x2, y2 := x1+size, y1+size

		if !g.IsLinked(c, grid.North) {
			segs = append(segs, segment{x1, y1, x2, y1})
		}
		if !g.IsLinked(c, grid.West) {
			segs = append(segs, segment{x1, y1, x1, y2})
		}
		if _, ok := g.Neighbour(c, grid.East); !ok {
			segs = append(segs, segment{x2, y1, x2, y2})
		}
		if _, ok := g.Neighbour(c, grid.South); !ok {
			segs = append(segs, segment{x1, y2, x2, y2})
		}
	}
	return segs
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
