// Package render turns a carved [grid.Grid] into text and graphics.
//
// # Overview
//
// Renderers are read-only consumers of a maze: they only ask the grid
// whether a cell is linked in a given direction. Four outputs exist:
//
//   - [Text]: ASCII art with "+", "-", "|" and spaces, three characters per cell
//   - [SVG]: one stroke-only path covering every wall, scaled by a cell size
//   - [ToDOT]: the maze's spanning tree as a Graphviz graph
//   - [RenderTreeSVG] / [RenderTreePNG]: that graph laid out by Graphviz
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG (typically the output of [SVG]) using
// the external rsvg-convert tool from librsvg:
//
//	svg := render.SVG(g, render.WithCellSize(24))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Text Layout
//
// Each row is drawn as a wall line followed by a body line:
//
//	+---+---+---+
//	|       |   |
//	+   +---+---+
//
// "   " replaces "---" where a cell is linked North, and " " replaces "|"
// where it is linked West. The bottom border closes the drawing and there is
// no trailing newline.
package render
