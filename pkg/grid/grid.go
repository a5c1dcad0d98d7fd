package grid

import (
	"fmt"
	"slices"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

// Cell identifies one grid position. Cells compare equal by coordinates.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a rectangular grid graph whose links are the passages of a maze.
// Dimensions are fixed at construction; links only ever accumulate.
type Grid struct {
	width, height int
	links         [][]int // adjacency sets by cell index, in insertion order
}

// New builds a width × height grid with no links.
// A zero dimension yields a valid grid with no cells.
// Negative dimensions panic with [errs.ErrCodeInvalidDimensions].
func New(width, height int) *Grid {
	if width < 0 || height < 0 {
		panic(errs.New(errs.ErrCodeInvalidDimensions, "grid dimensions must not be negative (got %dx%d)", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		links:  make([][]int, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Size returns the number of cells.
func (g *Grid) Size() int { return g.width * g.height }

// Contains reports whether c lies within the grid.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Cells returns every cell in row-major order (y outer, x inner).
// The slice is freshly built on each call.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Size())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// Rows returns the cells grouped by row, top to bottom, each row left to right.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, 0, g.height)
	for y := 0; y < g.height; y++ {
		row := make([]Cell, 0, g.width)
		for x := 0; x < g.width; x++ {
			row = append(row, Cell{X: x, Y: y})
		}
		rows = append(rows, row)
	}
	return rows
}

// Neighbour returns the cell one step from c in direction d, if it is in bounds.
func (g *Grid) Neighbour(c Cell, d Direction) (Cell, bool) {
	g.mustContain(c)
	dx, dy := d.Offset()
	n := Cell{X: c.X + dx, Y: c.Y + dy}
	return n, g.Contains(n)
}

// Neighbours returns the in-bounds neighbours of c keyed by direction.
func (g *Grid) Neighbours(c Cell) map[Direction]Cell {
	g.mustContain(c)
	result := make(map[Direction]Cell, 4)
	for _, d := range Directions() {
		if n, ok := g.Neighbour(c, d); ok {
			result[d] = n
		}
	}
	return result
}

// Link records a passage between a and b in both directions.
// Geometric adjacency is the caller's responsibility. Linking a pair that
// is already linked has no effect.
func (g *Grid) Link(a, b Cell) {
	g.mustContain(a)
	g.mustContain(b)
	ai, bi := g.index(a), g.index(b)
	if slices.Contains(g.links[ai], bi) {
		return
	}
	g.links[ai] = append(g.links[ai], bi)
	if ai != bi {
		g.links[bi] = append(g.links[bi], ai)
	}
}

// Links returns the cells linked to c in the order they were linked.
func (g *Grid) Links(c Cell) []Cell {
	g.mustContain(c)
	idx := g.links[g.index(c)]
	result := make([]Cell, 0, len(idx))
	for _, i := range idx {
		result = append(result, g.cell(i))
	}
	return result
}

// IsLinked reports whether c has a passage towards d.
// It is false when c has no neighbour in that direction.
func (g *Grid) IsLinked(c Cell, d Direction) bool {
	n, ok := g.Neighbour(c, d)
	if !ok {
		return false
	}
	return slices.Contains(g.links[g.index(c)], g.index(n))
}

// LinkCount returns the number of distinct links (undirected pairs).
func (g *Grid) LinkCount() int {
	total := 0
	for i, adj := range g.links {
		for _, j := range adj {
			if j >= i {
				total++
			}
		}
	}
	return total
}

// Equal reports whether g and o have the same dimensions and link sets.
// Link order is ignored.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.links {
		if len(g.links[i]) != len(o.links[i]) {
			return false
		}
		for _, j := range g.links[i] {
			if !slices.Contains(o.links[i], j) {
				return false
			}
		}
	}
	return true
}

func (g *Grid) mustContain(c Cell) {
	if !g.Contains(c) {
		panic(errs.New(errs.ErrCodeOutOfBounds, "cell %s outside %dx%d grid", c, g.width, g.height))
	}
}

// index maps c to its row-major arena slot.
func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}

// cell converts an arena slot back to coordinates.
func (g *Grid) cell(i int) Cell {
	return Cell{X: i % g.width, Y: i / g.width}
}
