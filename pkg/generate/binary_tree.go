package generate

import "github.com/matzehuels/labyrinth/pkg/grid"

// BinaryTree links every cell to a randomly chosen North or East neighbour,
// visiting cells in row-major order. The cell with neither neighbour (the
// top-right corner) is left alone. g is modified in place and returned.
func BinaryTree(g *grid.Grid, rng Source) *grid.Grid {
	candidates := make([]grid.Cell, 0, 2)
	for _, cell := range g.Cells() {
		candidates = candidates[:0]
		for _, d := range []grid.Direction{grid.North, grid.East} {
			if n, ok := g.Neighbour(cell, d); ok {
				candidates = append(candidates, n)
			}
		}
		if n, ok := sample(rng, candidates); ok {
			g.Link(cell, n)
		}
	}
	return g
}
