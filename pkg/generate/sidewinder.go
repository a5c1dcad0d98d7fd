package generate

import "github.com/matzehuels/labyrinth/pkg/grid"

// Sidewinder carves each row left to right while accumulating a run of cells.
// A run is closed out at the eastern boundary, or with probability 1/2 when
// the row is not the top row; closing out links one random run member North
// and starts a new run. Otherwise the current cell is linked East.
// g is modified in place and returned.
func Sidewinder(g *grid.Grid, rng Source) *grid.Grid {
	for _, row := range g.Rows() {
		run := make([]grid.Cell, 0, len(row))
		for _, cell := range row {
			run = append(run, cell)

			east, hasEast := g.Neighbour(cell, grid.East)
			_, hasNorth := g.Neighbour(cell, grid.North)

			if !hasEast || (hasNorth && coin(rng)) {
				if member, ok := sample(rng, run); ok {
					if north, ok := g.Neighbour(member, grid.North); ok {
						g.Link(member, north)
					}
				}
				run = run[:0]
				continue
			}
			g.Link(cell, east)
		}
	}
	return g
}
