package grid

import (
	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

// Verify reports whether g is a perfect maze: a spanning tree over its cells.
//
// It checks, in order, that every link joins geometric neighbours, that the
// grid has exactly Size()-1 links, and that every cell is reachable from
// (0, 0). A connected graph on n vertices with n-1 edges has no cycles, so
// these checks together rule out loops. Empty grids are trivially perfect.
//
// The returned error carries [errs.ErrCodeInvalidMaze].
func Verify(g *Grid) error {
	n := g.Size()
	if n == 0 {
		return nil
	}

	for _, c := range g.Cells() {
		for _, l := range g.Links(c) {
			if !adjacent(c, l) {
				return errs.New(errs.ErrCodeInvalidMaze, "link %s-%s does not join neighbours", c, l)
			}
		}
	}

	if links := g.LinkCount(); links != n-1 {
		return errs.New(errs.ErrCodeInvalidMaze, "maze has %d links, a spanning tree over %d cells has %d", links, n, n-1)
	}

	if reached := reachable(g, Cell{}); reached != n {
		return errs.New(errs.ErrCodeInvalidMaze, "only %d of %d cells reachable from %s", reached, n, Cell{})
	}
	return nil
}

// reachable counts the cells reachable from start by breadth-first search.
func reachable(g *Grid, start Cell) int {
	seen := make([]bool, g.Size())
	seen[g.index(start)] = true
	queue := []int{g.index(start)}

	for qi := 0; qi < len(queue); qi++ {
		for _, v := range g.links[queue[qi]] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return len(queue)
}

func adjacent(a, b Cell) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy == 1
}
