package grid_test

import (
	"fmt"

	"github.com/matzehuels/labyrinth/pkg/grid"
)

func ExampleGrid_Link() {
	g := grid.New(3, 3)
	g.Link(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0})
	g.Link(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 1})

	fmt.Println(g.Links(grid.Cell{X: 0, Y: 0}))
	fmt.Println(g.IsLinked(grid.Cell{X: 1, Y: 0}, grid.West))
	// Output:
	// [(1,0) (0,1)]
	// true
}

func ExampleVerify() {
	g := grid.New(2, 1)
	fmt.Println(grid.Verify(g))

	g.Link(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 0})
	fmt.Println(grid.Verify(g))
	// Output:
	// INVALID_MAZE: maze has 0 links, a spanning tree over 2 cells has 1
	// <nil>
}
