package generate_test

import (
	"fmt"

	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/grid"
)

func ExampleSidewinder() {
	g := generate.Sidewinder(grid.New(20, 8), generate.NewSource(42))

	fmt.Println("links:", g.LinkCount())
	fmt.Println("perfect:", grid.Verify(g) == nil)
	// Output:
	// links: 159
	// perfect: true
}

func ExampleRun() {
	g, err := generate.Run("binary-tree", 5, 5, 1)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(g.Width(), g.Height(), g.LinkCount())
	// Output:
	// 5 5 24
}
