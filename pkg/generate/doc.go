// Package generate carves perfect mazes into a [grid.Grid].
//
// Two algorithms are provided, both linear in the number of cells and both
// producing a spanning tree by construction:
//
//   - [BinaryTree]: every cell links North or East, chosen at random. The top
//     row and the rightmost column always become straight corridors, which
//     gives the maze its diagonal bias.
//   - [Sidewinder]: each row is split into runs; every run is a horizontal
//     corridor with exactly one passage North. Only the top row is a single
//     unbroken corridor.
//
// # Randomness
//
// Algorithms draw from an injected [Source] rather than global state, so a
// fixed seed reproduces the same maze:
//
//	rng := generate.NewSource(42)
//	g := generate.Sidewinder(grid.New(20, 8), rng)
//
// # Selecting by Name
//
// [Lookup] resolves the names accepted by the CLI and HTTP API ("binary-tree",
// "sidewinder") to an [Algorithm]; [Run] builds, carves and returns a grid in
// one call.
package generate
