// Package grid provides the rectangular grid graph that backs every maze.
//
// # Overview
//
// A [Grid] is a width × height array of cells with explicit, symmetric
// adjacency links. A link is a passage between two cells; a maze is nothing
// more than the set of links recorded on a grid. Generation algorithms (see
// package generate) carve passages with [Grid.Link], and renderers read them
// back with [Grid.IsLinked].
//
// # Cells and Directions
//
// A [Cell] is a plain (x, y) value: x grows to the East, y grows to the
// South, and (0, 0) is the north-west corner. The four [Direction] values
// resolve to fixed coordinate offsets through one shared table, so
// [Grid.Neighbours] returns exactly the in-bounds entries: 2 for a corner,
// 3 for an edge cell, 4 for an interior cell and none in a 1x1 grid.
//
// # Storage
//
// Cells are addressed internally by index = y*width + x. Each index owns an
// ordered adjacency set: [Grid.Link] records both directions in one step and
// ignores pairs that are already linked, so [Grid.Links] never contains
// duplicates and returns neighbours in the order they were linked.
//
// # Contract Violations
//
// Passing a cell outside [0,width) × [0,height) to any cell-addressed method
// is a programming error. Such calls panic with an *errors.Error carrying
// [errors.ErrCodeOutOfBounds]; they never silently produce wrong output.
//
// # Perfect Mazes
//
// [Verify] checks that a grid is a spanning tree: every link joins
// geometric neighbours, there are exactly width*height-1 links, and every
// cell is reachable from (0, 0).
//
// # Concurrency
//
// A Grid is not safe for concurrent mutation. Independent grids share no
// state and may be generated in parallel.
package grid
