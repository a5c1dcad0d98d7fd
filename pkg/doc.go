// Package pkg provides the libraries behind the labyrinth maze generator.
//
// # Overview
//
// Labyrinth carves perfect mazes (spanning trees of a rectangular grid
// graph) and renders them. The pkg directory is organized into three areas:
//
//  1. Domain: [grid], [generate], [render]
//  2. Orchestration: [pipeline], [config]
//  3. Infrastructure: [cache], [server], [observability], [errors], [buildinfo]
//
// # Architecture
//
//	algorithm + width × height + seed
//	         ↓
//	    [generate] (Binary Tree, Sidewinder)
//	         ↓
//	    [grid] (linked cells, verified as a spanning tree)
//	         ↓
//	    [render] (txt, svg, png, pdf, dot, tree-svg, tree-png)
//	         ↓
//	    [cache] (file, redis, mongo)
//
// # Quick Start
//
//	g, _ := generate.Run(generate.NameSidewinder, 20, 8, 42)
//	fmt.Println(render.Text(g))
//
// Through the pipeline, with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Algorithm: "binary-tree",
//	    Width:     20,
//	    Height:    8,
//	    Seed:      42,
//	    Formats:   []string{"txt", "svg"},
//	})
//	os.WriteFile("maze.svg", result.Artifacts["svg"], 0o644)
//
// # Testing
//
//	go test ./pkg/...
//	LABYRINTH_TEST_REDIS_URL=redis://localhost:6379/0 go test ./pkg/cache
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/grid
// [generate]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/generate
// [render]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/labyrinth/pkg/buildinfo
package pkg
