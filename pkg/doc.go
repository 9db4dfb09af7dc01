// Package pkg provides the core libraries for levelgraph.
//
// # Overview
//
// Levelgraph merges ordered sequences such as "fetch -> build -> test" into a
// directed acyclic graph, assigns every node a level so that each child sits
// below all of its parents, and answers relation queries over the result.
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML / HCL / text sequence file
//	         ↓
//	    [io] package (decode and validate sequences)
//	         ↓
//	    [graph] package (merge, compute levels, query, sort)
//	         ↓
//	    [render/nodelink] package (DOT → SVG/PDF/PNG)
//	         ↓
//	    JSON / CSV / DOT / SVG / PDF / PNG output
//
// [pipeline] ties these stages together with caching via [cache].
//
// # Quick Start
//
//	g, _ := graph.FromSequences([][]string{
//	    {"fetch", "build", "test"},
//	    {"lint", "test"},
//	})
//	levels, _ := g.Levels()
//	// levels[0] = [fetch], levels[1] = [build lint], levels[2] = [test]
//
// # Supporting Packages
//
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for graph, pipeline and cache events
//   - [buildinfo]: version information set via ldflags
//
// [io]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/levelgraph/pkg/buildinfo
package pkg
