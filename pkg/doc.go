// Package pkg provides the core libraries for bracket, a single-elimination
// tournament visualizer.
//
// # Overview
//
// A bracket is a list of rounds, each a list of matches. Every match after
// the first round carries a composite id: the ids of the first-round matches
// it descends from, joined by "|". Splitting that id at its midpoint yields
// the two predecessor matches, so lineage needs no pointers. The pkg
// directory is organized into four main areas:
//
//  1. Domain ([bracket], [lineage]) - rounds, matches, seeding, winner
//     propagation and the composite id codec
//  2. Rendering ([render] and its subpackages) - layout, scenes, styles, sinks
//  3. Orchestration ([pipeline]) - layout → render with caching
//  4. Infrastructure ([store], [cache], [config], [server], [observability])
//
// # Architecture
//
// The typical data flow:
//
//	Tournament JSON / store
//	         ↓
//	    [lineage] package (split composite ids)
//	         ↓
//	    [render/chart/layout] package (match centers)
//	         ↓
//	    [render/chart] package (boxes, connectors, headers)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	rounds, _ := bracket.Generate(4, nil)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, rounds, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	    Title:   "Spring Cup",
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [bracket] - Tournament, Round, Match and Team types; seeding from a team
// list, random generation and winner propagation.
//
// [lineage] - Splits and joins composite match ids and rejects malformed ones.
//
// [render/chart/layout] - Places leaves on a uniform grid and every later
// match at the midpoint of its predecessors, pushing siblings apart to a
// minimum gap.
//
// [render/chart] - Turns a layout into a style-independent scene.
//
// [render/nodelink] - The same matches as a Graphviz tree.
//
// [pipeline] - Options, validation, cached layout and render stages, and
// View, which keeps the last good render of a changing bracket.
//
// [store] - Tournament persistence on the file system, MongoDB or memory.
//
// [server] - HTTP API for tournaments and rendered brackets.
//
// [bracket]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/bracket
// [lineage]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/lineage
// [render]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/render
// [render/chart]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/render/chart
// [render/chart/layout]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/render/chart/layout
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/bracket/pkg/observability
package pkg
