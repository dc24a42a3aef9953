// Package render turns bracket layouts into pictures.
//
// # Overview
//
//   - Bracket charts (in [chart] and its subpackages): match boxes in round
//     columns joined by orthogonal connectors, the primary visualization.
//   - Tree diagrams (in [nodelink]): the same matches as a Graphviz digraph,
//     useful for checking lineage on unusual brackets.
//   - Format conversion: [ToPDF] and [ToPNG] convert any SVG via the external
//     rsvg-convert tool (from librsvg).
//
// A bracket goes from rounds to PDF like this:
//
//	l, err := layout.Compute(rounds)
//	scene, err := chart.Draw(rounds, l)
//	svg := sink.RenderSVG(scene, sink.WithStyle(styles.Classic{}))
//	pdf, err := render.ToPDF(ctx, svg)
//
// Key chart subpackages:
//   - [chart/layout]: match position computation
//   - [chart/styles]: visual styles (simple, classic)
//   - [chart/sink]: output formats (SVG, JSON, PNG, PDF)
//
// [chart]: github.com/matzehuels/bracket/pkg/render/chart
// [chart/layout]: github.com/matzehuels/bracket/pkg/render/chart/layout
// [chart/styles]: github.com/matzehuels/bracket/pkg/render/chart/styles
// [chart/sink]: github.com/matzehuels/bracket/pkg/render/chart/sink
// [nodelink]: github.com/matzehuels/bracket/pkg/render/nodelink
package render
