// Package nodelink renders a bracket as a Graphviz node-link diagram.
//
// # Overview
//
// The chart view is the primary output; this package offers a second look at
// the same data. Every match becomes a node and every layout link becomes an
// arrow from a match to the one its winner advances into, ranked left to
// right by round.
//
//	dot := nodelink.ToDOT(rounds, l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Edges come from [layout.Layout.Links], so a bracket that fails layout
// cannot be drawn here either.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [layout.Layout.Links]: github.com/matzehuels/bracket/pkg/render/chart/layout.Layout
package nodelink
