// Package sink serializes a bracket [chart.Scene] to output formats.
//
//   - [RenderSVG]: standalone SVG with hover emphasis, styled by a
//     [styles.Style]
//   - [RenderJSON]: the scene as plain data for external front-ends
//   - [RenderPNG], [RenderPDF]: SVG converted by rsvg-convert
//
// Sinks read the scene only; they never change positions.
//
// [chart.Scene]: github.com/matzehuels/bracket/pkg/render/chart.Scene
// [styles.Style]: github.com/matzehuels/bracket/pkg/render/chart/styles.Style
package sink
