// Package chart builds the visual tree of a bracket from a computed layout.
//
// # Overview
//
// [Draw] is a pure function from rounds plus a [layout.Layout] to a [Scene]:
//
//   - one box per match, centered on its layout position, listing both
//     teams with scores and logos and marking the winner;
//   - one orthogonal edge per layout link, leaving the predecessor's right
//     edge, turning at the column boundary and entering the successor's
//     left edge;
//   - one header per round, centered on its column in the band above the
//     first match.
//
// Draw never re-derives match relationships from ids and never mutates its
// inputs. Every call returns a fresh Scene, so redrawing after the data
// changes is simply another call. Serialization lives in package sink.
//
// Because boxes are narrower than their column, the vertical leg of every
// edge runs through empty space between columns and never crosses a box.
//
// [layout.Layout]: github.com/matzehuels/bracket/pkg/render/chart/layout
package chart
