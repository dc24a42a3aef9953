// Package layout computes collision-free positions for bracket matches.
//
// # Overview
//
// [Compute] takes the ordered rounds of a single-elimination bracket and
// assigns every match an (x, y) center:
//
//   - Columns: the canvas width is split evenly between rounds, and round k
//     is centered at ColumnWidth*k + ColumnWidth/2.
//   - Leaves: first-round matches are stacked MatchGap apart in the order
//     supplied, starting half a gap below the header band.
//   - Later rounds: each match sits at the vertical midpoint of its two
//     predecessors, which are found by splitting its id (see package
//     lineage) and looking both halves up in the previous round.
//
// # Minimum Gap
//
// Midpoints alone can crowd a column when a bracket is unbalanced. After
// placing each later-round match, Compute compares it with the match placed
// just before it in the same round. If it sits closer than
// MinGapFraction*MatchGap, it is pushed down to exactly that distance. The
// pass runs once, top to bottom, so later matches in the round may shift
// away from their predecessors' midpoint; nothing is pulled back up.
//
// # Canvas
//
// The returned [Layout] reports Height as (maxY - minY) + MatchGap + Padding,
// the span of all match centers plus half a gap above and below. Drawing
// code places a header band of TopOffset units above that span, so the full
// canvas is TopOffset + Height tall.
//
// # Errors
//
// A match id that does not split into a power-of-two token list, or whose
// halves are not present in the previous round, aborts the whole
// computation with code MALFORMED_LINEAGE. No partial layout is returned and
// no match is ever given a default coordinate.
//
// # Internals
//
// Ids are resolved once at ingestion into an arena of nodes holding integer
// child indices. Positioning then walks the arena round by round without
// touching strings again.
//
// Compute is a pure function of its inputs and safe for concurrent use.
package layout
