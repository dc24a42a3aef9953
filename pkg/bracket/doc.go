// Package bracket defines the single-elimination tournament data model.
//
// # Overview
//
// A [Tournament] is an ordered list of [Round] values. Round 0 is the leaf
// round; every later round holds half as many matches as the one before it,
// ending with the final. Each [Match] pairs two [Team] values and records a
// [Winner].
//
// Match ids carry the bracket structure: a later-round match is identified
// by joining its two predecessors' ids (see package lineage). [Seed] and
// [Generate] produce brackets that follow that convention.
//
// # Progression
//
// [SetWinner] and [SetScore] record results and copy the winning team into
// its slot in the following round, mirroring how a results sheet is filled
// in by hand. No rule beyond "the winner advances" is enforced: ties stay
// undecided and nothing stops a caller from editing a past round. Clearing
// a result takes the advanced team back out of every later round.
package bracket
