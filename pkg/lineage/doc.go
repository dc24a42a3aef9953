// Package lineage encodes and decodes the parent relationships embedded in
// bracket match ids.
//
// # Overview
//
// A first-round match has an opaque leaf id such as "m1". Every later match
// is identified by the concatenation of its two predecessors' ids, left then
// right, joined by [Separator]:
//
//	round 0:  m1      m2      m3      m4
//	round 1:  m1|m2           m3|m4
//	round 2:  m1|m2|m3|m4
//
// Splitting a token sequence at its midpoint therefore recovers the two
// predecessor ids without any side table. A well-formed composite id always
// has a power-of-two token count of at least two.
//
// # Usage
//
//	left, right, err := lineage.Split("m1|m2|m3|m4")
//	// left = "m1|m2", right = "m3|m4"
//
//	id := lineage.Join("m1", "m2") // "m1|m2"
//
// [Split] never guesses: an odd or non-power-of-two token count, or an empty
// token, yields an error with code [errors.ErrCodeMalformedLineage].
//
// All functions are pure and safe for concurrent use.
//
// [errors.ErrCodeMalformedLineage]: github.com/matzehuels/bracket/pkg/errors
package lineage
