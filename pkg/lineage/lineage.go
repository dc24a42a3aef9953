package lineage

import (
	"math/bits"
	"strings"

	"github.com/matzehuels/bracket/pkg/errors"
)

// Separator joins leaf tokens inside a composite match id.
const Separator = "|"

// Tokens returns the leaf tokens that make up id, in order.
// A leaf id yields a single token.
func Tokens(id string) []string {
	return strings.Split(id, Separator)
}

// IsLeaf reports whether id carries no lineage.
func IsLeaf(id string) bool {
	return !strings.Contains(id, Separator)
}

// Join builds the id of the match fed by left and right.
func Join(left, right string) string {
	return left + Separator + right
}

// Split resolves a composite id into the ids of its two predecessors.
//
// The token list is cut at its midpoint. The token count must be a power of
// two no smaller than two and every token must be non-empty; anything else
// is reported as a malformed lineage.
func Split(id string) (left, right string, err error) {
	tokens := Tokens(id)
	n := len(tokens)
	if n < 2 {
		return "", "", errors.New(errors.ErrCodeMalformedLineage, "match %q has no predecessors", id)
	}
	if !isPowerOfTwo(n) {
		return "", "", errors.New(errors.ErrCodeMalformedLineage,
			"match %q has %d tokens, want a power of two", id, n)
	}
	for i, tok := range tokens {
		if tok == "" {
			return "", "", errors.New(errors.ErrCodeMalformedLineage,
				"match %q has an empty token at position %d", id, i)
		}
	}
	mid := n / 2
	return strings.Join(tokens[:mid], Separator), strings.Join(tokens[mid:], Separator), nil
}

// Depth returns how many rounds separate id from the leaf round:
// 0 for a leaf, 1 for "a|b", 2 for "a|b|c|d". It returns -1 when the token
// count is not a power of two.
func Depth(id string) int {
	n := len(Tokens(id))
	if !isPowerOfTwo(n) {
		return -1
	}
	return bits.TrailingZeros(uint(n))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
