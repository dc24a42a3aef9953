package layout

import (
	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/lineage"
)

const noChild = -1

type node struct {
	id          string
	round, slot int
	left, right int
	y           float64
}

// arena holds every match as a node; rounds[k] lists node indices of round k
// in supplied order.
type arena struct {
	nodes  []node
	rounds [][]int
}

func buildArena(rounds []bracket.Round) (*arena, error) {
	total := 0
	for _, r := range rounds {
		total += len(r.Matches)
	}
	a := &arena{
		nodes:  make([]node, 0, total),
		rounds: make([][]int, len(rounds)),
	}

	var prev map[string]int
	for k, r := range rounds {
		cur := make(map[string]int, len(r.Matches))
		a.rounds[k] = make([]int, 0, len(r.Matches))

		for slot, m := range r.Matches {
			if _, dup := cur[m.ID]; dup {
				return nil, errors.New(errors.ErrCodeMalformedLineage,
					"round %d: duplicate match id %q", k, m.ID)
			}
			n := node{id: m.ID, round: k, slot: slot, left: noChild, right: noChild}

			if k == 0 {
				if err := errors.ValidateMatchToken(m.ID, lineage.Separator); err != nil {
					return nil, errors.New(errors.ErrCodeMalformedLineage, "round 0 match %d: %s", slot, errors.UserMessage(err))
				}
			} else {
				left, right, err := resolve(m.ID, prev, k)
				if err != nil {
					return nil, err
				}
				n.left, n.right = left, right
			}

			idx := len(a.nodes)
			a.nodes = append(a.nodes, n)
			a.rounds[k] = append(a.rounds[k], idx)
			cur[m.ID] = idx
		}
		prev = cur
	}
	return a, nil
}

// resolve maps a composite id to the node indices of its predecessors in
// the previous round.
func resolve(id string, prev map[string]int, round int) (int, int, error) {
	leftID, rightID, err := lineage.Split(id)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeMalformedLineage, "round %d: %s", round, errors.UserMessage(err))
	}
	l, ok := prev[leftID]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeMalformedLineage,
			"round %d match %q: predecessor %q not found in round %d", round, id, leftID, round-1)
	}
	r, ok := prev[rightID]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeMalformedLineage,
			"round %d match %q: predecessor %q not found in round %d", round, id, rightID, round-1)
	}
	if l == r {
		return 0, 0, errors.New(errors.ErrCodeMalformedLineage,
			"round %d match %q: both predecessors are %q", round, id, leftID)
	}
	return l, r, nil
}
