package layout

import (
	"math"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

// Position is the center of a match box in canvas units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Link connects a match to the match its winner advances into.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Layout is the result of [Compute].
type Layout struct {
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	ColumnWidth float64             `json:"column_width"`
	MatchGap    float64             `json:"match_gap"`
	MinGap      float64             `json:"min_gap"`
	TopOffset   float64             `json:"top_offset"`
	Positions   map[string]Position `json:"positions"`
	Rounds      [][]string          `json:"rounds"`
	Links       []Link              `json:"links"`
}

// CanvasHeight returns the drawing height including the header band.
func (l Layout) CanvasHeight() float64 { return l.TopOffset + l.Height }

// ColumnX returns the center x of round k.
func (l Layout) ColumnX(k int) float64 {
	return l.ColumnWidth*float64(k) + l.ColumnWidth/2
}

// Compute places every match of rounds.
//
// It returns an INVALID_INPUT error for empty input or bad options, and a
// MALFORMED_LINEAGE error when a match cannot be tied to its predecessors.
// rounds is not modified.
func Compute(rounds []bracket.Round, opts ...Option) (Layout, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return Layout{}, err
	}
	if len(rounds) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "no rounds to lay out")
	}
	if len(rounds[0].Matches) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "first round has no matches")
	}

	a, err := buildArena(rounds)
	if err != nil {
		return Layout{}, err
	}

	minGap := cfg.minGapFraction * cfg.matchGap
	a.place(cfg.topOffset+cfg.matchGap/2, cfg.matchGap, minGap)

	colW := cfg.width / float64(len(rounds))
	l := Layout{
		Width:       cfg.width,
		ColumnWidth: colW,
		MatchGap:    cfg.matchGap,
		MinGap:      minGap,
		TopOffset:   cfg.topOffset,
		Positions:   make(map[string]Position, len(a.nodes)),
		Rounds:      make([][]string, len(a.rounds)),
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for k, idxs := range a.rounds {
		x := l.ColumnX(k)
		ids := make([]string, len(idxs))
		for i, idx := range idxs {
			n := a.nodes[idx]
			ids[i] = n.id
			l.Positions[n.id] = Position{X: x, Y: n.y}
			minY = min(minY, n.y)
			maxY = max(maxY, n.y)
			if n.left != noChild {
				l.Links = append(l.Links,
					Link{From: a.nodes[n.left].id, To: n.id},
					Link{From: a.nodes[n.right].id, To: n.id})
			}
		}
		l.Rounds[k] = ids
	}
	l.Height = (maxY - minY) + cfg.matchGap + cfg.padding
	return l, nil
}

// place assigns y to every node. Leaves are stacked gap apart from base;
// later rounds take their predecessors' midpoint, pushed down to keep at
// least minGap from the previous match of the same round.
func (a *arena) place(base, gap, minGap float64) {
	for i, idx := range a.rounds[0] {
		a.nodes[idx].y = base + float64(i)*gap
	}
	for k := 1; k < len(a.rounds); k++ {
		prevY := math.Inf(-1)
		for _, idx := range a.rounds[k] {
			n := &a.nodes[idx]
			y := (a.nodes[n.left].y + a.nodes[n.right].y) / 2
			if minGap > 0 && y < prevY+minGap {
				y = prevY + minGap
			}
			n.y = y
			prevY = y
		}
	}
}
