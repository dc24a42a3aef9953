package chart

import (
	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
)

// Defaults for box geometry.
const (
	DefaultBoxWidthFraction = 0.65
	DefaultBoxHeight        = 50.0
	DefaultHeaderHeight     = 30.0
	headerWidthFraction     = 0.8
	maxBoxGapFraction       = 0.9
)

// Scene is the complete visual tree of one bracket.
type Scene struct {
	Width, Height float64
	Boxes         []styles.Box
	Edges         []styles.Edge
	Headers       []styles.Header
}

// Option configures [Draw].
type Option func(*drawer)

type drawer struct {
	boxWidthFraction float64
	boxHeight        float64
	headerHeight     float64
}

// WithBoxWidthFraction sets box width as a fraction of the column width.
// It must lie in (0, 1) so connectors have room between columns.
func WithBoxWidthFraction(f float64) Option { return func(d *drawer) { d.boxWidthFraction = f } }

// WithBoxHeight sets the box height. It is capped at 90% of the match gap.
func WithBoxHeight(h float64) Option { return func(d *drawer) { d.boxHeight = h } }

// WithHeaderHeight sets the height of round header badges.
func WithHeaderHeight(h float64) Option { return func(d *drawer) { d.headerHeight = h } }

// Draw builds the scene for rounds placed by l.
//
// It fails with INTERNAL_ERROR when rounds and l disagree (a match the
// layout never placed, or a link to an unknown match), and with
// INVALID_INPUT for bad options. No partial scene is returned.
func Draw(rounds []bracket.Round, l layout.Layout, opts ...Option) (Scene, error) {
	d := drawer{
		boxWidthFraction: DefaultBoxWidthFraction,
		boxHeight:        DefaultBoxHeight,
		headerHeight:     DefaultHeaderHeight,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.boxWidthFraction <= 0 || d.boxWidthFraction >= 1 {
		return Scene{}, errors.New(errors.ErrCodeInvalidInput, "box width fraction must be within (0, 1), got %v", d.boxWidthFraction)
	}
	if d.boxHeight <= 0 || d.headerHeight < 0 {
		return Scene{}, errors.New(errors.ErrCodeInvalidInput, "box and header heights must be positive")
	}
	if len(rounds) != len(l.Rounds) {
		return Scene{}, errors.New(errors.ErrCodeInternal,
			"layout has %d rounds, bracket has %d", len(l.Rounds), len(rounds))
	}

	boxW := l.ColumnWidth * d.boxWidthFraction
	boxH := min(d.boxHeight, l.MatchGap*maxBoxGapFraction)

	s := Scene{
		Width:   l.Width,
		Height:  l.CanvasHeight(),
		Headers: make([]styles.Header, len(rounds)),
	}

	last := len(rounds) - 1
	for k, r := range rounds {
		label := r.Name
		if label == "" {
			label = bracket.RoundName(len(r.Matches), k)
		}
		s.Headers[k] = styles.Header{
			Round: k,
			Label: label,
			CX:    l.ColumnX(k),
			CY:    l.TopOffset / 2,
			W:     l.ColumnWidth * headerWidthFraction,
			H:     min(d.headerHeight, l.TopOffset),
		}

		for slot, m := range r.Matches {
			p, ok := l.Positions[m.ID]
			if !ok {
				return Scene{}, errors.New(errors.ErrCodeInternal, "match %q has no layout position", m.ID)
			}
			s.Boxes = append(s.Boxes, styles.Box{
				ID:    m.ID,
				Round: k,
				Slot:  slot,
				X:     p.X - boxW/2,
				Y:     p.Y - boxH/2,
				W:     boxW,
				H:     boxH,
				CX:    p.X,
				CY:    p.Y,
				Team1: side(m.Team1, m.Winner == bracket.WinnerTeam1),
				Team2: side(m.Team2, m.Winner == bracket.WinnerTeam2),
				Final: k == last,
			})
		}
	}

	s.Edges = make([]styles.Edge, 0, len(l.Links))
	for _, link := range l.Links {
		from, ok := l.Positions[link.From]
		if !ok {
			return Scene{}, errors.New(errors.ErrCodeInternal, "link from unplaced match %q", link.From)
		}
		to, ok := l.Positions[link.To]
		if !ok {
			return Scene{}, errors.New(errors.ErrCodeInternal, "link to unplaced match %q", link.To)
		}
		s.Edges = append(s.Edges, connector(link, from, to, boxW, l.ColumnWidth))
	}
	return s, nil
}

func side(t bracket.Team, won bool) styles.Side {
	return styles.Side{
		Name:        t.Name,
		Score:       t.Score,
		Logo:        t.Logo,
		Won:         won,
		Placeholder: t.IsPlaceholder(),
	}
}

// connector routes from the right edge of the predecessor box to the column
// boundary, along it to the successor's height, then into the successor's
// left edge.
func connector(link layout.Link, from, to layout.Position, boxW, colW float64) styles.Edge {
	boundary := to.X - colW/2
	return styles.Edge{
		FromID: link.From,
		ToID:   link.To,
		Points: []styles.Point{
			{X: from.X + boxW/2, Y: from.Y},
			{X: boundary, Y: from.Y},
			{X: boundary, Y: to.Y},
			{X: to.X - boxW/2, Y: to.Y},
		},
	}
}
