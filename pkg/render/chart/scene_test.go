package chart

import (
	"reflect"
	"testing"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
)

func generated(t *testing.T, n int) ([]bracket.Round, layout.Layout) {
	t.Helper()
	rounds, err := bracket.Generate(n, nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Compute(rounds, layout.WithWidth(1200))
	if err != nil {
		t.Fatal(err)
	}
	return rounds, l
}

func TestDraw(t *testing.T) {
	rounds, l := generated(t, 3)
	s, err := Draw(rounds, l)
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	if len(s.Boxes) != 7 {
		t.Errorf("len(Boxes) = %d, want 7", len(s.Boxes))
	}
	if len(s.Edges) != 6 {
		t.Errorf("len(Edges) = %d, want 6", len(s.Edges))
	}
	if len(s.Headers) != 3 {
		t.Errorf("len(Headers) = %d, want 3", len(s.Headers))
	}
	if s.Width != 1200 || s.Height != l.CanvasHeight() {
		t.Errorf("canvas = %vx%v, want 1200x%v", s.Width, s.Height, l.CanvasHeight())
	}

	wantW := l.ColumnWidth * DefaultBoxWidthFraction
	for _, b := range s.Boxes {
		p := l.Positions[b.ID]
		if b.CX != p.X || b.CY != p.Y {
			t.Errorf("box %s centered at (%v, %v), layout says (%v, %v)", b.ID, b.CX, b.CY, p.X, p.Y)
		}
		if b.W != wantW || b.H != DefaultBoxHeight {
			t.Errorf("box %s is %vx%v, want %vx%v", b.ID, b.W, b.H, wantW, DefaultBoxHeight)
		}
		if b.Team1.Won == b.Team2.Won {
			t.Errorf("box %s: exactly one side should be marked as winner", b.ID)
		}
		if b.Final != (b.Round == 2) {
			t.Errorf("box %s: Final = %v in round %d", b.ID, b.Final, b.Round)
		}
	}
}

func TestDrawEdgesStayBetweenColumns(t *testing.T) {
	rounds, l := generated(t, 4)
	s, err := Draw(rounds, l)
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}

	for _, e := range s.Edges {
		if len(e.Points) != 4 {
			t.Fatalf("edge %s->%s has %d points, want 4", e.FromID, e.ToID, len(e.Points))
		}
		from, to := l.Positions[e.FromID], l.Positions[e.ToID]
		start, corner1, corner2, end := e.Points[0], e.Points[1], e.Points[2], e.Points[3]

		if start.Y != from.Y || end.Y != to.Y {
			t.Errorf("edge %s->%s endpoints at wrong heights", e.FromID, e.ToID)
		}
		if corner1.X != corner2.X || corner1.Y != start.Y || corner2.Y != end.Y {
			t.Errorf("edge %s->%s is not orthogonal: %+v", e.FromID, e.ToID, e.Points)
		}
		if !(start.X < corner1.X && corner1.X < end.X) {
			t.Errorf("edge %s->%s vertical leg at %v not between %v and %v", e.FromID, e.ToID, corner1.X, start.X, end.X)
		}
		if corner1.X != to.X-l.ColumnWidth/2 {
			t.Errorf("edge %s->%s turns at %v, want column boundary %v", e.FromID, e.ToID, corner1.X, to.X-l.ColumnWidth/2)
		}
	}
}

func TestDrawHeaders(t *testing.T) {
	rounds, l := generated(t, 2)
	rounds[0].Name = ""
	s, err := Draw(rounds, l)
	if err != nil {
		t.Fatalf("Draw() error: %v", err)
	}
	if s.Headers[0].Label != "Semifinals" {
		t.Errorf("fallback label = %q, want Semifinals", s.Headers[0].Label)
	}
	for k, h := range s.Headers {
		if h.CX != l.ColumnX(k) {
			t.Errorf("header %d at x=%v, want %v", k, h.CX, l.ColumnX(k))
		}
		if h.CY != l.TopOffset/2 {
			t.Errorf("header %d at y=%v, want %v", k, h.CY, l.TopOffset/2)
		}
	}
}

func TestDrawBoxHeightCappedByGap(t *testing.T) {
	rounds, _ := bracket.Generate(2, nil)
	l, err := layout.Compute(rounds, layout.WithMatchGap(30))
	if err != nil {
		t.Fatal(err)
	}
	s, err := Draw(rounds, l)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Boxes[0].H; got != 27 {
		t.Errorf("box height = %v, want 27", got)
	}
}

func TestDrawMismatch(t *testing.T) {
	rounds, l := generated(t, 2)

	t.Run("round count", func(t *testing.T) {
		_, err := Draw(rounds[:1], l)
		if !errors.Is(err, errors.ErrCodeInternal) {
			t.Errorf("Draw() error = %v, want INTERNAL_ERROR", err)
		}
	})

	t.Run("unplaced match", func(t *testing.T) {
		changed := bracket.Clone(rounds)
		changed[0].Matches[0].ID = "ghost"
		_, err := Draw(changed, l)
		if !errors.Is(err, errors.ErrCodeInternal) {
			t.Errorf("Draw() error = %v, want INTERNAL_ERROR", err)
		}
	})
}

func TestDrawInvalidOptions(t *testing.T) {
	rounds, l := generated(t, 1)
	for _, opt := range []Option{WithBoxWidthFraction(1), WithBoxWidthFraction(0), WithBoxHeight(0)} {
		if _, err := Draw(rounds, l, opt); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Draw() error = %v, want INVALID_INPUT", err)
		}
	}
}

func TestDrawPure(t *testing.T) {
	rounds, l := generated(t, 3)
	snapshot := bracket.Clone(rounds)
	a, _ := Draw(rounds, l)
	b, _ := Draw(rounds, l)
	if !reflect.DeepEqual(a, b) {
		t.Error("Draw() is not deterministic")
	}
	if !reflect.DeepEqual(rounds, snapshot) {
		t.Error("Draw() modified its input")
	}
}
