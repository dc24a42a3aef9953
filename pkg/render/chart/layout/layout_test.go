package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/lineage"
)

const eps = 1e-9

// pairUp builds a balanced bracket over the given leaf ids.
func pairUp(leaves ...string) []bracket.Round {
	var rounds []bracket.Round
	ids := leaves
	for {
		r := bracket.Round{Name: fmt.Sprintf("R%d", len(rounds))}
		for _, id := range ids {
			r.Matches = append(r.Matches, bracket.Match{ID: id})
		}
		rounds = append(rounds, r)
		if len(ids) < 2 {
			return rounds
		}
		next := make([]string, len(ids)/2)
		for i := range next {
			next[i] = lineage.Join(ids[2*i], ids[2*i+1])
		}
		ids = next
	}
}

func rounds(ids ...[]string) []bracket.Round {
	out := make([]bracket.Round, len(ids))
	for k, r := range ids {
		for _, id := range r {
			out[k].Matches = append(out[k].Matches, bracket.Match{ID: id})
		}
	}
	return out
}

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestComputeEightLeaves(t *testing.T) {
	in := pairUp("a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8")
	l, err := Compute(in, WithWidth(1000))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if len(l.Rounds) != 4 {
		t.Fatalf("len(Rounds) = %d, want 4", len(l.Rounds))
	}
	if len(l.Positions) != 15 {
		t.Errorf("len(Positions) = %d, want 15", len(l.Positions))
	}

	base := DefaultTopOffset + DefaultMatchGap/2
	for i := 1; i <= 8; i++ {
		got := l.Positions[fmt.Sprintf("a%d", i)].Y
		want := base + float64(i-1)*DefaultMatchGap
		if !approx(got, want) {
			t.Errorf("a%d.Y = %v, want %v", i, got, want)
		}
	}

	ab := l.Positions["a1|a2"].Y
	if want := (l.Positions["a1"].Y + l.Positions["a2"].Y) / 2; !approx(ab, want) {
		t.Errorf("a1|a2.Y = %v, want %v", ab, want)
	}

	final := "a1|a2|a3|a4|a5|a6|a7|a8"
	left, right, _ := lineage.Split(final)
	if left != "a1|a2|a3|a4" || right != "a5|a6|a7|a8" {
		t.Fatalf("Split(final) = %q, %q", left, right)
	}
	if want := (l.Positions[left].Y + l.Positions[right].Y) / 2; !approx(l.Positions[final].Y, want) {
		t.Errorf("final.Y = %v, want %v", l.Positions[final].Y, want)
	}

	if len(l.Links) != 14 {
		t.Errorf("len(Links) = %d, want 14", len(l.Links))
	}
	if l.Links[0] != (Link{From: "a1", To: "a1|a2"}) {
		t.Errorf("Links[0] = %+v", l.Links[0])
	}
}

func TestComputeColumnPlacement(t *testing.T) {
	in := pairUp("a", "b", "c", "d", "e", "f", "g", "h")
	l, err := Compute(in, WithWidth(1000))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if l.ColumnWidth != 250 {
		t.Errorf("ColumnWidth = %v, want 250", l.ColumnWidth)
	}
	for k, ids := range l.Rounds {
		want := 250*float64(k) + 125
		for _, id := range ids {
			if got := l.Positions[id].X; got != want {
				t.Errorf("%s.X = %v, want %v", id, got, want)
			}
		}
	}
}

func TestComputeSingleLeaf(t *testing.T) {
	l, err := Compute(rounds([]string{"only"}), WithPadding(10))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(l.Positions) != 1 {
		t.Fatalf("len(Positions) = %d, want 1", len(l.Positions))
	}
	if l.Height != DefaultMatchGap+10 {
		t.Errorf("Height = %v, want %v", l.Height, DefaultMatchGap+10)
	}
	if got := l.Positions["only"].X; got != DefaultWidth/2 {
		t.Errorf("X = %v, want %v", got, DefaultWidth/2)
	}
	if len(l.Links) != 0 {
		t.Errorf("Links = %v, want none", l.Links)
	}
}

func TestComputeHeight(t *testing.T) {
	l, err := Compute(pairUp("a", "b", "c", "d"), WithMatchGap(50), WithPadding(5))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	// Leaves span three gaps; midpoints never leave that range.
	if want := 3*50.0 + 50 + 5; !approx(l.Height, want) {
		t.Errorf("Height = %v, want %v", l.Height, want)
	}
	if want := DefaultTopOffset + l.Height; !approx(l.CanvasHeight(), want) {
		t.Errorf("CanvasHeight() = %v, want %v", l.CanvasHeight(), want)
	}
}

func TestComputeMinGapCorrection(t *testing.T) {
	// Crossed pairings put both semifinals on the same midpoint.
	in := rounds(
		[]string{"a", "b", "c", "d"},
		[]string{"a|d", "b|c"},
	)
	const gap = 40.0
	base := DefaultTopOffset + gap/2

	tests := []struct {
		name     string
		fraction float64
		want     [2]float64
	}{
		{"full gap", 1, [2]float64{base + 1.5*gap, base + 2.5*gap}},
		{"half gap", 0.5, [2]float64{base + 1.5*gap, base + 2*gap}},
		{"disabled", 0, [2]float64{base + 1.5*gap, base + 1.5*gap}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Compute(in, WithMatchGap(gap), WithMinGapFraction(tt.fraction))
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if got := l.Positions["a|d"].Y; !approx(got, tt.want[0]) {
				t.Errorf("a|d.Y = %v, want %v", got, tt.want[0])
			}
			if got := l.Positions["b|c"].Y; !approx(got, tt.want[1]) {
				t.Errorf("b|c.Y = %v, want %v", got, tt.want[1])
			}
		})
	}
}

func TestComputeNoOverlap(t *testing.T) {
	for n := 1; n <= 6; n++ {
		rng := rand.New(rand.NewPCG(uint64(n), 99))
		in, err := bracket.Generate(n, rng)
		if err != nil {
			t.Fatal(err)
		}
		// Shuffle leaf order so midpoints collide.
		leaves := in[0].Matches
		rng.Shuffle(len(leaves), func(i, j int) { leaves[i], leaves[j] = leaves[j], leaves[i] })

		l, err := Compute(in, WithMinGapFraction(0.8))
		if err != nil {
			t.Fatalf("n=%d: Compute() error: %v", n, err)
		}
		for k, ids := range l.Rounds {
			for i := 1; i < len(ids); i++ {
				d := l.Positions[ids[i]].Y - l.Positions[ids[i-1]].Y
				if d < l.MinGap-eps {
					t.Errorf("n=%d round %d: %s and %s are %v apart, min %v", n, k, ids[i-1], ids[i], d, l.MinGap)
				}
			}
		}
	}
}

func TestComputeMidpointOrCorrected(t *testing.T) {
	in := rounds(
		[]string{"a", "b", "c", "d", "e", "f", "g", "h"},
		[]string{"a|h", "b|c", "d|e", "f|g"},
		[]string{"a|h|b|c", "d|e|f|g"},
	)
	l, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for k := 1; k < len(l.Rounds); k++ {
		for i, id := range l.Rounds[k] {
			left, right, _ := lineage.Split(id)
			mid := (l.Positions[left].Y + l.Positions[right].Y) / 2
			got := l.Positions[id].Y
			if approx(got, mid) {
				continue
			}
			if i == 0 {
				t.Errorf("%s.Y = %v, want midpoint %v", id, got, mid)
				continue
			}
			prev := l.Positions[l.Rounds[k][i-1]].Y
			if !approx(got, prev+l.MinGap) {
				t.Errorf("%s.Y = %v, want %v or %v", id, got, mid, prev+l.MinGap)
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	in, _ := bracket.Generate(5, nil)
	a, err := Compute(in, WithWidth(1800), WithMatchGap(70))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		b, _ := Compute(in, WithWidth(1800), WithMatchGap(70))
		if !reflect.DeepEqual(a, b) {
			t.Fatal("Compute() is not deterministic")
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	in, _ := bracket.Generate(3, nil)
	snapshot := bracket.Clone(in)
	if _, err := Compute(in); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, snapshot) {
		t.Error("Compute() modified its input")
	}
}

func TestComputeMalformedLineage(t *testing.T) {
	tests := []struct {
		name string
		in   []bracket.Round
	}{
		{"odd token count", rounds([]string{"a1", "a2", "a3"}, []string{"a1|a2|a3"})},
		{"missing predecessor", rounds([]string{"a", "b"}, []string{"a|x"})},
		{"skips a round", rounds([]string{"a", "b", "c", "d"}, []string{"a|b", "c|d"}, []string{"a|b"})},
		{"duplicate id", rounds([]string{"a", "a"})},
		{"leaf with separator", rounds([]string{"a|b", "c"})},
		{"empty leaf id", rounds([]string{"", "b"})},
		{"same predecessor twice", rounds([]string{"a", "b"}, []string{"a|a"})},
		{"empty token", rounds([]string{"a", "b"}, []string{"a|"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.in)
			if err == nil {
				t.Fatal("Compute() expected error")
			}
			if !errors.Is(err, errors.ErrCodeMalformedLineage) {
				t.Errorf("Compute() code = %v, want %v (%v)", errors.GetCode(err), errors.ErrCodeMalformedLineage, err)
			}
		})
	}
}

func TestComputeInvalidInput(t *testing.T) {
	good := pairUp("a", "b")
	tests := []struct {
		name string
		in   []bracket.Round
		opts []Option
	}{
		{"no rounds", nil, nil},
		{"empty first round", []bracket.Round{{Name: "R1"}}, nil},
		{"zero width", good, []Option{WithWidth(0)}},
		{"negative gap", good, []Option{WithMatchGap(-1)}},
		{"fraction above one", good, []Option{WithMinGapFraction(1.5)}},
		{"negative fraction", good, []Option{WithMinGapFraction(-0.1)}},
		{"nan width", good, []Option{WithWidth(math.NaN())}},
		{"negative padding", good, []Option{WithPadding(-2)}},
		{"negative top offset", good, []Option{WithTopOffset(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.in, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Compute() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
