package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bracket/pkg/errors"
	bracketio "github.com/matzehuels/bracket/pkg/io"
)

func TestParseTeams(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"A, B, C, D", []string{"A", "B", "C", "D"}},
		{`Lions, "Bears, Inc", Wolves`, []string{"Lions", "Bears, Inc", "Wolves"}},
		{"“Smith, J”, Doe", []string{"Smith, J", "Doe"}},
		{"A,, B, ", []string{"A", "B"}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := parseTeams(tt.input)
		if err != nil {
			t.Errorf("parseTeams(%q) error: %v", tt.input, err)
			continue
		}
		if strings.Join(got, "/") != strings.Join(tt.want, "/") {
			t.Errorf("parseTeams(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseTeamsUnterminatedQuote(t *testing.T) {
	if _, err := parseTeams(`A, "B, C`); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("parseTeams() error = %v, want INVALID_INPUT", err)
	}
}

func TestBuildRounds(t *testing.T) {
	t.Run("random", func(t *testing.T) {
		rounds, err := buildRounds(generateOpts{rounds: 3, seed: 9})
		if err != nil {
			t.Fatalf("buildRounds() error: %v", err)
		}
		if len(rounds) != 3 || len(rounds[0].Matches) != 4 {
			t.Errorf("shape = %d rounds, %d leaves", len(rounds), len(rounds[0].Matches))
		}
	})

	t.Run("teams", func(t *testing.T) {
		rounds, err := buildRounds(generateOpts{teams: "A, B, C, D"})
		if err != nil {
			t.Fatalf("buildRounds() error: %v", err)
		}
		if len(rounds) != 2 || rounds[0].Matches[1].Team1.Name != "C" {
			t.Errorf("unexpected seeding: %+v", rounds[0].Matches)
		}
	})

	t.Run("odd team count", func(t *testing.T) {
		if _, err := buildRounds(generateOpts{teams: "A, B, C"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("buildRounds() error = %v, want INVALID_INPUT", err)
		}
	})
}

func TestGenerateCommand(t *testing.T) {
	c, out, dir := newTestCLI(t)

	if err := execute(t, c, "generate", "--teams", "A, B", "--name", "Duel", "-o", "duel.json"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tour, err := bracketio.ImportJSON(filepath.Join(dir, "duel.json"))
	if err != nil {
		t.Fatal(err)
	}
	if tour.Name != "Duel" || len(tour.Rounds) != 1 {
		t.Errorf("generated %q with %d rounds", tour.Name, len(tour.Rounds))
	}
	if !strings.Contains(out.String(), "duel.json") {
		t.Errorf("output does not name the file: %q", out.String())
	}

	out.Reset()
	if err := execute(t, c, "generate", "--rounds", "1"); err != nil {
		t.Fatalf("generate to stdout: %v", err)
	}
	if !strings.Contains(out.String(), `"rounds"`) {
		t.Errorf("stdout is not tournament JSON: %q", out.String())
	}
}

func TestGenerateSave(t *testing.T) {
	c, out, dir := newTestCLI(t)

	if err := execute(t, c, "generate", "--rounds", "2", "--save", "--name", "Saved"); err != nil {
		t.Fatalf("generate --save: %v", err)
	}
	if ts := storedTournaments(t, dir); len(ts) != 1 || ts[0].Name != "Saved" {
		t.Errorf("store holds %+v, want one tournament named Saved", ts)
	}
	if !strings.Contains(out.String(), "Saved") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "Saved.json")); err == nil {
		t.Error("--save should not write a JSON file to the working directory")
	}
}
