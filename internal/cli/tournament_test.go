package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

func TestTournamentLifecycle(t *testing.T) {
	c, out, dir := newTestCLI(t)

	run := func(args ...string) string {
		t.Helper()
		out.Reset()
		if err := execute(t, c, args...); err != nil {
			t.Fatalf("%s: %v", strings.Join(args, " "), err)
		}
		return out.String()
	}

	got := run("tournament", "create", "--name", "Spring Cup", "--teams", "A, B, C, D", "--description", "club event")
	if !strings.Contains(got, "Created Spring Cup") {
		t.Errorf("create output = %q", got)
	}

	if got := run("tournament", "list"); !strings.Contains(got, "Spring Cup") {
		t.Errorf("list output = %q", got)
	}
	if got := run("tournament", "list", "-q", "sprng"); !strings.Contains(got, "Spring Cup") {
		t.Errorf("fuzzy list output = %q", got)
	}

	if got := run("tournament", "winner", "spring", "0", "0", "team2"); !strings.Contains(got, "B wins match 0.0") {
		t.Errorf("winner output = %q", got)
	}
	stored := storedTournaments(t, dir)
	if len(stored) != 1 || stored[0].Rounds[1].Matches[0].Team1.Name != "B" {
		t.Fatalf("winner was not persisted: %+v", stored)
	}

	got = run("tournament", "show", "spring")
	for _, want := range []string{"Spring Cup", "club event", "0.1", "Final"} {
		if !strings.Contains(got, want) {
			t.Errorf("show output missing %q: %q", want, got)
		}
	}

	run("tournament", "export", stored[0].ID, "-o", "spring.json")
	data, err := os.ReadFile(filepath.Join(dir, "spring.json"))
	if err != nil || !strings.Contains(string(data), "Spring Cup") {
		t.Errorf("export = %q, %v", data, err)
	}

	if got := run("tournament", "delete", "spring"); !strings.Contains(got, "Deleted Spring Cup") {
		t.Errorf("delete output = %q", got)
	}
	if got := run("tournament", "list"); !strings.Contains(got, "No tournaments") {
		t.Errorf("list after delete = %q", got)
	}

	if got := run("tournament", "import", "spring.json", "--name", "Reimported"); !strings.Contains(got, "Imported Reimported") {
		t.Errorf("import output = %q", got)
	}
	if ts := storedTournaments(t, dir); len(ts) != 1 || ts[0].Name != "Reimported" {
		t.Errorf("store after import = %+v", ts)
	}
}

func TestTournamentErrors(t *testing.T) {
	c, _, _ := newTestCLI(t)
	if err := execute(t, c, "tournament", "create", "--name", "Cup", "--teams", "A, B"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown tournament", []string{"tournament", "show", "nothing-like-it"}, errors.ErrCodeNotFound},
		{"bad round", []string{"tournament", "winner", "cup", "x", "0", "team1"}, errors.ErrCodeInvalidInput},
		{"round out of range", []string{"tournament", "winner", "cup", "4", "0", "team1"}, errors.ErrCodeInvalidInput},
		{"bad winner", []string{"tournament", "winner", "cup", "0", "0", "team3"}, errors.ErrCodeInvalidInput},
		{"odd team count", []string{"tournament", "create", "--name", "Odd", "--teams", "A, B, C"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, c, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParseWinner(t *testing.T) {
	tests := []struct {
		input string
		want  bracket.Winner
	}{
		{"team1", bracket.WinnerTeam1},
		{"TEAM2", bracket.WinnerTeam2},
		{"2", bracket.WinnerTeam2},
		{"none", bracket.WinnerNone},
		{"0", bracket.WinnerNone},
	}
	for _, tt := range tests {
		got, err := parseWinner(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("parseWinner(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}
	if _, err := parseWinner("draw"); err == nil {
		t.Error("parseWinner(draw) expected error")
	}
}
