package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

const roundsArray = `[
  {"name": "Semifinals", "matches": [
    {"id": "m1", "team1": {"name": "A", "score": 2}, "team2": {"name": "B", "score": 1}, "winner": 1},
    {"id": "m2", "team1": {"name": "C", "score": 0, "logo": "c.png"}, "team2": {"name": "D", "score": 3}, "winner": 2}
  ]},
  {"name": "Final", "matches": [
    {"id": "m1|m2", "team1": {"name": "A", "score": 0}, "team2": {"name": "D", "score": 0}, "winner": 0}
  ]}
]`

func TestReadJSONRoundsArray(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(roundsArray))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if len(got.Rounds) != 2 {
		t.Fatalf("len(Rounds) = %d, want 2", len(got.Rounds))
	}
	if got.Rounds[1].Matches[0].ID != "m1|m2" {
		t.Errorf("final id = %q", got.Rounds[1].Matches[0].ID)
	}
	if got.Rounds[0].Matches[1].Team1.Logo != "c.png" {
		t.Errorf("logo = %q, want c.png", got.Rounds[0].Matches[1].Team1.Logo)
	}
	if got.Rounds[0].Matches[1].Winner != bracket.WinnerTeam2 {
		t.Errorf("winner = %v, want team2", got.Rounds[0].Matches[1].Winner)
	}
}

func TestReadJSONTournamentObject(t *testing.T) {
	doc := `{"id": "cup", "name": "Spring Cup", "rounds": ` + roundsArray + `}`
	got, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.ID != "cup" || got.Name != "Spring Cup" {
		t.Errorf("got id=%q name=%q", got.ID, got.Name)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  "},
		{"malformed", `[{"name": `},
		{"bad winner", `[{"name": "F", "matches": [{"id": "m1", "winner": 4}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadJSON() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	rounds, _ := bracket.Generate(2, nil)
	in := bracket.Tournament{ID: "rt", Name: "Round Trip", Rounds: rounds}

	path := filepath.Join(t.TempDir(), "rt.json")
	if err := ExportJSON(in, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	out, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if out.Name != in.Name || len(out.Rounds) != len(in.Rounds) {
		t.Errorf("round trip lost data: %+v", out)
	}
	if out.Rounds[1].Matches[0].ID != in.Rounds[1].Matches[0].ID {
		t.Errorf("final id = %q, want %q", out.Rounds[1].Matches[0].ID, in.Rounds[1].Matches[0].ID)
	}
}

func TestImportJSONDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winter-open.json")
	if err := os.WriteFile(path, []byte(roundsArray), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got.Name != "winter-open" {
		t.Errorf("Name = %q, want winter-open", got.Name)
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(bracket.Tournament{Name: "x"}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"name\": \"x\"") {
		t.Errorf("WriteJSON output not indented:\n%s", buf.String())
	}
}
