package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bracket/pkg/bracket"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m TournamentListModel, keys ...string) (TournamentListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(TournamentListModel)
	}
	return m, cmd
}

func TestTournamentListNavigation(t *testing.T) {
	ts := []bracket.Tournament{{ID: "1", Name: "Alpha"}, {ID: "2", Name: "Beta"}, {ID: "3", Name: "Gamma"}}
	m := NewTournamentListModel(ts)

	m, _ = press(m, "down", "j", "down")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m, _ = press(m, "up", "k", "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 (clamped)", m.Cursor)
	}

	m, cmd := press(m, "down", "enter")
	if m.Selected == nil || m.Selected.Name != "Beta" {
		t.Fatalf("Selected = %+v, want Beta", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTournamentListScrolls(t *testing.T) {
	ts := make([]bracket.Tournament, 10)
	for i := range ts {
		ts[i] = bracket.Tournament{Name: string(rune('A' + i))}
	}
	m := NewTournamentListModel(ts)
	m.Height = 3

	m, _ = press(m, "down", "down", "down", "down")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m, _ = press(m, "up", "up", "up")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	if got := next.(TournamentListModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}

func TestTournamentListQuitWithoutSelection(t *testing.T) {
	m := NewTournamentListModel(nil)
	m, cmd := press(m, "enter")
	if m.Selected != nil || cmd == nil {
		t.Error("enter on an empty list should quit without a selection")
	}
	_, cmd = press(NewTournamentListModel(nil), "q")
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestTournamentListView(t *testing.T) {
	rounds, _ := bracket.Generate(2, nil)
	m := NewTournamentListModel([]bracket.Tournament{{Name: "Cup", Rounds: rounds}})
	view := m.View()
	for _, want := range []string{"Select Tournament", "Cup", "won by", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
		{time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "Mar 9, 2024"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
