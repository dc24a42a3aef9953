package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bracket/pkg/bracket"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TournamentListModel - Interactive tournament selection
// =============================================================================

// TournamentListModel is the bubbletea model for interactive tournament
// selection.
type TournamentListModel struct {
	Tournaments []bracket.Tournament
	Cursor      int
	Selected    *bracket.Tournament
	Height      int
	Offset      int
}

// NewTournamentListModel creates a new tournament list model.
func NewTournamentListModel(ts []bracket.Tournament) TournamentListModel {
	return TournamentListModel{Tournaments: ts, Height: 15}
}

func (m TournamentListModel) Init() tea.Cmd {
	return nil
}

func (m TournamentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tournaments)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Tournaments) == 0 {
				return m, tea.Quit
			}
			t := m.Tournaments[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TournamentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tournament"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Tournaments))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Tournaments[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, t.Name, fmt.Sprint(len(t.Rounds)), progressLabel(t.Rounds), formatRelativeTime(t.UpdatedAt)})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tournament", "Rounds", "Status", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Tournaments) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col >= 3 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				if col < 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Tournaments)), len(m.Tournaments))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
