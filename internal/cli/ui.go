package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/bracket/pkg/bracket"
)

// stdout receives all command output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, winners
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWinner for teams that won their match.
	StyleWinner = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints bracket statistics on a single line.
func printStats(roundCount, matchCount int, cached bool) {
	var parts []string
	if roundCount > 0 {
		parts = append(parts, fmt.Sprintf("%d rounds", roundCount))
	}
	if matchCount > 0 {
		parts = append(parts, fmt.Sprintf("%d matches", matchCount))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	if len(parts) > 0 {
		line += StyleDim.Render(" · ")
	}
	line += statusStyle.Render(status)
	fmt.Fprintln(stdout, line)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// =============================================================================
// Tournaments
// =============================================================================

// printTournaments prints a table of tournaments.
func printTournaments(ts []bracket.Tournament) {
	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{t.ID, t.Name, fmt.Sprint(len(t.Rounds)), progressLabel(t.Rounds), formatRelativeTime(t.CreatedAt)}
	}
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Rounds", "Status", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 || col == 4 {
				return StyleDim
			}
			return StyleValue
		})
	fmt.Fprintln(stdout, tbl.Render())
}

// printRounds prints every match, highlighting winners.
func printRounds(rounds []bracket.Round) {
	for ri, r := range rounds {
		name := r.Name
		if name == "" {
			name = bracket.RoundName(len(r.Matches), ri)
		}
		fmt.Fprintln(stdout, StyleTitle.Render(name))
		for mi, m := range r.Matches {
			fmt.Fprintf(stdout, "  %s %s %s %s\n",
				StyleDim.Render(fmt.Sprintf("%d.%d", ri, mi)),
				teamLabel(m.Team1, m.Winner == bracket.WinnerTeam1),
				StyleDim.Render("vs"),
				teamLabel(m.Team2, m.Winner == bracket.WinnerTeam2))
		}
	}
}

func teamLabel(t bracket.Team, won bool) string {
	name := t.Name
	if name == "" {
		name = bracket.TBD
	}
	label := fmt.Sprintf("%s (%g)", name, t.Score)
	if won {
		return StyleWinner.Render(label)
	}
	if t.IsPlaceholder() {
		return StyleDim.Render(label)
	}
	return StyleValue.Render(label)
}

// progressLabel summarizes how far a bracket has been played.
func progressLabel(rounds []bracket.Round) string {
	if champ, ok := bracket.Champion(rounds); ok {
		return "won by " + champ.Name
	}
	cur := bracket.CurrentRound(rounds)
	if cur >= len(rounds) {
		return "empty"
	}
	name := rounds[cur].Name
	if name == "" {
		name = bracket.RoundName(len(rounds[cur].Matches), cur)
	}
	return strings.ToLower(name)
}
