package bracket

import (
	"time"

	"github.com/matzehuels/bracket/pkg/errors"
)

// Winner records which side of a match won.
type Winner int

const (
	// WinnerNone marks an undecided match.
	WinnerNone Winner = 0
	// WinnerTeam1 marks a win for Match.Team1.
	WinnerTeam1 Winner = 1
	// WinnerTeam2 marks a win for Match.Team2.
	WinnerTeam2 Winner = 2
)

// Valid reports whether w is one of the three known values.
func (w Winner) Valid() bool {
	return w >= WinnerNone && w <= WinnerTeam2
}

// String returns a short label for w.
func (w Winner) String() string {
	switch w {
	case WinnerNone:
		return "none"
	case WinnerTeam1:
		return "team1"
	case WinnerTeam2:
		return "team2"
	default:
		return "invalid"
	}
}

// TBD is the placeholder team name used for slots not yet decided.
const TBD = "TBD"

// Team is one side of a match.
type Team struct {
	Name  string  `json:"name" bson:"name"`
	Score float64 `json:"score" bson:"score"`
	Logo  string  `json:"logo,omitempty" bson:"logo,omitempty"`
}

// IsPlaceholder reports whether t stands for a slot not yet decided.
func (t Team) IsPlaceholder() bool {
	return t.Name == "" || t.Name == TBD
}

// Match is a single pairing within a round.
type Match struct {
	ID     string `json:"id" bson:"id"`
	Team1  Team   `json:"team1" bson:"team1"`
	Team2  Team   `json:"team2" bson:"team2"`
	Winner Winner `json:"winner" bson:"winner"`
}

// WinningTeam returns the team named by m.Winner.
// The second return value is false when the match is undecided.
func (m Match) WinningTeam() (Team, bool) {
	switch m.Winner {
	case WinnerTeam1:
		return m.Team1, true
	case WinnerTeam2:
		return m.Team2, true
	}
	return Team{}, false
}

// Round is a named column of matches.
type Round struct {
	Name    string  `json:"name" bson:"name"`
	Matches []Match `json:"matches" bson:"matches"`
}

// Complete reports whether every match in r has a winner.
func (r Round) Complete() bool {
	for _, m := range r.Matches {
		if m.Winner == WinnerNone {
			return false
		}
	}
	return len(r.Matches) > 0
}

// Tournament is the persisted unit: a named bracket.
type Tournament struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Rounds      []Round   `json:"rounds" bson:"rounds"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// MatchCount returns the number of matches across all rounds.
func (t Tournament) MatchCount() int {
	n := 0
	for _, r := range t.Rounds {
		n += len(r.Matches)
	}
	return n
}

// Clone returns a deep copy of rounds so callers can edit it freely.
func Clone(rounds []Round) []Round {
	if rounds == nil {
		return nil
	}
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		out[i] = Round{Name: r.Name, Matches: append([]Match(nil), r.Matches...)}
	}
	return out
}

// ValidateWinners checks that every match carries a known winner value.
// Structural checks (lineage, round sizes) happen during layout.
func ValidateWinners(rounds []Round) error {
	for ri, r := range rounds {
		for mi, m := range r.Matches {
			if !m.Winner.Valid() {
				return errors.New(errors.ErrCodeInvalidInput,
					"round %d match %d (%s): invalid winner %d", ri, mi, m.ID, int(m.Winner))
			}
		}
	}
	return nil
}
