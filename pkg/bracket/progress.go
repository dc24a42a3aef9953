package bracket

import (
	"github.com/matzehuels/bracket/pkg/errors"
)

// SetWinner records w for rounds[round].Matches[match] and advances the
// winning team into the following round.
//
// The winner lands in Team1 of the next match when match is even and in
// Team2 when odd, with its score reset. Once both slots of the next match
// hold real teams, that match's winner is cleared since its pairing changed.
// Setting WinnerNone clears the result and takes back the team advanced
// earlier: its slot reverts to TBD, the next match becomes undecided, and
// the same happens in every later round it had reached.
func SetWinner(rounds []Round, round, match int, w Winner) error {
	m, err := matchAt(rounds, round, match)
	if err != nil {
		return err
	}
	if !w.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid winner %d", int(w))
	}
	m.Winner = w
	return advance(rounds, round, match)
}

// SetScore records both scores and derives the winner from them: the higher
// score wins and a tie leaves the match undecided. A tie takes back a
// previously advanced team as SetWinner with WinnerNone does.
func SetScore(rounds []Round, round, match int, score1, score2 float64) error {
	m, err := matchAt(rounds, round, match)
	if err != nil {
		return err
	}
	m.Team1.Score = score1
	m.Team2.Score = score2
	switch {
	case score1 > score2:
		m.Winner = WinnerTeam1
	case score2 > score1:
		m.Winner = WinnerTeam2
	default:
		m.Winner = WinnerNone
	}
	return advance(rounds, round, match)
}

// Champion returns the winner of the final, if decided.
func Champion(rounds []Round) (Team, bool) {
	if len(rounds) == 0 {
		return Team{}, false
	}
	final := rounds[len(rounds)-1]
	if len(final.Matches) != 1 {
		return Team{}, false
	}
	return final.Matches[0].WinningTeam()
}

// CurrentRound returns the index of the first round with an undecided
// match, or len(rounds) when every round is complete.
func CurrentRound(rounds []Round) int {
	for i, r := range rounds {
		if !r.Complete() {
			return i
		}
	}
	return len(rounds)
}

func advance(rounds []Round, round, match int) error {
	if round+1 >= len(rounds) {
		return nil
	}
	src := rounds[round].Matches[match]
	next, err := matchAt(rounds, round+1, match/2)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "advance winner of %s", src.ID)
	}
	slot := &next.Team1
	if match%2 == 1 {
		slot = &next.Team2
	}

	team, ok := src.WinningTeam()
	if !ok {
		if slot.IsPlaceholder() {
			return nil
		}
		*slot = Team{Name: TBD}
		next.Winner = WinnerNone
		return advance(rounds, round+1, match/2)
	}

	team.Score = 0
	*slot = team
	if !next.Team1.IsPlaceholder() && !next.Team2.IsPlaceholder() {
		next.Winner = WinnerNone
	}
	return nil
}

func matchAt(rounds []Round, round, match int) (*Match, error) {
	if round < 0 || round >= len(rounds) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "round %d out of range (have %d)", round, len(rounds))
	}
	ms := rounds[round].Matches
	if match < 0 || match >= len(ms) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "match %d out of range in round %d (have %d)", match, round, len(ms))
	}
	return &ms[match], nil
}
