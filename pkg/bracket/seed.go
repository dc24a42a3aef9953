package bracket

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/lineage"
)

// MaxRounds bounds generated brackets (2^12 = 4096 teams).
const MaxRounds = 12

// RoundName returns the conventional name of a round holding matchCount
// matches. roundIndex is zero-based and only used for the fallback name.
func RoundName(matchCount, roundIndex int) string {
	switch matchCount {
	case 1:
		return "Final"
	case 2:
		return "Semifinals"
	case 4:
		return "Quarterfinals"
	case 8:
		return "Round of 16"
	case 16:
		return "Round of 32"
	}
	return fmt.Sprintf("Round %d", roundIndex+1)
}

// LeafID returns the id given to the i-th first-round match.
func LeafID(i int) string {
	return fmt.Sprintf("match%d", i+1)
}

// Seed builds an empty bracket for teams, paired in order.
//
// The team count must be a power of two and at least 2. Round 0 pairs
// teams[0] with teams[1], teams[2] with teams[3], and so on. Later rounds
// are filled with placeholder teams and composite ids so the result can be
// laid out immediately.
func Seed(teams []Team) ([]Round, error) {
	n := len(teams)
	if n < 2 || n&(n-1) != 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "team count must be a power of two >= 2, got %d", n)
	}

	leaves := make([]Match, n/2)
	for i := range leaves {
		leaves[i] = Match{ID: LeafID(i), Team1: teams[2*i], Team2: teams[2*i+1]}
	}
	rounds := []Round{{Name: RoundName(len(leaves), 0), Matches: leaves}}

	for prev := leaves; len(prev) > 1; {
		next := make([]Match, len(prev)/2)
		for i := range next {
			next[i] = Match{
				ID:    lineage.Join(prev[2*i].ID, prev[2*i+1].ID),
				Team1: Team{Name: TBD},
				Team2: Team{Name: TBD},
			}
		}
		rounds = append(rounds, Round{Name: RoundName(len(next), len(rounds)), Matches: next})
		prev = next
	}
	return rounds, nil
}

// Generate builds a fully played random bracket with 2^numRounds teams.
//
// Every match gets scores in [0,5) and a random winner, and winners advance
// with fresh scores. rng makes the output reproducible; a nil rng uses a
// fixed seed.
func Generate(numRounds int, rng *rand.Rand) ([]Round, error) {
	if numRounds < 1 || numRounds > MaxRounds {
		return nil, errors.New(errors.ErrCodeInvalidInput, "rounds must be between 1 and %d, got %d", MaxRounds, numRounds)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	numTeams := 1 << numRounds
	teams := make([]Team, numTeams)
	for i := range teams {
		teams[i] = Team{Name: fmt.Sprintf("Participant %d", i+1)}
	}
	rounds, err := Seed(teams)
	if err != nil {
		return nil, err
	}

	for ri := range rounds {
		for mi := range rounds[ri].Matches {
			m := &rounds[ri].Matches[mi]
			m.Team1.Score = float64(rng.IntN(5))
			m.Team2.Score = float64(rng.IntN(5))
			w := WinnerTeam1
			if rng.IntN(2) == 1 {
				w = WinnerTeam2
			}
			if err := SetWinner(rounds, ri, mi, w); err != nil {
				return nil, err
			}
		}
	}
	return rounds, nil
}
