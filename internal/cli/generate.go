package cli

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	bracketio "github.com/matzehuels/bracket/pkg/io"
)

type generateOpts struct {
	rounds int
	seed   uint64
	teams  string
	name   string
	output string
	save   bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{rounds: 3, seed: 1, name: "Generated Tournament"}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a bracket from a team list or at random",
		Long: `Generate a bracket from a team list or at random.

With --teams, round one pairs the listed teams in order and later rounds are
left undecided. Team names are comma-separated; quote names that contain
commas:

  bracket generate --teams 'Lions, Tigers, "Bears, Inc", Wolves'

Without --teams, a fully played bracket with --rounds rounds and random
scores is generated from --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.rounds, "rounds", "r", opts.rounds, "number of rounds for a random bracket")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	cmd.Flags().StringVar(&opts.teams, "teams", "", "comma-separated team names (count must be a power of two)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", opts.name, "tournament name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save to the tournament store instead of writing JSON")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	rounds, err := buildRounds(opts)
	if err != nil {
		return err
	}
	t := bracket.Tournament{Name: opts.name, Rounds: rounds}

	if opts.save {
		s, err := c.openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close(ctx)
		id, err := s.Create(ctx, t)
		if err != nil {
			return err
		}
		printSuccess("Saved %s", opts.name)
		printKeyValue("id", id)
		printNextStep("Render", appName+" render "+id)
		return nil
	}

	var buf bytes.Buffer
	if err := bracketio.WriteJSON(t, &buf); err != nil {
		return err
	}
	if err := writeOutput(opts.output, buf.Bytes()); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		printSuccess("Generated %d rounds", len(rounds))
		printFile(opts.output)
	}
	return nil
}

func buildRounds(opts generateOpts) ([]bracket.Round, error) {
	if opts.teams == "" {
		return bracket.Generate(opts.rounds, rand.New(rand.NewPCG(opts.seed, opts.seed)))
	}
	names, err := parseTeams(opts.teams)
	if err != nil {
		return nil, err
	}
	teams := make([]bracket.Team, len(names))
	for i, n := range names {
		if err := errors.ValidateName(n); err != nil {
			return nil, fmt.Errorf("team %d: %w", i+1, err)
		}
		teams[i] = bracket.Team{Name: n}
	}
	return bracket.Seed(teams)
}

// teamSplitter splits on commas outside straight or curly double quotes.
var teamSplitter, errTeamSplitter = splitter.NewSplitter(',', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)

// parseTeams splits a comma-separated team list, honoring quoted names.
// Blank entries are dropped.
func parseTeams(s string) ([]string, error) {
	if errTeamSplitter != nil {
		return nil, errTeamSplitter
	}
	parts, err := teamSplitter.Split(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse team list")
	}
	var names []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(strings.TrimSuffix(p, `"`), `"`)
		p = strings.TrimPrefix(strings.TrimSuffix(p, "”"), "“")
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names, nil
}
