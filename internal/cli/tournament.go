package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
	bracketio "github.com/matzehuels/bracket/pkg/io"
	"github.com/matzehuels/bracket/pkg/store"
)

// tournamentCommand creates the tournament management command.
func (c *CLI) tournamentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tournament",
		Aliases: []string{"t"},
		Short:   "Manage stored tournaments",
		Long: `Manage stored tournaments.

Tournaments live in the configured store: JSON files under
~/.config/bracket/tournaments by default, or MongoDB with [store] backend =
"mongo". Commands that take a tournament accept its id or a fuzzy name.`,
	}

	cmd.AddCommand(c.tournamentListCommand())
	cmd.AddCommand(c.tournamentShowCommand())
	cmd.AddCommand(c.tournamentCreateCommand())
	cmd.AddCommand(c.tournamentImportCommand())
	cmd.AddCommand(c.tournamentExportCommand())
	cmd.AddCommand(c.tournamentDeleteCommand())
	cmd.AddCommand(c.tournamentWinnerCommand())

	return cmd
}

// withStore opens the store, runs fn, and closes the store.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close(ctx)
	return fn(s)
}

func (c *CLI) tournamentListCommand() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tournaments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				var (
					ts  []bracket.Tournament
					err error
				)
				if query != "" {
					ts, err = store.FindByName(ctx, s, query)
				} else {
					ts, err = s.List(ctx)
				}
				if err != nil {
					return err
				}
				if len(ts) == 0 {
					printInfo("No tournaments")
					printNextStep("Create one", appName+" tournament create --name Cup --teams 'A, B, C, D'")
					return nil
				}
				printTournaments(ts)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by fuzzy name match")
	return cmd
}

func (c *CLI) tournamentShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id | name>",
		Short: "Show a tournament's matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				t, err := store.Resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				showTournament(t)
				return nil
			})
		},
	}
}

func showTournament(t bracket.Tournament) {
	fmt.Fprintln(stdout, StyleTitle.Render(t.Name))
	printKeyValue("id", t.ID)
	if t.Description != "" {
		printKeyValue("description", t.Description)
	}
	printKeyValue("status", progressLabel(t.Rounds))
	printKeyValue("created", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	printNewline()
	printRounds(t.Rounds)
}

func (c *CLI) tournamentCreateCommand() *cobra.Command {
	opts := generateOpts{rounds: 3, seed: 1}
	var description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament from a team list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rounds, err := buildRounds(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				id, err := s.Create(ctx, bracket.Tournament{Name: opts.name, Description: description, Rounds: rounds})
				if err != nil {
					return err
				}
				printSuccess("Created %s", opts.name)
				printKeyValue("id", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "tournament name")
	cmd.Flags().StringVar(&description, "description", "", "tournament description")
	cmd.Flags().StringVar(&opts.teams, "teams", "", "comma-separated team names (count must be a power of two)")
	cmd.Flags().IntVarP(&opts.rounds, "rounds", "r", opts.rounds, "rounds of a random bracket when --teams is not given")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *CLI) tournamentImportCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a tournament JSON file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := bracketio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				t.Name = name
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				id, err := s.Create(ctx, t)
				if err != nil {
					return err
				}
				printSuccess("Imported %s", t.Name)
				printKeyValue("id", id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "override the tournament name")
	return cmd
}

func (c *CLI) tournamentExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <id | name>",
		Short: "Write a stored tournament as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				t, err := store.Resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					return bracketio.WriteJSON(t, stdout)
				}
				if err := bracketio.ExportJSON(t, output); err != nil {
					return err
				}
				printSuccess("Exported %s", t.Name)
				printFile(output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) tournamentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id | name>",
		Short: "Delete a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				t, err := store.Resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				if err := s.Delete(ctx, t.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", t.Name)
				return nil
			})
		},
	}
}

func (c *CLI) tournamentWinnerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "winner <id | name> <round> <match> <team1 | team2 | none>",
		Short: "Record a match winner and advance it",
		Long: `Record a match winner and advance it to the next round.

Rounds and matches are zero-based, as printed by 'tournament show' (e.g. 0.3
is the fourth match of the first round). The winner is team1, team2 or none
(also accepted: 1, 2, 0).`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid round %q", args[1])
			}
			match, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid match %q", args[2])
			}
			w, err := parseWinner(args[3])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				t, err := store.Resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				if err := bracket.SetWinner(t.Rounds, round, match, w); err != nil {
					return err
				}
				if err := s.Update(ctx, t.ID, store.Patch{Rounds: t.Rounds}); err != nil {
					return err
				}
				if team, ok := t.Rounds[round].Matches[match].WinningTeam(); ok {
					printSuccess("%s wins match %d.%d", team.Name, round, match)
				} else {
					printSuccess("Cleared result of match %d.%d", round, match)
				}
				if champ, ok := bracket.Champion(t.Rounds); ok {
					printDetail("Champion: %s", champ.Name)
				}
				return nil
			})
		},
	}
}

func parseWinner(s string) (bracket.Winner, error) {
	switch strings.ToLower(s) {
	case "team1", "1":
		return bracket.WinnerTeam1, nil
	case "team2", "2":
		return bracket.WinnerTeam2, nil
	case "none", "0":
		return bracket.WinnerNone, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid winner %q (must be team1, team2 or none)", s)
}
