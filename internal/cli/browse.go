package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/store"
)

// browseCommand creates the interactive tournament picker.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		render  bool
		output  string
		noCache bool
		flags   pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a stored tournament interactively",
		Long: `Pick a stored tournament interactively and show its matches.

With --render the selected tournament is rendered as with 'render'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := c.pickTournament(ctx)
			if err != nil || id == "" {
				return err
			}
			if render {
				opts := flags.resolve(cmd, c.cfg.PipelineOptions())
				return c.runRender(ctx, id, opts, output, noCache)
			}
			return c.withStore(ctx, func(s store.Store) error {
				t, err := s.Get(ctx, id)
				if err != nil {
					return err
				}
				showTournament(t)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "render the selected tournament")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addRenderFlags(cmd)

	return cmd
}

// pickTournament runs the picker and returns the selected id, or "" when
// the user quit without choosing.
func (c *CLI) pickTournament(ctx context.Context) (string, error) {
	var m TournamentListModel
	err := c.withStore(ctx, func(s store.Store) error {
		ts, err := s.List(ctx)
		if err != nil {
			return err
		}
		m = NewTournamentListModel(ts)
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(m.Tournaments) == 0 {
		printInfo("No tournaments")
		return "", nil
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", fmt.Errorf("browse: %w", err)
	}
	if sel := final.(TournamentListModel).Selected; sel != nil {
		return sel.ID, nil
	}
	return "", nil
}
