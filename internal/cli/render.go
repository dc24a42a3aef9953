package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tournament.json | id | name]",
		Short: "Render a bracket to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a bracket to SVG, PNG, PDF, JSON or DOT.

The input is a tournament JSON file, "-" for stdin, or the id or name of a
stored tournament. The bracket view (-t bracket) draws rounds as columns of
match boxes joined by connectors; the tree view (-t tree) draws the same
matches as a Graphviz diagram and is the only view that supports DOT output.

Layouts and artifacts are cached; use --refresh or --no-cache to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.resolve(cmd, c.cfg.PipelineOptions())
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addLayoutFlags(cmd)
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender loads the tournament, runs the pipeline, and writes artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	t, err := c.loadTournament(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if opts.Title == "" {
		opts.Title = t.Name
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	res, err := runner.Execute(ctx, t.Rounds, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(paths)))

	if output == "-" {
		return nil
	}
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.RoundCount, res.Stats.MatchCount, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	return nil
}
