package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/pipeline"
)

// layoutCommand creates the layout command for computing bracket layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tournament.json | id | name]",
		Short: "Compute match positions without rendering",
		Long: `Compute match positions without rendering.

The output is a layout JSON file with the canvas size, column width and the
center of every match, keyed by match id. It is the geometry 'render' draws
from, useful for custom front-ends.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.resolve(cmd, c.cfg.PipelineOptions())
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.addLayoutFlags(cmd)

	return cmd
}

// runLayout loads the tournament, computes the layout, and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	opts.SetLayoutDefaults()
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	t, err := c.loadTournament(ctx, input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, t.Rounds, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	data, err := pipeline.MarshalLayout(l)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Rounds), len(l.Positions), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)
	return nil
}
