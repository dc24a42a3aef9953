package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/internal/cli"
	bracketerrors "github.com/matzehuels/bracket/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Set the log level before the root's own pre-run loads config.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode maps error codes to exit statuses: 2 for bad input, 3 for a
// missing tournament or file, 1 otherwise.
func exitCode(err error) int {
	switch bracketerrors.GetCode(err) {
	case bracketerrors.ErrCodeInvalidInput, bracketerrors.ErrCodeInvalidFormat, bracketerrors.ErrCodeInvalidStyle,
		bracketerrors.ErrCodeInvalidVizType, bracketerrors.ErrCodeInvalidID, bracketerrors.ErrCodeMalformedLineage:
		return 2
	case bracketerrors.ErrCodeNotFound, bracketerrors.ErrCodeFileNotFound:
		return 3
	}
	return 1
}
