package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/cache"
	"github.com/matzehuels/bracket/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cc, err := c.newCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printInfo("Cache backend %q cannot be cleared", c.cfg.Cache.Backend)
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cache cleared")
			switch cc := cc.(type) {
			case *cache.FileCache:
				printDetail("Directory: %s", cc.Dir())
			case *cache.RedisCache:
				printDetail("Redis: %s", c.cfg.Cache.RedisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Cache.Backend != "" && c.cfg.Cache.Backend != config.CacheFile {
				printInfo("Cache backend is %q; no directory in use", c.cfg.Cache.Backend)
				return nil
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
