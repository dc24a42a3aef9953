package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tournaments and rendered brackets over HTTP",
		Long: `Serve tournaments and rendered brackets over HTTP.

Routes:
  GET    /healthz
  GET    /tournaments                    (?q= fuzzy name filter)
  POST   /tournaments
  GET    /tournaments/{id}
  PUT    /tournaments/{id}
  DELETE /tournaments/{id}
  POST   /tournaments/{id}/winner
  GET    /tournaments/{id}/bracket.{svg,png,pdf,json,dot}
  POST   /render

The listen address, CORS origins, rate limit and timeouts come from the
[server] config section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sc := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				sc.Addr = addr
			}
			opts := c.cfg.PipelineOptions()
			opts.Formats = []string{pipeline.FormatSVG}

			srv := server.New(s, runner, opts, server.Config{
				Addr:         sc.Addr,
				CORSOrigins:  sc.CORSOrigins,
				RateLimit:    sc.RateLimit,
				RateBurst:    sc.RateBurst,
				ReadTimeout:  sc.ReadTimeout,
				WriteTimeout: sc.WriteTimeout,
				MaxViews:     sc.MaxViews,
			}, logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
