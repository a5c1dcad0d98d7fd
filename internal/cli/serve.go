package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mazes over HTTP",
		Long: `Start the HTTP API.

  GET /healthz              liveness and build info
  GET /v1/algorithms        registered algorithms
  GET /v1/maze              one rendered maze (width, height, algorithm, seed, format, ...)
  GET /v1/maze/stats        maze statistics as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			defaults := cfg.PipelineOptions()
			srv := server.New(server.Config{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Defaults:        defaults,
				Runner:          runner,
				Logger:          c.Logger,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
