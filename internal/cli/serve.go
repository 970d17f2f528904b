package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpack/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement API over HTTP",
		Long: `Serve runs the HTTP API backed by the configured cache and board store.
It shuts down gracefully on interrupt.`,
		Example: `  gridpack serve --addr :9090
  GRIDPACK_CACHE=redis GRIDPACK_STORE=mongo GRIDPACK_MONGO_URI=mongodb://localhost gridpack serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings().Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(runner, st, c.Logger, server.WithPolicy(c.settings().Unplaceable))
	c.Logger.Info("serving", "addr", addr, "cache", c.settings().Cache, "store", c.settings().Store)
	return srv.ListenAndServe(ctx, addr)
}
