package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/teeforge/internal/server"
)

const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long: `Start an HTTP server with the generator form page.

Routes:
  GET /            form page with preview and download link
  GET /api/seed    resolve seed text as JSON
  GET /generate    render and download the PNG
  GET /healthz     liveness and build version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", StyleLink.Render("http://"+addr))
			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	addCacheFlags(cmd, &cf)
	return cmd
}
