package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/internal/server"
	"github.com/matzehuels/parcelview/pkg/buildinfo"
)

// serveCommand runs the HTTP preview API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preview API over HTTP",
		Example: `  parcelview serve
  parcelview serve --addr :9000 --engine http://localhost:8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := cfg.LoadCatalog()
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(server.Config{
				Catalog: cat,
				Runner:  runner,
				Logger:  c.Logger,
				Version: buildinfo.Version,
			})

			engineURL := cfg.Engine.URL
			if engineURL == "" {
				engineURL = "none (estimates only)"
			}
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printDetail("engine: %s", engineURL)
			printDetail("catalog: %d items", cat.Len())

			return srv.ListenAndServe(ctx, addr,
				time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
				time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second,
			)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8090)")
	return cmd
}
