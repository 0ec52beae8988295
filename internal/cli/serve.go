package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/internal/server"
)

var serverFlagKeys = map[string]string{
	"addr":            "server.addr",
	"max-items":       "server.max_items",
	"max-body-bytes":  "server.max_body_bytes",
	"request-timeout": "server.request_timeout",
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve the layout API until interrupted.

Endpoints:
  GET  /healthz          build information
  GET  /v1/objectives    built-in objectives and option defaults
  POST /v1/layout        compute a layout

Layout options from flags, environment and config file become the defaults
for requests that leave them unset.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(c.v, cmd.Flags(), layoutFlagKeys); err != nil {
				return err
			}
			return bindFlags(c.v, cmd.Flags(), serverFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := decodeConfig(c.v)
			if err != nil {
				return err
			}
			srv := server.New(cfg.ServerConfig(), c.Logger)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	addLayoutFlags(cmd.Flags())
	registerLayoutCompletions(cmd)
	cmd.Flags().String("addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int("max-items", server.DefaultMaxItems, "largest gallery accepted per request")
	cmd.Flags().Int64("max-body-bytes", server.DefaultMaxBodyBytes, "largest request body accepted")
	cmd.Flags().Duration("request-timeout", server.DefaultRequestTimeout, "per-request timeout")

	return cmd
}
