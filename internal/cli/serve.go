package cli

import (
	"github.com/spf13/cobra"

	"github.com/rohitvarshney-web/schengen-slots/internal/web"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard and JSON API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return web.New(a.provider, a.now).ListenAndServe(cmd.Context(), a.cfg.Server.Addr())
		},
	}
	cmd.Flags().String("host", "", "listen host (default 127.0.0.1)")
	cmd.Flags().Int("port", 0, "listen port (default 8080)")
	bind(a.v, cmd.Flags(), map[string]string{
		"server.host": "host",
		"server.port": "port",
	})
	return cmd
}
