package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lamafmt/pkg/cache"
	"github.com/matzehuels/lamafmt/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP formatting
// service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var ff formatFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP formatting service",
		Long: `Run the HTTP formatting service.

POST /v1/format accepts {"source": "...", "width": 80} and returns the
formatted source. Width, indent and policy default to the flags and the
configuration file. GET /healthz reports the server version. Cached results
are kept apart from those of the fmt command.`,
		Example: `  lamafmt serve --addr :8080 --width 100`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolve(cmd, &ff, ".")
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), s, cache.NewScopedKeyer(nil, "serve:"))
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo(cmd.ErrOrStderr(), "Listening on %s", StyleHighlight.Render(addr))
			return server.New(runner, c.Logger, s.opts).Run(cmd.Context(), addr)
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}
