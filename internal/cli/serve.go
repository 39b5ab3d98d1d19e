package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		backend string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = c.Config.Server.Timeout
			}

			defaults, err := c.Config.RenderOptions()
			if err != nil {
				return err
			}
			r, cleanup, err := c.newRenderer(ctx, backend, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printKeyValue("Backend", r.Backend.Name())
			if noCache {
				printKeyValue("Cache", "none")
			} else {
				printKeyValue("Cache", c.Config.Cache.Backend)
			}
			printKeyValue("Timeout", timeout.String())
			printNextStep("Try", "curl -d '{\"source\":\"digraph{a->b}\"}' http://localhost"+portOf(addr)+"/v1/render")
			return server.New(r, defaults, c.Logger, timeout).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default from config, 30s)")
	cmd.Flags().StringVar(&backend, "backend", "", "render backend: graphviz, cmd, auto")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}

func portOf(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[i:]
	}
	return ""
}
