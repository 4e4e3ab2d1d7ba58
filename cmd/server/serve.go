package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mukundrex/flight-mcp-server/config"
	"github.com/mukundrex/flight-mcp-server/internal/bootstrap"
)

func serveCmd(cfgPath *string) *cobra.Command {
	var transport string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio or HTTP/SSE",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if transport != "" {
				a.cfg.MCP.Transport = transport
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}
			return bootstrap.Run(ctx, a.cfg, a.bootstrapDeps())
		},
	}

	c.Flags().StringVarP(&transport, "transport", "t", "", "transport override: "+config.TransportStdio+"|"+config.TransportSSE)
	return c
}
