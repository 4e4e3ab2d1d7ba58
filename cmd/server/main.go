package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:          "flight-mcp-server",
		Short:        "MCP server for flight search backed by the Amadeus API",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "path to config.yaml (defaults to $CONFIG_PATH)")

	cmd.AddCommand(serveCmd(&cfgPath), searchCmd(&cfgPath))
	return cmd
}
