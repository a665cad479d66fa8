package cli

import (
	mcpadapter "github.com/abdidvp/integrity/internal/adapters/inbound/mcp"
	"github.com/abdidvp/integrity/internal/adapters/outbound/config"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the integrity MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(a))
	return cmd
}

func newMCPServeCmd(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start integrity MCP server (stdio)",
		Long: "Start the integrity MCP server using stdio transport. Agents can list the registry and run checks; " +
			"reports produced through MCP are never mailed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewIntegrityMCPServer(config.Resolve(configPath), a.deps.Connector, a.logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFileName, "Path to integrity.yaml (or its directory)")

	return cmd
}
