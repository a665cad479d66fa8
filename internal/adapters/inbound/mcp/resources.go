package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/integrity/internal/adapters/outbound/config"
)

const checksURI = "integrity://checks"

// registerResources registers all integrity MCP resources on the given server.
func registerResources(s *server.MCPServer, d handlerDeps) {
	s.AddResource(
		mcplib.NewResource(
			checksURI,
			"Check Registry",
			mcplib.WithResourceDescription("The configured checks, in execution order"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecksResource(d),
	)
}

func handleChecksResource(d handlerDeps) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(d.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg.Checks, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling checks: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      checksURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
