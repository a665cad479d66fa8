package mcp

import (
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/integrity/internal/domain"
)

// handlerDeps is what every tool and resource needs to load the registry
// and reach the database.
type handlerDeps struct {
	configPath string
	connector  domain.Connector
	logger     *slog.Logger
}

// NewIntegrityMCPServer creates a new MCP server with all integrity tools and
// resources registered. configPath locates integrity.yaml; it is re-read on
// every call so edits are picked up without a restart.
func NewIntegrityMCPServer(configPath string, connector domain.Connector, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := handlerDeps{configPath: configPath, connector: connector, logger: logger}

	s := server.NewMCPServer(
		"integrity",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, d)
	registerResources(s, d)

	return s
}
