package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/logging"
	"github.com/terraincognita07/wavelength/internal/services"
)

const serverName = "wavelength"

// JournalUserCounter reports how many journal entries each user owns.
type JournalUserCounter interface {
	CountByUser() (map[uint]int64, error)
}

// Server exposes read-only analytics and catalog tools over MCP.
type Server struct {
	mcpServer *mcp.Server
	analytics *services.AnalyticsService
	catalog   *services.CatalogService
	journals  JournalUserCounter
	logger    *logrus.Logger
}

func NewServer(registry *services.Registry, journals JournalUserCounter, version string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	server := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		analytics: registry.Analytics,
		catalog:   registry.Catalog,
		journals:  journals,
		logger:    logger,
	}
	server.registerTools()
	server.registerResources()
	return server
}

// Serve blocks on the stdio transport until ctx is cancelled or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.WithField("server", serverName).Info("mcp server listening on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
