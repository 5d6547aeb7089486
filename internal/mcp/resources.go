package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const catalogResourceURI = "wavelength://catalog"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogResourceURI,
		Name:        "Wavelength Catalog",
		Description: "Layers with their phases, medicinal and toxic curriculum and strategies",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

func (s *Server) handleCatalogResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	catalog, err := s.catalog.Build()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      catalogResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
