package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/mcp"
	"github.com/terraincognita07/wavelength/internal/services"
)

func newMCPCommand(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the read-only MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout for AI assistants.

AVAILABLE TOOLS:

  analytics_overview   streaks, medicinal ratio and dominant layer of a user
  emotional_landscape  layer and phase distributions with top emotions
  self_care            strategy usage and diversity
  temporal_patterns    hour of day distribution and consistency
  growth_indicators    medicinal trend, layer diversity and phase coverage
  catalog              the full reference catalog
  journal_users        users with journal entries

AVAILABLE RESOURCES:

  wavelength://catalog  the full reference catalog as JSON

Logs go to stderr so they never interleave with the protocol stream.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, closeDatabase, err := state.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase()

			repositories := db.NewRepositories(database)
			registry := services.NewRegistry(repositories, cache.NewMemoryCache(state.cfg.CacheTTL, state.cfg.CacheMaxEntries), nil, state.logger)
			server := mcp.NewServer(registry, repositories.Journals, version, state.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx)
		},
	}
}
