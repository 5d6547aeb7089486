package mcp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/terraincognita07/wavelength/internal/services"
)

const (
	toolOverview           = "analytics_overview"
	toolEmotionalLandscape = "emotional_landscape"
	toolSelfCare           = "self_care"
	toolTemporal           = "temporal_patterns"
	toolGrowth             = "growth_indicators"
	toolCatalog            = "catalog"
	toolJournalUsers       = "journal_users"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolOverview,
		Description: "Summarize a user's journal over a window: streaks, medicinal ratio and trend, dominant layer and phase",
	}, s.handleOverview)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolEmotionalLandscape,
		Description: "Layer and phase distributions plus the most frequent emotions of a user",
	}, s.handleEmotionalLandscape)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolSelfCare,
		Description: "Self-care strategy usage and diversity of a user",
	}, s.handleSelfCare)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolTemporal,
		Description: "Hour of day distribution and check-in consistency of a user",
	}, s.handleTemporal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolGrowth,
		Description: "Medicinal trend, layer diversity and phase coverage of a user",
	}, s.handleGrowth)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolCatalog,
		Description: "The full layer, phase, curriculum and strategy catalog",
	}, s.handleCatalog)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        toolJournalUsers,
		Description: "User ids that own journal entries, with their entry counts",
	}, s.handleJournalUsers)
}

type windowInput struct {
	UserID    uint   `json:"user_id" jsonschema:"journal owner id"`
	StartDate string `json:"start_date,omitempty" jsonschema:"window start as RFC 3339 or YYYY-MM-DD, defaults to 30 days before end_date"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"window end as RFC 3339 or YYYY-MM-DD, defaults to now"`
}

type rankingInput struct {
	UserID    uint   `json:"user_id" jsonschema:"journal owner id"`
	StartDate string `json:"start_date,omitempty" jsonschema:"window start as RFC 3339 or YYYY-MM-DD, defaults to 30 days before end_date"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"window end as RFC 3339 or YYYY-MM-DD, defaults to now"`
	Limit     int    `json:"limit,omitempty" jsonschema:"number of ranked items between 1 and 100"`
}

type emptyInput struct{}

type journalUser struct {
	UserID  uint  `json:"user_id"`
	Entries int64 `json:"entries"`
}

type journalUsersOutput struct {
	Users []journalUser `json:"users"`
}

func (input windowInput) query() (services.AnalyticsQuery, error) {
	start, err := parseOptionalDate(input.StartDate)
	if err != nil {
		return services.AnalyticsQuery{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseOptionalDate(input.EndDate)
	if err != nil {
		return services.AnalyticsQuery{}, fmt.Errorf("end_date: %w", err)
	}
	return services.AnalyticsQuery{UserID: input.UserID, Start: start, End: end}, nil
}

func (input rankingInput) query() (services.AnalyticsQuery, error) {
	query, err := windowInput{UserID: input.UserID, StartDate: input.StartDate, EndDate: input.EndDate}.query()
	if err != nil {
		return services.AnalyticsQuery{}, err
	}
	query.Limit = input.Limit
	return query, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := services.ParseTimestamp(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (s *Server) handleOverview(ctx context.Context, _ *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	query, err := input.query()
	if err != nil {
		return nil, nil, err
	}
	overview, err := s.analytics.Overview(ctx, query)
	if err != nil {
		return nil, nil, s.toolError(toolOverview, err)
	}
	return nil, overview, nil
}

func (s *Server) handleEmotionalLandscape(ctx context.Context, _ *mcp.CallToolRequest, input rankingInput) (*mcp.CallToolResult, any, error) {
	query, err := input.query()
	if err != nil {
		return nil, nil, err
	}
	landscape, err := s.analytics.EmotionalLandscape(ctx, query)
	if err != nil {
		return nil, nil, s.toolError(toolEmotionalLandscape, err)
	}
	return nil, landscape, nil
}

func (s *Server) handleSelfCare(ctx context.Context, _ *mcp.CallToolRequest, input rankingInput) (*mcp.CallToolResult, any, error) {
	query, err := input.query()
	if err != nil {
		return nil, nil, err
	}
	selfCare, err := s.analytics.SelfCare(ctx, query)
	if err != nil {
		return nil, nil, s.toolError(toolSelfCare, err)
	}
	return nil, selfCare, nil
}

func (s *Server) handleTemporal(ctx context.Context, _ *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	query, err := input.query()
	if err != nil {
		return nil, nil, err
	}
	temporal, err := s.analytics.Temporal(ctx, query)
	if err != nil {
		return nil, nil, s.toolError(toolTemporal, err)
	}
	return nil, temporal, nil
}

func (s *Server) handleGrowth(ctx context.Context, _ *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, any, error) {
	query, err := input.query()
	if err != nil {
		return nil, nil, err
	}
	growth, err := s.analytics.Growth(ctx, query)
	if err != nil {
		return nil, nil, s.toolError(toolGrowth, err)
	}
	return nil, growth, nil
}

func (s *Server) handleCatalog(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	catalog, err := s.catalog.Build()
	if err != nil {
		return nil, nil, s.toolError(toolCatalog, err)
	}
	return nil, catalog, nil
}

func (s *Server) handleJournalUsers(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	counts, err := s.journals.CountByUser()
	if err != nil {
		return nil, nil, s.toolError(toolJournalUsers, err)
	}

	users := make([]journalUser, 0, len(counts))
	for userID, entries := range counts {
		users = append(users, journalUser{UserID: userID, Entries: entries})
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].UserID < users[j].UserID
	})
	return nil, journalUsersOutput{Users: users}, nil
}

func (s *Server) toolError(tool string, err error) error {
	s.logger.WithError(err).WithField("tool", tool).Warn("mcp tool failed")
	return fmt.Errorf("%s: %w", tool, err)
}
