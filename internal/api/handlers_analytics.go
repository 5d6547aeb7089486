package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/services"
)

func parseAnalyticsQuery(c *fiber.Ctx) (services.AnalyticsQuery, error) {
	userID, err := parseRequiredUintQuery(c, "user_id")
	if err != nil {
		return services.AnalyticsQuery{}, err
	}
	start, err := parseOptionalTimeQuery(c, "start_date")
	if err != nil {
		return services.AnalyticsQuery{}, err
	}
	end, err := parseOptionalTimeQuery(c, "end_date")
	if err != nil {
		return services.AnalyticsQuery{}, err
	}

	query := services.AnalyticsQuery{UserID: userID, Start: start, End: end}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > services.MaxRankingLimit {
			return services.AnalyticsQuery{}, invalidQuery("limit", "must be between 1 and "+strconv.Itoa(services.MaxRankingLimit))
		}
		query.Limit = limit
	}
	return query, nil
}

func (handler *Handler) GetAnalyticsOverview(c *fiber.Ctx) error {
	query, err := parseAnalyticsQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute overview")
	}
	overview, err := handler.analytics.Overview(c.UserContext(), query)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute overview")
	}
	return c.JSON(overview)
}

func (handler *Handler) GetEmotionalLandscape(c *fiber.Ctx) error {
	query, err := parseAnalyticsQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute emotional landscape")
	}
	landscape, err := handler.analytics.EmotionalLandscape(c.UserContext(), query)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute emotional landscape")
	}
	return c.JSON(landscape)
}

func (handler *Handler) GetSelfCareAnalytics(c *fiber.Ctx) error {
	query, err := parseAnalyticsQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute self-care analytics")
	}
	selfCare, err := handler.analytics.SelfCare(c.UserContext(), query)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute self-care analytics")
	}
	return c.JSON(selfCare)
}

func (handler *Handler) GetTemporalPatterns(c *fiber.Ctx) error {
	query, err := parseAnalyticsQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute temporal patterns")
	}
	temporal, err := handler.analytics.Temporal(c.UserContext(), query)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute temporal patterns")
	}
	return c.JSON(temporal)
}

func (handler *Handler) GetGrowthIndicators(c *fiber.Ctx) error {
	query, err := parseAnalyticsQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute growth indicators")
	}
	growth, err := handler.analytics.Growth(c.UserContext(), query)
	if err != nil {
		return handler.serviceError(c, err, "failed to compute growth indicators")
	}
	return c.JSON(growth)
}
