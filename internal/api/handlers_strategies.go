package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/services"
)

func (handler *Handler) ListStrategies(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategies")
	}
	layerID, err := parseOptionalUintQuery(c, "layer_id")
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategies")
	}
	phaseID, err := parseOptionalUintQuery(c, "phase_id")
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategies")
	}

	strategies, err := handler.references.ListStrategies(db.StrategyFilter{LayerID: layerID, PhaseID: phaseID}, page)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategies")
	}
	return c.JSON(strategies)
}

func (handler *Handler) GetStrategy(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategy")
	}
	strategy, err := handler.references.GetStrategy(id)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch strategy")
	}
	return c.JSON(strategy)
}

func (handler *Handler) CreateStrategy(c *fiber.Ctx) error {
	payload := strategyPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to create strategy")
	}
	strategy, err := handler.references.CreateStrategy(services.StrategyInput{
		Strategy:     payload.Strategy,
		LayerID:      *payload.LayerID,
		PhaseID:      *payload.PhaseID,
		ColorLayerID: payload.ColorLayerID,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to create strategy")
	}
	return c.Status(fiber.StatusCreated).JSON(strategy)
}

func (handler *Handler) UpdateStrategy(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to update strategy")
	}
	payload := strategyPatchPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to update strategy")
	}
	strategy, err := handler.references.UpdateStrategy(id, services.StrategyPatch{
		Strategy:     payload.Strategy,
		LayerID:      payload.LayerID,
		PhaseID:      payload.PhaseID,
		ColorLayerID: payload.ColorLayerID.optional(),
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to update strategy")
	}
	return c.JSON(strategy)
}

func (handler *Handler) DeleteStrategy(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete strategy")
	}
	if err := handler.references.DeleteStrategy(id); err != nil {
		return handler.serviceError(c, err, "failed to delete strategy")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
