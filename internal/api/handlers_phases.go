package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/services"
)

func (handler *Handler) ListPhases(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch phases")
	}
	phases, err := handler.references.ListPhases(page)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch phases")
	}
	return c.JSON(phases)
}

func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch phase")
	}
	phase, err := handler.references.GetPhase(id)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch phase")
	}
	return c.JSON(phase)
}

func (handler *Handler) CreatePhase(c *fiber.Ctx) error {
	payload := phasePayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to create phase")
	}
	phase, err := handler.references.CreatePhase(services.PhaseInput{Name: payload.Name})
	if err != nil {
		return handler.serviceError(c, err, "failed to create phase")
	}
	return c.Status(fiber.StatusCreated).JSON(phase)
}

func (handler *Handler) UpdatePhase(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to update phase")
	}
	payload := phasePatchPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to update phase")
	}
	phase, err := handler.references.UpdatePhase(id, services.PhasePatch{Name: payload.Name})
	if err != nil {
		return handler.serviceError(c, err, "failed to update phase")
	}
	return c.JSON(phase)
}

func (handler *Handler) DeletePhase(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete phase")
	}
	if err := handler.references.DeletePhase(id); err != nil {
		return handler.serviceError(c, err, "failed to delete phase")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
