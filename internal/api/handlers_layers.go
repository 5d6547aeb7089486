package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/services"
)

func (handler *Handler) ListLayers(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch layers")
	}
	layers, err := handler.references.ListLayers(page)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch layers")
	}
	return c.JSON(layers)
}

func (handler *Handler) GetLayer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch layer")
	}
	layer, err := handler.references.GetLayer(id)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch layer")
	}
	return c.JSON(layer)
}

func (handler *Handler) CreateLayer(c *fiber.Ctx) error {
	payload := layerPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to create layer")
	}
	layer, err := handler.references.CreateLayer(services.LayerInput{
		Color:    payload.Color,
		Title:    payload.Title,
		Subtitle: payload.Subtitle,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to create layer")
	}
	return c.Status(fiber.StatusCreated).JSON(layer)
}

func (handler *Handler) UpdateLayer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to update layer")
	}
	payload := layerPatchPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to update layer")
	}
	layer, err := handler.references.UpdateLayer(id, services.LayerPatch{
		Color:    payload.Color,
		Title:    payload.Title,
		Subtitle: payload.Subtitle,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to update layer")
	}
	return c.JSON(layer)
}

func (handler *Handler) DeleteLayer(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete layer")
	}
	if err := handler.references.DeleteLayer(id); err != nil {
		return handler.serviceError(c, err, "failed to delete layer")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
