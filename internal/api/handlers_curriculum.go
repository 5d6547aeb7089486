package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/models"
	"github.com/terraincognita07/wavelength/internal/services"
)

func (handler *Handler) ListCurriculum(c *fiber.Ctx) error {
	filter, page, err := parseCurriculumListQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch curriculum")
	}
	entries, err := handler.references.ListCurriculum(filter, page)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch curriculum")
	}
	return c.JSON(entries)
}

func parseCurriculumListQuery(c *fiber.Ctx) (db.CurriculumFilter, db.Page, error) {
	page, err := parsePage(c)
	if err != nil {
		return db.CurriculumFilter{}, db.Page{}, err
	}
	layerID, err := parseOptionalUintQuery(c, "layer_id")
	if err != nil {
		return db.CurriculumFilter{}, db.Page{}, err
	}
	phaseID, err := parseOptionalUintQuery(c, "phase_id")
	if err != nil {
		return db.CurriculumFilter{}, db.Page{}, err
	}
	dosage, err := parseDosageQuery(c)
	if err != nil {
		return db.CurriculumFilter{}, db.Page{}, err
	}
	return db.CurriculumFilter{LayerID: layerID, PhaseID: phaseID, Dosage: dosage}, page, nil
}

func (handler *Handler) GetCurriculum(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch curriculum")
	}
	entry, err := handler.references.GetCurriculum(id)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch curriculum")
	}
	return c.JSON(entry)
}

func (handler *Handler) CreateCurriculum(c *fiber.Ctx) error {
	payload := curriculumPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to create curriculum")
	}
	entry, err := handler.references.CreateCurriculum(services.CurriculumInput{
		LayerID:    *payload.LayerID,
		PhaseID:    *payload.PhaseID,
		Dosage:     models.Dosage(payload.Dosage),
		Expression: payload.Expression,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to create curriculum")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateCurriculum(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to update curriculum")
	}
	payload := curriculumPatchPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to update curriculum")
	}

	patch := services.CurriculumPatch{
		LayerID:    payload.LayerID,
		PhaseID:    payload.PhaseID,
		Expression: payload.Expression,
	}
	if payload.Dosage != nil {
		dosage := models.Dosage(*payload.Dosage)
		patch.Dosage = &dosage
	}

	entry, err := handler.references.UpdateCurriculum(id, patch)
	if err != nil {
		return handler.serviceError(c, err, "failed to update curriculum")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteCurriculum(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete curriculum")
	}
	if err := handler.references.DeleteCurriculum(id); err != nil {
		return handler.serviceError(c, err, "failed to delete curriculum")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
