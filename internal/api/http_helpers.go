package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/models"
	"github.com/terraincognita07/wavelength/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinels to their HTTP status. Anything
// unrecognized is logged and answered with fallback as a 500.
func (handler *Handler) serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidWindow):
		return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidReference):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoJournalEntries):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		handler.logger.WithError(err).WithFields(map[string]any{
			"request_id": requestID(c),
			"route":      c.Route().Path,
		}).Error(fallback)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func invalidQuery(name string, detail string) error {
	return fmt.Errorf("%w: %s %s", services.ErrValidation, name, detail)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return 0, invalidQuery("id", "must be a non-negative integer")
	}
	return uint(id), nil
}

func parsePage(c *fiber.Ctx) (db.Page, error) {
	page := db.Page{Limit: db.DefaultPageLimit}

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > db.MaxPageLimit {
			return db.Page{}, invalidQuery("limit", fmt.Sprintf("must be between 1 and %d", db.MaxPageLimit))
		}
		page.Limit = limit
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return db.Page{}, invalidQuery("offset", "must be a non-negative integer")
		}
		page.Offset = offset
	}
	return page, nil
}

func parseOptionalUintQuery(c *fiber.Ctx, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, invalidQuery(name, "must be a non-negative integer")
	}
	parsed := uint(value)
	return &parsed, nil
}

func parseRequiredUintQuery(c *fiber.Ctx, name string) (uint, error) {
	value, err := parseOptionalUintQuery(c, name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		return 0, invalidQuery(name, "is required")
	}
	return *value, nil
}

func parseOptionalTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	parsed, err := services.ParseTimestamp(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &parsed, nil
}

func parseDosageQuery(c *fiber.Ctx) (*models.Dosage, error) {
	raw := strings.TrimSpace(c.Query("dosage"))
	if raw == "" {
		return nil, nil
	}
	dosage := models.Dosage(raw)
	if !dosage.Valid() {
		return nil, invalidQuery("dosage", "must be one of Medicinal, Toxic")
	}
	return &dosage, nil
}

func parseTimestampField(name string, raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	parsed, err := services.ParseTimestamp(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &parsed, nil
}
