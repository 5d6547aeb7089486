package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/services"
)

func (handler *Handler) ListJournal(c *fiber.Ctx) error {
	filter, page, err := parseJournalListQuery(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch journal entries")
	}
	entries, err := handler.journal.List(filter, page)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch journal entries")
	}
	return c.JSON(entries)
}

func parseJournalListQuery(c *fiber.Ctx) (db.JournalFilter, db.Page, error) {
	page, err := parsePage(c)
	if err != nil {
		return db.JournalFilter{}, db.Page{}, err
	}
	userID, err := parseOptionalUintQuery(c, "user_id")
	if err != nil {
		return db.JournalFilter{}, db.Page{}, err
	}
	strategyID, err := parseOptionalUintQuery(c, "strategy_id")
	if err != nil {
		return db.JournalFilter{}, db.Page{}, err
	}
	from, err := parseOptionalTimeQuery(c, "from")
	if err != nil {
		return db.JournalFilter{}, db.Page{}, err
	}
	to, err := parseOptionalTimeQuery(c, "to")
	if err != nil {
		return db.JournalFilter{}, db.Page{}, err
	}
	return db.JournalFilter{UserID: userID, StrategyID: strategyID, From: from, To: to}, page, nil
}

func (handler *Handler) GetJournal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch journal entry")
	}
	entry, err := handler.journal.Get(id)
	if err != nil {
		return handler.serviceError(c, err, "failed to fetch journal entry")
	}
	return c.JSON(entry)
}

func (handler *Handler) CreateJournal(c *fiber.Ctx) error {
	payload := journalPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to create journal entry")
	}
	createdAt, err := parseTimestampField("created_at", payload.CreatedAt)
	if err != nil {
		return handler.serviceError(c, err, "failed to create journal entry")
	}

	entry, err := handler.journal.Create(c.UserContext(), services.JournalInput{
		CreatedAt:             createdAt,
		UserID:                *payload.UserID,
		CurriculumID:          *payload.CurriculumID,
		SecondaryCurriculumID: payload.SecondaryCurriculumID,
		StrategyID:            payload.StrategyID,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to create journal entry")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateJournal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to update journal entry")
	}
	payload := journalPatchPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return handler.serviceError(c, err, "failed to update journal entry")
	}
	createdAt, err := parseTimestampField("created_at", payload.CreatedAt)
	if err != nil {
		return handler.serviceError(c, err, "failed to update journal entry")
	}

	entry, err := handler.journal.Update(c.UserContext(), id, services.JournalPatch{
		CreatedAt:             createdAt,
		UserID:                payload.UserID,
		CurriculumID:          payload.CurriculumID,
		SecondaryCurriculumID: payload.SecondaryCurriculumID.optional(),
		StrategyID:            payload.StrategyID.optional(),
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to update journal entry")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteJournal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return handler.serviceError(c, err, "failed to delete journal entry")
	}
	if err := handler.journal.Delete(c.UserContext(), id); err != nil {
		return handler.serviceError(c, err, "failed to delete journal entry")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
