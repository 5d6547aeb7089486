package services

import (
	"context"
	"time"

	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/models"
)

type JournalStore interface {
	List(filter db.JournalFilter, page db.Page) ([]models.Journal, error)
	FindByID(journalID uint) (models.Journal, error)
	Create(entry *models.Journal) error
	Update(entry *models.Journal) error
	Delete(journalID uint) error
}

type AnalyticsInvalidator interface {
	InvalidateUser(ctx context.Context, userID uint)
}

type JournalWriteRecorder interface {
	RecordJournalWrite(operation string)
}

type JournalInput struct {
	CreatedAt             *time.Time
	UserID                uint
	CurriculumID          uint
	SecondaryCurriculumID *uint
	StrategyID            *uint
}

type JournalPatch struct {
	CreatedAt             *time.Time
	UserID                *uint
	CurriculumID          *uint
	SecondaryCurriculumID OptionalID
	StrategyID            OptionalID
}

type JournalService struct {
	entries     JournalStore
	validator   ReferenceValidation
	invalidator AnalyticsInvalidator
	recorder    JournalWriteRecorder
	now         func() time.Time
}

// NewJournalService builds the journal CRUD service. invalidator and
// recorder may be nil.
func NewJournalService(entries JournalStore, validator ReferenceValidation, invalidator AnalyticsInvalidator, recorder JournalWriteRecorder) *JournalService {
	return &JournalService{
		entries:     entries,
		validator:   validator,
		invalidator: invalidator,
		recorder:    recorder,
		now:         time.Now,
	}
}

func (service *JournalService) List(filter db.JournalFilter, page db.Page) ([]models.Journal, error) {
	return service.entries.List(filter, page)
}

func (service *JournalService) Get(journalID uint) (models.Journal, error) {
	entry, err := service.entries.FindByID(journalID)
	if err != nil {
		return models.Journal{}, translateStoreError("journal entry", journalID, err)
	}
	return entry, nil
}

func (service *JournalService) Create(ctx context.Context, input JournalInput) (models.Journal, error) {
	createdAt := service.now()
	if input.CreatedAt != nil {
		createdAt = *input.CreatedAt
	}

	entry := models.Journal{
		CreatedAt:             models.CanonicalUTC(createdAt),
		UserID:                input.UserID,
		CurriculumID:          input.CurriculumID,
		SecondaryCurriculumID: input.SecondaryCurriculumID,
		StrategyID:            input.StrategyID,
	}
	if err := service.validator.ValidateJournal(entry); err != nil {
		return models.Journal{}, err
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.Journal{}, translateWriteError(err)
	}

	service.afterWrite(ctx, "create", entry.UserID)
	return entry, nil
}

func (service *JournalService) Update(ctx context.Context, journalID uint, patch JournalPatch) (models.Journal, error) {
	entry, err := service.Get(journalID)
	if err != nil {
		return models.Journal{}, err
	}
	previousUserID := entry.UserID

	entry.Curriculum = nil
	entry.SecondaryCurriculum = nil
	entry.Strategy = nil
	if patch.CreatedAt != nil {
		entry.CreatedAt = models.CanonicalUTC(*patch.CreatedAt)
	}
	applyUint(&entry.UserID, patch.UserID)
	applyUint(&entry.CurriculumID, patch.CurriculumID)
	patch.SecondaryCurriculumID.apply(&entry.SecondaryCurriculumID)
	patch.StrategyID.apply(&entry.StrategyID)

	if patch.CurriculumID != nil || patch.SecondaryCurriculumID.Set || patch.StrategyID.Set {
		if err := service.validator.ValidateJournal(entry); err != nil {
			return models.Journal{}, err
		}
	}
	if err := service.entries.Update(&entry); err != nil {
		return models.Journal{}, translateStoreError("journal entry", journalID, translateWriteError(err))
	}

	service.afterWrite(ctx, "update", entry.UserID)
	if previousUserID != entry.UserID {
		service.afterWrite(ctx, "", previousUserID)
	}
	return entry, nil
}

func (service *JournalService) Delete(ctx context.Context, journalID uint) error {
	entry, err := service.Get(journalID)
	if err != nil {
		return err
	}
	if err := service.entries.Delete(journalID); err != nil {
		return translateDeleteError("journal entry", journalID, err)
	}

	service.afterWrite(ctx, "delete", entry.UserID)
	return nil
}

func (service *JournalService) afterWrite(ctx context.Context, operation string, userID uint) {
	if service.invalidator != nil {
		service.invalidator.InvalidateUser(ctx, userID)
	}
	if service.recorder != nil && operation != "" {
		service.recorder.RecordJournalWrite(operation)
	}
}
