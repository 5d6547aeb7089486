package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type Repositories struct {
	Layers     *LayerRepository
	Phases     *PhaseRepository
	Curriculum *CurriculumRepository
	Strategies *StrategyRepository
	Journals   *JournalRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Layers:     NewLayerRepository(database),
		Phases:     NewPhaseRepository(database),
		Curriculum: NewCurriculumRepository(database),
		Strategies: NewStrategyRepository(database),
		Journals:   NewJournalRepository(database),
	}
}

// Page is an offset window over an ordered listing.
type Page struct {
	Limit  int
	Offset int
}

func (page Page) normalized() Page {
	if page.Limit <= 0 {
		page.Limit = DefaultPageLimit
	}
	if page.Limit > MaxPageLimit {
		page.Limit = MaxPageLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

func applyPage(query *gorm.DB, page Page) *gorm.DB {
	page = page.normalized()
	return query.Limit(page.Limit).Offset(page.Offset)
}

// IsForeignKeyViolation reports whether err came from a foreign key
// constraint rejecting a write or a delete.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func existsByID(database *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := database.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func countAll(database *gorm.DB, model any) (int64, error) {
	var count int64
	if err := database.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func createRow(database *gorm.DB, value any) error {
	return database.Omit(clause.Associations).Create(value).Error
}

// updateRow writes the listed columns of value to the row with the given id.
// Rows are matched by an explicit id condition so that id 0 is addressable.
func updateRow(database *gorm.DB, model any, id uint, columns []string, value any) error {
	result := database.Model(model).Where("id = ?", id).Select(columns).Updates(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteRow(database *gorm.DB, model any, id uint) error {
	result := database.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
