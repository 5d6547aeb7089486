package db

import (
	"time"

	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type JournalFilter struct {
	UserID     *uint
	StrategyID *uint
	From       *time.Time
	To         *time.Time
}

type JournalRepository struct {
	database *gorm.DB
}

func NewJournalRepository(database *gorm.DB) *JournalRepository {
	return &JournalRepository{database: database}
}

func (repo *JournalRepository) List(filter JournalFilter, page Page) ([]models.Journal, error) {
	query := repo.database.Model(&models.Journal{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.StrategyID != nil {
		query = query.Where("strategy_id = ?", *filter.StrategyID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", models.CanonicalUTC(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", models.CanonicalUTC(*filter.To))
	}

	entries := make([]models.Journal, 0)
	if err := applyPage(query.Order("created_at DESC, id DESC"), page).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByID loads a journal entry with its curriculum and strategy references.
func (repo *JournalRepository) FindByID(journalID uint) (models.Journal, error) {
	entry := models.Journal{}
	if err := repo.database.
		Preload("Curriculum").
		Preload("SecondaryCurriculum").
		Preload("Strategy").
		Where("id = ?", journalID).
		First(&entry).Error; err != nil {
		return models.Journal{}, err
	}
	return entry, nil
}

func (repo *JournalRepository) Count() (int64, error) {
	return countAll(repo.database, &models.Journal{})
}

func (repo *JournalRepository) Create(entry *models.Journal) error {
	entry.CreatedAt = models.CanonicalUTC(entry.CreatedAt)
	return createRow(repo.database, entry)
}

func (repo *JournalRepository) Update(entry *models.Journal) error {
	entry.CreatedAt = models.CanonicalUTC(entry.CreatedAt)
	return updateRow(
		repo.database,
		&models.Journal{},
		entry.ID,
		[]string{"created_at", "user_id", "curriculum_id", "secondary_curriculum_id", "strategy_id"},
		entry,
	)
}

func (repo *JournalRepository) Delete(journalID uint) error {
	return deleteRow(repo.database, &models.Journal{}, journalID)
}

// ListFactsByUserRange returns the user's entries in [start, end] flattened
// with the layer, phase and dosage of their primary curriculum, newest first.
func (repo *JournalRepository) ListFactsByUserRange(userID uint, start time.Time, end time.Time) ([]models.JournalFact, error) {
	facts := make([]models.JournalFact, 0)
	err := repo.database.
		Table("journal").
		Select(
			"journal.id AS id",
			"journal.created_at AS created_at",
			"journal.curriculum_id AS curriculum_id",
			"journal.secondary_curriculum_id AS secondary_curriculum_id",
			"journal.strategy_id AS strategy_id",
			"curriculum.layer_id AS layer_id",
			"curriculum.phase_id AS phase_id",
			"curriculum.dosage AS dosage",
		).
		Joins("JOIN curriculum ON curriculum.id = journal.curriculum_id").
		Where(
			"journal.user_id = ? AND journal.created_at >= ? AND journal.created_at <= ?",
			userID,
			models.CanonicalUTC(start),
			models.CanonicalUTC(end),
		).
		Order("journal.created_at DESC, journal.id DESC").
		Scan(&facts).Error
	if err != nil {
		return nil, err
	}
	return facts, nil
}

type journalUserRow struct {
	UserID uint  `gorm:"column:user_id"`
	Count  int64 `gorm:"column:entries"`
}

// CountByUser reports the number of journal entries per user id.
func (repo *JournalRepository) CountByUser() (map[uint]int64, error) {
	rows := make([]journalUserRow, 0)
	if err := repo.database.
		Table("journal").
		Select("user_id, COUNT(*) AS entries").
		Group("user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
