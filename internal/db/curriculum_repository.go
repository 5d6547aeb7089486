package db

import (
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type CurriculumFilter struct {
	LayerID *uint
	PhaseID *uint
	Dosage  *models.Dosage
}

type CurriculumRepository struct {
	database *gorm.DB
}

func NewCurriculumRepository(database *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{database: database}
}

func (repo *CurriculumRepository) List(filter CurriculumFilter, page Page) ([]models.Curriculum, error) {
	query := repo.database.Model(&models.Curriculum{})
	if filter.LayerID != nil {
		query = query.Where("layer_id = ?", *filter.LayerID)
	}
	if filter.PhaseID != nil {
		query = query.Where("phase_id = ?", *filter.PhaseID)
	}
	if filter.Dosage != nil {
		query = query.Where("dosage = ?", *filter.Dosage)
	}

	entries := make([]models.Curriculum, 0)
	if err := applyPage(query.Order("id ASC"), page).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CurriculumRepository) ListAll() ([]models.Curriculum, error) {
	entries := make([]models.Curriculum, 0)
	if err := repo.database.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CurriculumRepository) ListByIDs(ids []uint) ([]models.Curriculum, error) {
	entries := make([]models.Curriculum, 0)
	if len(ids) == 0 {
		return entries, nil
	}
	if err := repo.database.Where("id IN ?", ids).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByID loads a curriculum entry together with its layer and phase.
func (repo *CurriculumRepository) FindByID(curriculumID uint) (models.Curriculum, error) {
	entry := models.Curriculum{}
	if err := repo.database.
		Preload("Layer").
		Preload("Phase").
		Where("id = ?", curriculumID).
		First(&entry).Error; err != nil {
		return models.Curriculum{}, err
	}
	return entry, nil
}

func (repo *CurriculumRepository) Exists(curriculumID uint) (bool, error) {
	return existsByID(repo.database, &models.Curriculum{}, curriculumID)
}

func (repo *CurriculumRepository) Count() (int64, error) {
	return countAll(repo.database, &models.Curriculum{})
}

func (repo *CurriculumRepository) Create(entry *models.Curriculum) error {
	return createRow(repo.database, entry)
}

func (repo *CurriculumRepository) Update(entry *models.Curriculum) error {
	return updateRow(
		repo.database,
		&models.Curriculum{},
		entry.ID,
		[]string{"layer_id", "phase_id", "dosage", "expression"},
		entry,
	)
}

func (repo *CurriculumRepository) Delete(curriculumID uint) error {
	return deleteRow(repo.database, &models.Curriculum{}, curriculumID)
}
