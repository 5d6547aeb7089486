package db

import (
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type PhaseRepository struct {
	database *gorm.DB
}

func NewPhaseRepository(database *gorm.DB) *PhaseRepository {
	return &PhaseRepository{database: database}
}

func (repo *PhaseRepository) List(page Page) ([]models.Phase, error) {
	phases := make([]models.Phase, 0)
	if err := applyPage(repo.database.Order("id ASC"), page).Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (repo *PhaseRepository) ListAll() ([]models.Phase, error) {
	phases := make([]models.Phase, 0)
	if err := repo.database.Order("id ASC").Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (repo *PhaseRepository) FindByID(phaseID uint) (models.Phase, error) {
	phase := models.Phase{}
	if err := repo.database.Where("id = ?", phaseID).First(&phase).Error; err != nil {
		return models.Phase{}, err
	}
	return phase, nil
}

func (repo *PhaseRepository) Exists(phaseID uint) (bool, error) {
	return existsByID(repo.database, &models.Phase{}, phaseID)
}

func (repo *PhaseRepository) Count() (int64, error) {
	return countAll(repo.database, &models.Phase{})
}

func (repo *PhaseRepository) Create(phase *models.Phase) error {
	return createRow(repo.database, phase)
}

func (repo *PhaseRepository) Update(phase *models.Phase) error {
	return updateRow(repo.database, &models.Phase{}, phase.ID, []string{"name"}, phase)
}

func (repo *PhaseRepository) Delete(phaseID uint) error {
	return deleteRow(repo.database, &models.Phase{}, phaseID)
}
