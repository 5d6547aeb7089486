package db

import (
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type StrategyFilter struct {
	LayerID *uint
	PhaseID *uint
}

type StrategyRepository struct {
	database *gorm.DB
}

func NewStrategyRepository(database *gorm.DB) *StrategyRepository {
	return &StrategyRepository{database: database}
}

func (repo *StrategyRepository) List(filter StrategyFilter, page Page) ([]models.Strategy, error) {
	query := repo.database.Model(&models.Strategy{})
	if filter.LayerID != nil {
		query = query.Where("layer_id = ?", *filter.LayerID)
	}
	if filter.PhaseID != nil {
		query = query.Where("phase_id = ?", *filter.PhaseID)
	}

	strategies := make([]models.Strategy, 0)
	if err := applyPage(query.Order("id ASC"), page).Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (repo *StrategyRepository) ListAll() ([]models.Strategy, error) {
	strategies := make([]models.Strategy, 0)
	if err := repo.database.Order("id ASC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (repo *StrategyRepository) ListByIDs(ids []uint) ([]models.Strategy, error) {
	strategies := make([]models.Strategy, 0)
	if len(ids) == 0 {
		return strategies, nil
	}
	if err := repo.database.Where("id IN ?", ids).Order("id ASC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (repo *StrategyRepository) FindByID(strategyID uint) (models.Strategy, error) {
	strategy := models.Strategy{}
	if err := repo.database.
		Preload("Layer").
		Preload("Phase").
		Preload("ColorLayer").
		Where("id = ?", strategyID).
		First(&strategy).Error; err != nil {
		return models.Strategy{}, err
	}
	return strategy, nil
}

func (repo *StrategyRepository) Exists(strategyID uint) (bool, error) {
	return existsByID(repo.database, &models.Strategy{}, strategyID)
}

func (repo *StrategyRepository) Count() (int64, error) {
	return countAll(repo.database, &models.Strategy{})
}

func (repo *StrategyRepository) Create(strategy *models.Strategy) error {
	return createRow(repo.database, strategy)
}

func (repo *StrategyRepository) Update(strategy *models.Strategy) error {
	return updateRow(
		repo.database,
		&models.Strategy{},
		strategy.ID,
		[]string{"strategy", "layer_id", "phase_id", "color_layer_id"},
		strategy,
	)
}

func (repo *StrategyRepository) Delete(strategyID uint) error {
	return deleteRow(repo.database, &models.Strategy{}, strategyID)
}
