package db

import (
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type LayerRepository struct {
	database *gorm.DB
}

func NewLayerRepository(database *gorm.DB) *LayerRepository {
	return &LayerRepository{database: database}
}

func (repo *LayerRepository) List(page Page) ([]models.Layer, error) {
	layers := make([]models.Layer, 0)
	if err := applyPage(repo.database.Order("id ASC"), page).Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

func (repo *LayerRepository) ListAll() ([]models.Layer, error) {
	layers := make([]models.Layer, 0)
	if err := repo.database.Order("id ASC").Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

func (repo *LayerRepository) FindByID(layerID uint) (models.Layer, error) {
	layer := models.Layer{}
	if err := repo.database.Where("id = ?", layerID).First(&layer).Error; err != nil {
		return models.Layer{}, err
	}
	return layer, nil
}

func (repo *LayerRepository) Exists(layerID uint) (bool, error) {
	return existsByID(repo.database, &models.Layer{}, layerID)
}

func (repo *LayerRepository) Count() (int64, error) {
	return countAll(repo.database, &models.Layer{})
}

func (repo *LayerRepository) Create(layer *models.Layer) error {
	return createRow(repo.database, layer)
}

func (repo *LayerRepository) Update(layer *models.Layer) error {
	return updateRow(repo.database, &models.Layer{}, layer.ID, []string{"color", "title", "subtitle"}, layer)
}

func (repo *LayerRepository) Delete(layerID uint) error {
	return deleteRow(repo.database, &models.Layer{}, layerID)
}
