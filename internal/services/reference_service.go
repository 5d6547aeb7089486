package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
)

type LayerStore interface {
	List(page db.Page) ([]models.Layer, error)
	FindByID(layerID uint) (models.Layer, error)
	Create(layer *models.Layer) error
	Update(layer *models.Layer) error
	Delete(layerID uint) error
}

type PhaseStore interface {
	List(page db.Page) ([]models.Phase, error)
	FindByID(phaseID uint) (models.Phase, error)
	Create(phase *models.Phase) error
	Update(phase *models.Phase) error
	Delete(phaseID uint) error
}

type CurriculumStore interface {
	List(filter db.CurriculumFilter, page db.Page) ([]models.Curriculum, error)
	FindByID(curriculumID uint) (models.Curriculum, error)
	Create(entry *models.Curriculum) error
	Update(entry *models.Curriculum) error
	Delete(curriculumID uint) error
}

type StrategyStore interface {
	List(filter db.StrategyFilter, page db.Page) ([]models.Strategy, error)
	FindByID(strategyID uint) (models.Strategy, error)
	Create(strategy *models.Strategy) error
	Update(strategy *models.Strategy) error
	Delete(strategyID uint) error
}

type ReferenceValidation interface {
	ValidateCurriculum(entry models.Curriculum) error
	ValidateStrategy(strategy models.Strategy) error
	ValidateJournal(entry models.Journal) error
}

type LayerInput struct {
	Color    string
	Title    string
	Subtitle string
}

type LayerPatch struct {
	Color    *string
	Title    *string
	Subtitle *string
}

type PhaseInput struct {
	Name string
}

type PhasePatch struct {
	Name *string
}

type CurriculumInput struct {
	LayerID    uint
	PhaseID    uint
	Dosage     models.Dosage
	Expression string
}

type CurriculumPatch struct {
	LayerID    *uint
	PhaseID    *uint
	Dosage     *models.Dosage
	Expression *string
}

type StrategyInput struct {
	Strategy     string
	LayerID      uint
	PhaseID      uint
	ColorLayerID *uint
}

type StrategyPatch struct {
	Strategy     *string
	LayerID      *uint
	PhaseID      *uint
	ColorLayerID OptionalID
}

// ReferenceService is the CRUD surface over layers, phases, curriculum and
// strategies.
type ReferenceService struct {
	layers     LayerStore
	phases     PhaseStore
	curriculum CurriculumStore
	strategies StrategyStore
	validator  ReferenceValidation
}

func NewReferenceService(
	layers LayerStore,
	phases PhaseStore,
	curriculum CurriculumStore,
	strategies StrategyStore,
	validator ReferenceValidation,
) *ReferenceService {
	return &ReferenceService{
		layers:     layers,
		phases:     phases,
		curriculum: curriculum,
		strategies: strategies,
		validator:  validator,
	}
}

func (service *ReferenceService) ListLayers(page db.Page) ([]models.Layer, error) {
	return service.layers.List(page)
}

func (service *ReferenceService) GetLayer(layerID uint) (models.Layer, error) {
	layer, err := service.layers.FindByID(layerID)
	if err != nil {
		return models.Layer{}, translateStoreError("layer", layerID, err)
	}
	return layer, nil
}

func (service *ReferenceService) CreateLayer(input LayerInput) (models.Layer, error) {
	layer := models.Layer{
		Color:    strings.TrimSpace(input.Color),
		Title:    strings.TrimSpace(input.Title),
		Subtitle: strings.TrimSpace(input.Subtitle),
	}
	if err := validateLayer(layer); err != nil {
		return models.Layer{}, err
	}
	if err := service.layers.Create(&layer); err != nil {
		return models.Layer{}, translateWriteError(err)
	}
	return layer, nil
}

func (service *ReferenceService) UpdateLayer(layerID uint, patch LayerPatch) (models.Layer, error) {
	layer, err := service.GetLayer(layerID)
	if err != nil {
		return models.Layer{}, err
	}
	applyString(&layer.Color, patch.Color)
	applyString(&layer.Title, patch.Title)
	applyString(&layer.Subtitle, patch.Subtitle)
	if err := validateLayer(layer); err != nil {
		return models.Layer{}, err
	}
	if err := service.layers.Update(&layer); err != nil {
		return models.Layer{}, translateStoreError("layer", layerID, translateWriteError(err))
	}
	return layer, nil
}

func (service *ReferenceService) DeleteLayer(layerID uint) error {
	return translateDeleteError("layer", layerID, service.layers.Delete(layerID))
}

func (service *ReferenceService) ListPhases(page db.Page) ([]models.Phase, error) {
	return service.phases.List(page)
}

func (service *ReferenceService) GetPhase(phaseID uint) (models.Phase, error) {
	phase, err := service.phases.FindByID(phaseID)
	if err != nil {
		return models.Phase{}, translateStoreError("phase", phaseID, err)
	}
	return phase, nil
}

func (service *ReferenceService) CreatePhase(input PhaseInput) (models.Phase, error) {
	phase := models.Phase{Name: strings.TrimSpace(input.Name)}
	if phase.Name == "" {
		return models.Phase{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := service.phases.Create(&phase); err != nil {
		return models.Phase{}, translateWriteError(err)
	}
	return phase, nil
}

func (service *ReferenceService) UpdatePhase(phaseID uint, patch PhasePatch) (models.Phase, error) {
	phase, err := service.GetPhase(phaseID)
	if err != nil {
		return models.Phase{}, err
	}
	applyString(&phase.Name, patch.Name)
	if phase.Name == "" {
		return models.Phase{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := service.phases.Update(&phase); err != nil {
		return models.Phase{}, translateStoreError("phase", phaseID, translateWriteError(err))
	}
	return phase, nil
}

func (service *ReferenceService) DeletePhase(phaseID uint) error {
	return translateDeleteError("phase", phaseID, service.phases.Delete(phaseID))
}

func (service *ReferenceService) ListCurriculum(filter db.CurriculumFilter, page db.Page) ([]models.Curriculum, error) {
	return service.curriculum.List(filter, page)
}

func (service *ReferenceService) GetCurriculum(curriculumID uint) (models.Curriculum, error) {
	entry, err := service.curriculum.FindByID(curriculumID)
	if err != nil {
		return models.Curriculum{}, translateStoreError("curriculum", curriculumID, err)
	}
	return entry, nil
}

func (service *ReferenceService) CreateCurriculum(input CurriculumInput) (models.Curriculum, error) {
	entry := models.Curriculum{
		LayerID:    input.LayerID,
		PhaseID:    input.PhaseID,
		Dosage:     input.Dosage,
		Expression: strings.TrimSpace(input.Expression),
	}
	if err := validateCurriculum(entry); err != nil {
		return models.Curriculum{}, err
	}
	if err := service.validator.ValidateCurriculum(entry); err != nil {
		return models.Curriculum{}, err
	}
	if err := service.curriculum.Create(&entry); err != nil {
		return models.Curriculum{}, translateWriteError(err)
	}
	return entry, nil
}

func (service *ReferenceService) UpdateCurriculum(curriculumID uint, patch CurriculumPatch) (models.Curriculum, error) {
	entry, err := service.GetCurriculum(curriculumID)
	if err != nil {
		return models.Curriculum{}, err
	}
	entry.Layer = nil
	entry.Phase = nil
	applyUint(&entry.LayerID, patch.LayerID)
	applyUint(&entry.PhaseID, patch.PhaseID)
	if patch.Dosage != nil {
		entry.Dosage = *patch.Dosage
	}
	applyString(&entry.Expression, patch.Expression)

	if err := validateCurriculum(entry); err != nil {
		return models.Curriculum{}, err
	}
	if patch.LayerID != nil || patch.PhaseID != nil {
		if err := service.validator.ValidateCurriculum(entry); err != nil {
			return models.Curriculum{}, err
		}
	}
	if err := service.curriculum.Update(&entry); err != nil {
		return models.Curriculum{}, translateStoreError("curriculum", curriculumID, translateWriteError(err))
	}
	return entry, nil
}

func (service *ReferenceService) DeleteCurriculum(curriculumID uint) error {
	return translateDeleteError("curriculum", curriculumID, service.curriculum.Delete(curriculumID))
}

func (service *ReferenceService) ListStrategies(filter db.StrategyFilter, page db.Page) ([]models.Strategy, error) {
	return service.strategies.List(filter, page)
}

func (service *ReferenceService) GetStrategy(strategyID uint) (models.Strategy, error) {
	strategy, err := service.strategies.FindByID(strategyID)
	if err != nil {
		return models.Strategy{}, translateStoreError("strategy", strategyID, err)
	}
	return strategy, nil
}

func (service *ReferenceService) CreateStrategy(input StrategyInput) (models.Strategy, error) {
	strategy := models.Strategy{
		Strategy:     strings.TrimSpace(input.Strategy),
		LayerID:      input.LayerID,
		PhaseID:      input.PhaseID,
		ColorLayerID: input.ColorLayerID,
	}
	if strategy.Strategy == "" {
		return models.Strategy{}, fmt.Errorf("%w: strategy is required", ErrValidation)
	}
	if err := service.validator.ValidateStrategy(strategy); err != nil {
		return models.Strategy{}, err
	}
	if err := service.strategies.Create(&strategy); err != nil {
		return models.Strategy{}, translateWriteError(err)
	}
	return strategy, nil
}

func (service *ReferenceService) UpdateStrategy(strategyID uint, patch StrategyPatch) (models.Strategy, error) {
	strategy, err := service.GetStrategy(strategyID)
	if err != nil {
		return models.Strategy{}, err
	}
	strategy.Layer = nil
	strategy.Phase = nil
	strategy.ColorLayer = nil
	applyString(&strategy.Strategy, patch.Strategy)
	applyUint(&strategy.LayerID, patch.LayerID)
	applyUint(&strategy.PhaseID, patch.PhaseID)
	patch.ColorLayerID.apply(&strategy.ColorLayerID)

	if strategy.Strategy == "" {
		return models.Strategy{}, fmt.Errorf("%w: strategy is required", ErrValidation)
	}
	if patch.LayerID != nil || patch.PhaseID != nil || patch.ColorLayerID.Set {
		if err := service.validator.ValidateStrategy(strategy); err != nil {
			return models.Strategy{}, err
		}
	}
	if err := service.strategies.Update(&strategy); err != nil {
		return models.Strategy{}, translateStoreError("strategy", strategyID, translateWriteError(err))
	}
	return strategy, nil
}

func (service *ReferenceService) DeleteStrategy(strategyID uint) error {
	return translateDeleteError("strategy", strategyID, service.strategies.Delete(strategyID))
}

func validateLayer(layer models.Layer) error {
	if layer.Color == "" {
		return fmt.Errorf("%w: color is required", ErrValidation)
	}
	if layer.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

func validateCurriculum(entry models.Curriculum) error {
	if !entry.Dosage.Valid() {
		return fmt.Errorf("%w: dosage must be one of Medicinal, Toxic", ErrValidation)
	}
	if entry.Expression == "" {
		return fmt.Errorf("%w: expression is required", ErrValidation)
	}
	return nil
}

func applyString(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}

func applyUint(target *uint, value *uint) {
	if value != nil {
		*target = *value
	}
}

func translateStoreError(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
	}
	return err
}

// translateWriteError maps a foreign key rejection on insert or update to
// ErrInvalidReference. It covers writes racing a concurrent delete.
func translateWriteError(err error) error {
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return err
}

func translateDeleteError(kind string, id uint, err error) error {
	if err == nil {
		return nil
	}
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s %d is still referenced", ErrConflict, kind, id)
	}
	return translateStoreError(kind, id, err)
}
