package services

import (
	"fmt"

	"github.com/terraincognita07/wavelength/internal/models"
)

type ReferenceChecker interface {
	Exists(id uint) (bool, error)
}

// ReferenceValidator is the single check run before any create or update
// that sets a foreign key. Missing targets surface as ErrInvalidReference.
type ReferenceValidator struct {
	layers     ReferenceChecker
	phases     ReferenceChecker
	curriculum ReferenceChecker
	strategies ReferenceChecker
}

func NewReferenceValidator(layers ReferenceChecker, phases ReferenceChecker, curriculum ReferenceChecker, strategies ReferenceChecker) *ReferenceValidator {
	return &ReferenceValidator{
		layers:     layers,
		phases:     phases,
		curriculum: curriculum,
		strategies: strategies,
	}
}

func (validator *ReferenceValidator) ValidateCurriculum(entry models.Curriculum) error {
	if err := checkReference(validator.layers, "layer_id", entry.LayerID); err != nil {
		return err
	}
	return checkReference(validator.phases, "phase_id", entry.PhaseID)
}

func (validator *ReferenceValidator) ValidateStrategy(strategy models.Strategy) error {
	if err := checkReference(validator.layers, "layer_id", strategy.LayerID); err != nil {
		return err
	}
	if err := checkReference(validator.phases, "phase_id", strategy.PhaseID); err != nil {
		return err
	}
	if strategy.ColorLayerID != nil {
		return checkReference(validator.layers, "color_layer_id", *strategy.ColorLayerID)
	}
	return nil
}

func (validator *ReferenceValidator) ValidateJournal(entry models.Journal) error {
	if err := checkReference(validator.curriculum, "curriculum_id", entry.CurriculumID); err != nil {
		return err
	}
	if entry.SecondaryCurriculumID != nil {
		if err := checkReference(validator.curriculum, "secondary_curriculum_id", *entry.SecondaryCurriculumID); err != nil {
			return err
		}
	}
	if entry.StrategyID != nil {
		return checkReference(validator.strategies, "strategy_id", *entry.StrategyID)
	}
	return nil
}

func checkReference(checker ReferenceChecker, field string, id uint) error {
	exists, err := checker.Exists(id)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s %d does not exist", ErrInvalidReference, field, id)
	}
	return nil
}
