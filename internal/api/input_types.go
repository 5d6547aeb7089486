package api

import (
	"bytes"
	"encoding/json"

	"github.com/terraincognita07/wavelength/internal/services"
)

// nullableID tells an omitted key apart from an explicit null.
type nullableID struct {
	Set   bool
	Value *uint
}

func (id *nullableID) UnmarshalJSON(data []byte) error {
	id.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		id.Value = nil
		return nil
	}
	var value uint
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	id.Value = &value
	return nil
}

func (id nullableID) optional() services.OptionalID {
	return services.OptionalID{Set: id.Set, Value: id.Value}
}

type layerPayload struct {
	Color    string `json:"color" validate:"required,max=64"`
	Title    string `json:"title" validate:"required,max=128"`
	Subtitle string `json:"subtitle" validate:"max=128"`
}

type layerPatchPayload struct {
	Color    *string `json:"color" validate:"omitempty,min=1,max=64"`
	Title    *string `json:"title" validate:"omitempty,min=1,max=128"`
	Subtitle *string `json:"subtitle" validate:"omitempty,max=128"`
}

type phasePayload struct {
	Name string `json:"name" validate:"required,max=64"`
}

type phasePatchPayload struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=64"`
}

type curriculumPayload struct {
	LayerID    *uint  `json:"layer_id" validate:"required"`
	PhaseID    *uint  `json:"phase_id" validate:"required"`
	Dosage     string `json:"dosage" validate:"required,oneof=Medicinal Toxic"`
	Expression string `json:"expression" validate:"required,max=255"`
}

type curriculumPatchPayload struct {
	LayerID    *uint   `json:"layer_id"`
	PhaseID    *uint   `json:"phase_id"`
	Dosage     *string `json:"dosage" validate:"omitempty,oneof=Medicinal Toxic"`
	Expression *string `json:"expression" validate:"omitempty,min=1,max=255"`
}

type strategyPayload struct {
	Strategy     string `json:"strategy" validate:"required,max=255"`
	LayerID      *uint  `json:"layer_id" validate:"required"`
	PhaseID      *uint  `json:"phase_id" validate:"required"`
	ColorLayerID *uint  `json:"color_layer_id"`
}

type strategyPatchPayload struct {
	Strategy     *string    `json:"strategy" validate:"omitempty,min=1,max=255"`
	LayerID      *uint      `json:"layer_id"`
	PhaseID      *uint      `json:"phase_id"`
	ColorLayerID nullableID `json:"color_layer_id"`
}

type journalPayload struct {
	CreatedAt             *string `json:"created_at"`
	UserID                *uint   `json:"user_id" validate:"required"`
	CurriculumID          *uint   `json:"curriculum_id" validate:"required"`
	SecondaryCurriculumID *uint   `json:"secondary_curriculum_id"`
	StrategyID            *uint   `json:"strategy_id"`
}

type journalPatchPayload struct {
	CreatedAt             *string    `json:"created_at"`
	UserID                *uint      `json:"user_id"`
	CurriculumID          *uint      `json:"curriculum_id"`
	SecondaryCurriculumID nullableID `json:"secondary_curriculum_id"`
	StrategyID            nullableID `json:"strategy_id"`
}
