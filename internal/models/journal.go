package models

import "time"

type Journal struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time `gorm:"not null;index" json:"created_at"`
	UserID                uint      `gorm:"not null;index" json:"user_id"`
	CurriculumID          uint      `gorm:"not null" json:"curriculum_id"`
	SecondaryCurriculumID *uint     `json:"secondary_curriculum_id"`
	StrategyID            *uint     `json:"strategy_id"`

	Curriculum          *Curriculum `gorm:"foreignKey:CurriculumID" json:"curriculum,omitempty"`
	SecondaryCurriculum *Curriculum `gorm:"foreignKey:SecondaryCurriculumID" json:"secondary_curriculum,omitempty"`
	Strategy            *Strategy   `gorm:"foreignKey:StrategyID" json:"strategy,omitempty"`
}

func (Journal) TableName() string {
	return "journal"
}

// JournalFact is a journal row flattened with the dimensions of its primary
// curriculum. Analytics run over facts instead of preloaded object graphs.
type JournalFact struct {
	ID                    uint      `gorm:"column:id"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	CurriculumID          uint      `gorm:"column:curriculum_id"`
	SecondaryCurriculumID *uint     `gorm:"column:secondary_curriculum_id"`
	StrategyID            *uint     `gorm:"column:strategy_id"`
	LayerID               uint      `gorm:"column:layer_id"`
	PhaseID               uint      `gorm:"column:phase_id"`
	Dosage                Dosage    `gorm:"column:dosage"`
}
