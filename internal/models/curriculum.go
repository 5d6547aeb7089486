package models

type Dosage string

const (
	DosageMedicinal Dosage = "Medicinal"
	DosageToxic     Dosage = "Toxic"
)

func (dosage Dosage) Valid() bool {
	return dosage == DosageMedicinal || dosage == DosageToxic
}

type Curriculum struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	LayerID    uint   `gorm:"not null;index" json:"layer_id"`
	PhaseID    uint   `gorm:"not null;index" json:"phase_id"`
	Dosage     Dosage `gorm:"not null" json:"dosage"`
	Expression string `gorm:"not null" json:"expression"`

	Layer *Layer `gorm:"foreignKey:LayerID" json:"layer,omitempty"`
	Phase *Phase `gorm:"foreignKey:PhaseID" json:"phase,omitempty"`
}

func (Curriculum) TableName() string {
	return "curriculum"
}
