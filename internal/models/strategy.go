package models

type Strategy struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Strategy string `gorm:"not null" json:"strategy"`
	LayerID  uint   `gorm:"not null;index" json:"layer_id"`
	PhaseID  uint   `gorm:"not null;index" json:"phase_id"`
	// ColorLayerID points at the layer whose color the strategy is rendered
	// with when it differs from the content layer.
	ColorLayerID *uint `json:"color_layer_id"`

	Layer      *Layer `gorm:"foreignKey:LayerID" json:"layer,omitempty"`
	Phase      *Phase `gorm:"foreignKey:PhaseID" json:"phase,omitempty"`
	ColorLayer *Layer `gorm:"foreignKey:ColorLayerID" json:"color_layer,omitempty"`
}

func (Strategy) TableName() string {
	return "strategies"
}

// EffectiveColorLayerID returns the layer that provides the display color.
func (strategy Strategy) EffectiveColorLayerID() uint {
	if strategy.ColorLayerID != nil {
		return *strategy.ColorLayerID
	}
	return strategy.LayerID
}
