package models

type Layer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Color    string `gorm:"not null" json:"color"`
	Title    string `gorm:"not null" json:"title"`
	Subtitle string `gorm:"not null" json:"subtitle"`
}

func (Layer) TableName() string {
	return "layers"
}
