package models

import "strings"

type Phase struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Phase) TableName() string {
	return "phases"
}

// PhaseOrder is the canonical display order of phases, independent of their ids.
var PhaseOrder = []string{
	"Rising",
	"Peaking",
	"Withdrawal",
	"Diminishing",
	"Bottoming Out",
	"Restoration",
}

// PhaseOrderIndex returns the display position of a phase name, or -1 when the
// name is not one of the canonical phases.
func PhaseOrderIndex(name string) int {
	normalized := strings.TrimSpace(name)
	for index, candidate := range PhaseOrder {
		if strings.EqualFold(candidate, normalized) {
			return index
		}
	}
	return -1
}
