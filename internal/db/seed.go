package db

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures/*.yaml
var fixtureFiles embed.FS

type layerFixture struct {
	ID       uint   `yaml:"id"`
	Color    string `yaml:"color"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

type phaseFixture struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

type curriculumFixture struct {
	ID         uint   `yaml:"id"`
	LayerID    uint   `yaml:"layer_id"`
	PhaseID    uint   `yaml:"phase_id"`
	Dosage     string `yaml:"dosage"`
	Expression string `yaml:"expression"`
}

type strategyFixture struct {
	ID           uint   `yaml:"id"`
	Strategy     string `yaml:"strategy"`
	LayerID      uint   `yaml:"layer_id"`
	PhaseID      uint   `yaml:"phase_id"`
	ColorLayerID *uint  `yaml:"color_layer_id"`
}

type journalFixture struct {
	ID                    uint   `yaml:"id"`
	CreatedAt             string `yaml:"created_at"`
	UserID                uint   `yaml:"user_id"`
	CurriculumID          uint   `yaml:"curriculum_id"`
	SecondaryCurriculumID *uint  `yaml:"secondary_curriculum_id"`
	StrategyID            *uint  `yaml:"strategy_id"`
}

// SeedResult reports how many rows each seeded table received.
type SeedResult struct {
	Layers     int
	Phases     int
	Curriculum int
	Strategies int
	Journal    int
}

func (result SeedResult) Total() int {
	return result.Layers + result.Phases + result.Curriculum + result.Strategies + result.Journal
}

// SeedReferenceData fills every empty reference table from the embedded
// fixtures. Tables that already hold rows are left untouched.
//
// Rows are written with explicit ids through raw statements because layer 0
// is a real row and would otherwise be treated as an unset primary key.
func SeedReferenceData(database *gorm.DB, logger *logrus.Logger) (SeedResult, error) {
	result := SeedResult{}
	err := database.Transaction(func(tx *gorm.DB) error {
		var err error
		if result.Layers, err = seedLayers(tx); err != nil {
			return err
		}
		if result.Phases, err = seedPhases(tx); err != nil {
			return err
		}
		if result.Curriculum, err = seedCurriculum(tx); err != nil {
			return err
		}
		if result.Strategies, err = seedStrategies(tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logSeedResult(logger, "seeded reference data", result)
	return result, nil
}

// SeedSampleJournal loads the demo journal rows when the journal is empty.
func SeedSampleJournal(database *gorm.DB, logger *logrus.Logger) (SeedResult, error) {
	result := SeedResult{}
	err := database.Transaction(func(tx *gorm.DB) error {
		empty, err := tableIsEmpty(tx, "journal")
		if err != nil || !empty {
			return err
		}

		rows := make([]journalFixture, 0)
		if err := readFixture("sample_journal.yaml", &rows); err != nil {
			return err
		}
		for _, row := range rows {
			createdAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(row.CreatedAt))
			if err != nil {
				return fmt.Errorf("parse journal fixture %d created_at: %w", row.ID, err)
			}
			if err := tx.Exec(
				`INSERT INTO journal (id, created_at, user_id, curriculum_id, secondary_curriculum_id, strategy_id) VALUES (?, ?, ?, ?, ?, ?)`,
				row.ID,
				models.CanonicalUTC(createdAt),
				row.UserID,
				row.CurriculumID,
				row.SecondaryCurriculumID,
				row.StrategyID,
			).Error; err != nil {
				return fmt.Errorf("insert journal fixture %d: %w", row.ID, err)
			}
		}
		result.Journal = len(rows)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logSeedResult(logger, "seeded sample journal", result)
	return result, nil
}

func seedLayers(tx *gorm.DB) (int, error) {
	empty, err := tableIsEmpty(tx, "layers")
	if err != nil || !empty {
		return 0, err
	}

	rows := make([]layerFixture, 0)
	if err := readFixture("layers.yaml", &rows); err != nil {
		return 0, err
	}
	for _, row := range rows {
		if err := tx.Exec(
			`INSERT INTO layers (id, color, title, subtitle) VALUES (?, ?, ?, ?)`,
			row.ID, row.Color, row.Title, row.Subtitle,
		).Error; err != nil {
			return 0, fmt.Errorf("insert layer fixture %d: %w", row.ID, err)
		}
	}
	return len(rows), nil
}

func seedPhases(tx *gorm.DB) (int, error) {
	empty, err := tableIsEmpty(tx, "phases")
	if err != nil || !empty {
		return 0, err
	}

	rows := make([]phaseFixture, 0)
	if err := readFixture("phases.yaml", &rows); err != nil {
		return 0, err
	}
	for _, row := range rows {
		if err := tx.Exec(`INSERT INTO phases (id, name) VALUES (?, ?)`, row.ID, row.Name).Error; err != nil {
			return 0, fmt.Errorf("insert phase fixture %d: %w", row.ID, err)
		}
	}
	return len(rows), nil
}

func seedCurriculum(tx *gorm.DB) (int, error) {
	empty, err := tableIsEmpty(tx, "curriculum")
	if err != nil || !empty {
		return 0, err
	}

	rows := make([]curriculumFixture, 0)
	if err := readFixture("curriculum.yaml", &rows); err != nil {
		return 0, err
	}
	for _, row := range rows {
		dosage := models.Dosage(strings.TrimSpace(row.Dosage))
		if !dosage.Valid() {
			return 0, fmt.Errorf("curriculum fixture %d has unknown dosage %q", row.ID, row.Dosage)
		}
		if err := tx.Exec(
			`INSERT INTO curriculum (id, layer_id, phase_id, dosage, expression) VALUES (?, ?, ?, ?, ?)`,
			row.ID, row.LayerID, row.PhaseID, string(dosage), row.Expression,
		).Error; err != nil {
			return 0, fmt.Errorf("insert curriculum fixture %d: %w", row.ID, err)
		}
	}
	return len(rows), nil
}

func seedStrategies(tx *gorm.DB) (int, error) {
	empty, err := tableIsEmpty(tx, "strategies")
	if err != nil || !empty {
		return 0, err
	}

	rows := make([]strategyFixture, 0)
	if err := readFixture("strategies.yaml", &rows); err != nil {
		return 0, err
	}
	for _, row := range rows {
		if err := tx.Exec(
			`INSERT INTO strategies (id, strategy, layer_id, phase_id, color_layer_id) VALUES (?, ?, ?, ?, ?)`,
			row.ID, row.Strategy, row.LayerID, row.PhaseID, row.ColorLayerID,
		).Error; err != nil {
			return 0, fmt.Errorf("insert strategy fixture %d: %w", row.ID, err)
		}
	}
	return len(rows), nil
}

func readFixture(name string, target any) error {
	raw, err := fixtureFiles.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fixture %s: %w", name, err)
	}
	return nil
}

func tableIsEmpty(tx *gorm.DB, table string) (bool, error) {
	var count int64
	if err := tx.Table(table).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}

func logSeedResult(logger *logrus.Logger, message string, result SeedResult) {
	if logger == nil || result.Total() == 0 {
		return
	}
	logger.WithFields(logrus.Fields{
		"layers":     result.Layers,
		"phases":     result.Phases,
		"curriculum": result.Curriculum,
		"strategies": result.Strategies,
		"journal":    result.Journal,
	}).Info(message)
}
