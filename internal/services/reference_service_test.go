package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/logging"
	"github.com/terraincognita07/wavelength/internal/models"
)

func newReferenceServiceForTest(t *testing.T) (*ReferenceService, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "reference-test.db"), logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if _, err := db.SeedReferenceData(database, logging.Discard()); err != nil {
		t.Fatalf("seed reference data: %v", err)
	}

	repositories := db.NewRepositories(database)
	validator := NewReferenceValidator(repositories.Layers, repositories.Phases, repositories.Curriculum, repositories.Strategies)
	service := NewReferenceService(repositories.Layers, repositories.Phases, repositories.Curriculum, repositories.Strategies, validator)
	return service, repositories
}

func stringPtr(value string) *string {
	return &value
}

func uintPtr(value uint) *uint {
	return &value
}

func TestReferenceServiceCreateCurriculumRejectsMissingLayer(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	_, err := service.CreateCurriculum(CurriculumInput{
		LayerID:    999,
		PhaseID:    1,
		Dosage:     models.DosageMedicinal,
		Expression: "Curious",
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestReferenceServiceCreateCurriculumValidatesDosage(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	_, err := service.CreateCurriculum(CurriculumInput{
		LayerID:    1,
		PhaseID:    1,
		Dosage:     models.Dosage("Neutral"),
		Expression: "Calm",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReferenceServiceCurriculumLifecycle(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	created, err := service.CreateCurriculum(CurriculumInput{
		LayerID:    2,
		PhaseID:    3,
		Dosage:     models.DosageToxic,
		Expression: "  Restless  ",
	})
	if err != nil {
		t.Fatalf("CreateCurriculum() unexpected error: %v", err)
	}
	if created.ID == 0 || created.Expression != "Restless" {
		t.Fatalf("unexpected created curriculum %+v", created)
	}

	updated, err := service.UpdateCurriculum(created.ID, CurriculumPatch{Expression: stringPtr("Settled")})
	if err != nil {
		t.Fatalf("UpdateCurriculum() unexpected error: %v", err)
	}
	if updated.Expression != "Settled" || updated.LayerID != 2 || updated.Dosage != models.DosageToxic {
		t.Fatalf("expected partial update to keep other fields, got %+v", updated)
	}

	if _, err := service.UpdateCurriculum(created.ID, CurriculumPatch{PhaseID: uintPtr(77)}); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference for unknown phase, got %v", err)
	}

	if err := service.DeleteCurriculum(created.ID); err != nil {
		t.Fatalf("DeleteCurriculum() unexpected error: %v", err)
	}
	if _, err := service.GetCurriculum(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestReferenceServiceDeleteReferencedLayerIsConflict(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	if err := service.DeleteLayer(1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when deleting a referenced layer, got %v", err)
	}
	if _, err := service.GetLayer(1); err != nil {
		t.Fatalf("expected layer to survive a rejected delete, got %v", err)
	}
}

func TestReferenceServiceMissingRowsAreNotFound(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	if _, err := service.GetPhase(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.UpdateLayer(404, LayerPatch{Title: stringPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := service.DeleteStrategy(404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestReferenceServiceUpdatesLayerZero(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	updated, err := service.UpdateLayer(0, LayerPatch{Subtitle: stringPtr("(For Riding)")})
	if err != nil {
		t.Fatalf("UpdateLayer(0) unexpected error: %v", err)
	}
	if updated.ID != 0 || updated.Subtitle != "(For Riding)" || updated.Title != "SELF-CARE" {
		t.Fatalf("unexpected layer 0 after update %+v", updated)
	}

	if _, err := service.UpdateLayer(0, LayerPatch{Color: stringPtr("   ")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank color, got %v", err)
	}
}

func TestReferenceServiceStrategyColorLayerCanBeCleared(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	created, err := service.CreateStrategy(StrategyInput{
		Strategy:     "Cold water",
		LayerID:      0,
		PhaseID:      2,
		ColorLayerID: uintPtr(4),
	})
	if err != nil {
		t.Fatalf("CreateStrategy() unexpected error: %v", err)
	}

	if _, err := service.UpdateStrategy(created.ID, StrategyPatch{ColorLayerID: OptionalID{Set: true, Value: uintPtr(999)}}); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference for unknown color layer, got %v", err)
	}

	untouched, err := service.UpdateStrategy(created.ID, StrategyPatch{Strategy: stringPtr("Cold shower")})
	if err != nil {
		t.Fatalf("UpdateStrategy() unexpected error: %v", err)
	}
	if untouched.ColorLayerID == nil || *untouched.ColorLayerID != 4 {
		t.Fatalf("expected absent color_layer_id to be kept, got %v", untouched.ColorLayerID)
	}

	cleared, err := service.UpdateStrategy(created.ID, StrategyPatch{ColorLayerID: OptionalID{Set: true}})
	if err != nil {
		t.Fatalf("UpdateStrategy(clear) unexpected error: %v", err)
	}
	if cleared.ColorLayerID != nil {
		t.Fatalf("expected explicit null to clear color_layer_id, got %v", *cleared.ColorLayerID)
	}

	stored, err := service.GetStrategy(created.ID)
	if err != nil {
		t.Fatalf("GetStrategy() unexpected error: %v", err)
	}
	if stored.ColorLayerID != nil || stored.Strategy != "Cold shower" {
		t.Fatalf("unexpected stored strategy %+v", stored)
	}
}

func TestReferenceServiceListsCurriculumByFilter(t *testing.T) {
	service, _ := newReferenceServiceForTest(t)

	dosage := models.DosageMedicinal
	entries, err := service.ListCurriculum(db.CurriculumFilter{LayerID: uintPtr(1), Dosage: &dosage}, db.Page{Limit: 5})
	if err != nil {
		t.Fatalf("ListCurriculum() unexpected error: %v", err)
	}
	if len(entries) == 0 || len(entries) > 5 {
		t.Fatalf("expected between 1 and 5 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.LayerID != 1 || entry.Dosage != models.DosageMedicinal {
			t.Fatalf("filter leaked entry %+v", entry)
		}
	}
}
