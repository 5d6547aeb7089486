package db

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/wavelength/internal/logging"
	"gorm.io/gorm"
)

func openSeededTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database := openSQLiteForMigrationBootstrapTest(t, filepath.Join(t.TempDir(), "wavelength-test.db"))
	if _, err := SeedReferenceData(database, logging.Discard()); err != nil {
		t.Fatalf("seed reference data: %v", err)
	}
	return database
}

func uintPtr(value uint) *uint {
	return &value
}
