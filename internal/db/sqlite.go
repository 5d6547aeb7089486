package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

func OpenSQLite(dbPath string, logger *logrus.Logger) (*gorm.DB, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			logger,
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		NowFunc: func() time.Time {
			return models.CanonicalUTC(time.Now())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if dbPath == memoryPath {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("open sql db: %w", err)
		}
		// every pooled connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := applyEmbeddedMigrations(database, logger); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}
