package api

import (
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)

	registry := services.NewRegistry(handler.repositories, handler.cache, handler.metrics, handler.logger)
	handler.references = registry.References
	handler.journal = registry.Journal
	handler.analytics = registry.Analytics
	handler.catalog = registry.Catalog
	return handler
}
