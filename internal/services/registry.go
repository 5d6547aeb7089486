package services

import (
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/db"
)

// Instrumentation receives analytics cache and journal write signals.
type Instrumentation interface {
	AnalyticsObserver
	JournalWriteRecorder
}

// Registry wires every service over one set of repositories so that the
// HTTP handler, the MCP server and the CLI share a single construction path.
type Registry struct {
	References *ReferenceService
	Journal    *JournalService
	Analytics  *AnalyticsService
	Catalog    *CatalogService
}

// NewRegistry builds the services. cacheStore and instrumentation may be nil.
func NewRegistry(repositories *db.Repositories, cacheStore AnalyticsCache, instrumentation Instrumentation, logger *logrus.Logger) *Registry {
	validator := NewReferenceValidator(repositories.Layers, repositories.Phases, repositories.Curriculum, repositories.Strategies)

	var observer AnalyticsObserver
	var recorder JournalWriteRecorder
	if instrumentation != nil {
		observer = instrumentation
		recorder = instrumentation
	}

	analytics := NewAnalyticsService(repositories.Journals, repositories.Curriculum, repositories.Strategies, cacheStore, observer, logger)
	return &Registry{
		References: NewReferenceService(repositories.Layers, repositories.Phases, repositories.Curriculum, repositories.Strategies, validator),
		Journal:    NewJournalService(repositories.Journals, validator, analytics, recorder),
		Analytics:  analytics,
		Catalog:    NewCatalogService(repositories.Layers, repositories.Phases, repositories.Curriculum, repositories.Strategies),
	}
}
