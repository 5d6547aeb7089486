package api

import (
	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/logging"
	"github.com/terraincognita07/wavelength/internal/metrics"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, options HandlerOptions) *Handler {
	handler := &Handler{
		db:       database,
		logger:   options.Logger,
		metrics:  options.Metrics,
		cache:    options.Cache,
		validate: newPayloadValidator(),
	}
	if handler.logger == nil {
		handler.logger = logging.Discard()
	}
	if handler.metrics == nil {
		handler.metrics = metrics.New()
	}
	if handler.cache == nil {
		handler.cache = cache.Noop{}
	}
	return handler.withDependencies(database)
}
