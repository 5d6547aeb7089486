package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/wavelength/internal/cache"
	"github.com/terraincognita07/wavelength/internal/db"
	"github.com/terraincognita07/wavelength/internal/metrics"
	"github.com/terraincognita07/wavelength/internal/services"
	"gorm.io/gorm"
)

const (
	apiPrefix            = "/api/v1"
	catalogCacheControl  = "public, max-age=3600"
	contextRequestIDKey  = "requestid"
	rateLimitRetryAfter  = "1"
	defaultCORSAllowList = "*"
)

type Handler struct {
	db       *gorm.DB
	logger   *logrus.Logger
	metrics  *metrics.Metrics
	cache    cache.Cache
	validate *validator.Validate

	repositories *db.Repositories
	references   *services.ReferenceService
	journal      *services.JournalService
	analytics    *services.AnalyticsService
	catalog      *services.CatalogService
}

// HandlerOptions carries the shared infrastructure of a server. Zero values
// fall back to a discarding logger, a private metrics registry and no cache.
type HandlerOptions struct {
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Cache   cache.Cache
}

type AppConfig struct {
	CORSAllowOrigins string
	RateLimitRPS     float64
	RateLimitBurst   int
}
