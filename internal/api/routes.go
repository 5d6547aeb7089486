package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type resourceRoutes struct {
	list   fiber.Handler
	create fiber.Handler
	get    fiber.Handler
	update fiber.Handler
	remove fiber.Handler
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	v1 := app.Group(apiPrefix)

	registerResource(v1, []string{"/layer", "/layers"}, resourceRoutes{
		list:   handler.ListLayers,
		create: handler.CreateLayer,
		get:    handler.GetLayer,
		update: handler.UpdateLayer,
		remove: handler.DeleteLayer,
	})
	registerResource(v1, []string{"/phase", "/phases"}, resourceRoutes{
		list:   handler.ListPhases,
		create: handler.CreatePhase,
		get:    handler.GetPhase,
		update: handler.UpdatePhase,
		remove: handler.DeletePhase,
	})
	registerResource(v1, []string{"/curriculum"}, resourceRoutes{
		list:   handler.ListCurriculum,
		create: handler.CreateCurriculum,
		get:    handler.GetCurriculum,
		update: handler.UpdateCurriculum,
		remove: handler.DeleteCurriculum,
	})
	registerResource(v1, []string{"/strategy", "/strategies"}, resourceRoutes{
		list:   handler.ListStrategies,
		create: handler.CreateStrategy,
		get:    handler.GetStrategy,
		update: handler.UpdateStrategy,
		remove: handler.DeleteStrategy,
	})
	registerResource(v1, []string{"/journal"}, resourceRoutes{
		list:   handler.ListJournal,
		create: handler.CreateJournal,
		get:    handler.GetJournal,
		update: handler.UpdateJournal,
		remove: handler.DeleteJournal,
	})

	v1.Get("/catalog", handler.GetCatalog)

	analytics := v1.Group("/analytics")
	analytics.Get("/overview", handler.GetAnalyticsOverview)
	analytics.Get("/emotional-landscape", handler.GetEmotionalLandscape)
	analytics.Get("/self-care", handler.GetSelfCareAnalytics)
	analytics.Get("/temporal", handler.GetTemporalPatterns)
	analytics.Get("/growth", handler.GetGrowthIndicators)
}

func registerResource(router fiber.Router, paths []string, routes resourceRoutes) {
	for _, path := range paths {
		router.Get(path, routes.list)
		router.Post(path, routes.create)
		router.Get(path+"/:id", routes.get)
		router.Put(path+"/:id", routes.update)
		router.Patch(path+"/:id", routes.update)
		router.Delete(path+"/:id", routes.remove)
	}
}
