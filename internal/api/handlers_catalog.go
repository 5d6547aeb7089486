package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetCatalog(c *fiber.Ctx) error {
	catalog, err := handler.catalog.Build()
	if err != nil {
		return handler.serviceError(c, err, "failed to build catalog")
	}
	c.Set(fiber.HeaderCacheControl, catalogCacheControl)
	return c.JSON(catalog)
}
