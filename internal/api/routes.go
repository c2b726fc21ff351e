package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("ok")
	})

	v1 := app.Group("/api/v1")

	v1.Get("/products", h.ListProducts)
	v1.Get("/products/priced", h.ListPricedProducts)
	v1.Post("/products", h.CreateProduct)
	v1.Put("/products/id/:id", h.UpdateProduct)
	v1.Delete("/products/id/:id", h.DeleteProduct)
	v1.Put("/products/:name/:brand/:store", h.UpdateProduct)
	v1.Delete("/products/:name/:brand/:store", h.DeleteProduct)

	v1.Get("/dolar", h.ListRates)
	v1.Get("/dolar/current", h.CurrentRate)
	v1.Post("/dolar", h.CreateRate)
	v1.Put("/dolar/:id", h.UpdateRate)
	v1.Delete("/dolar/:id", h.DeleteRate)

	v1.Post("/reload", h.Reload)
}
