package router

import (
	"github.com/guidingv/iconify-style-consistent-icons/app/controllers"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Public share links resolve outside the API prefix
	app.Get("/c/:sharelink", controllers.HandleGetSharedCollection)

	// Health probe for load balancers
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
