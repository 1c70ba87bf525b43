package router

import (
	"github.com/AldeiaHub/Aldeia/app/controllers"
	"github.com/AldeiaHub/Aldeia/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	v1.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
	})
	v1.Get("/plans", controllers.HandleListPlans)
	// Identity is optional: guests check out without a token.
	v1.Post("/checkout", middleware.BearerAuthMiddleware(), controllers.HandleCheckout)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
