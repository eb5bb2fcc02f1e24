package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ceramicsgallery/ceramics-gallery/app/controllers"
	apiv1 "github.com/ceramicsgallery/ceramics-gallery/internal/api/v1"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Payment provider webhooks carry their own signature verification
	// and must stay outside the rate limiter.
	app.Post(constants.StripeWebhookRoute, controllers.HandleStripeWebhook)

	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
