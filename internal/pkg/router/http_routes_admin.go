package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ceramicsgallery/ceramics-gallery/app/controllers"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Potter management
	adminGroup.Get("/potters", controllers.HandleAdminPotters)
	adminGroup.Get("/potters/new", controllers.HandleAdminPotterNew)
	adminGroup.Post("/potters/new", controllers.HandleAdminPotterNew)
	adminGroup.Get("/potters/edit/:id", controllers.HandleAdminPotterEdit)
	adminGroup.Post("/potters/update/:id", controllers.HandleAdminPotterEdit)
	adminGroup.Post("/potters/toggle/:id", controllers.HandleAdminPotterToggle)
	adminGroup.Post("/potters/delete/:id", controllers.HandleAdminPotterDelete)

	// Settlement audit
	adminGroup.Get("/payments", controllers.HandleAdminPayments)

	// Platform settings
	adminGroup.Get("/settings", controllers.HandleAdminSettings)
	adminGroup.Post("/settings", controllers.HandleAdminSettings)
}
