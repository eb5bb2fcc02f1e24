package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/ceramicsgallery/ceramics-gallery/app/controllers"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public catalog pages
	app.Get("/potters", loggedInMiddleware, controllers.HandlePottersList)
	app.Get("/courses", loggedInMiddleware, controllers.HandleCourses)
	app.Get("/courses/:courseSlug", loggedInMiddleware, controllers.HandleCoursePage)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

// registerFallbackRoutes installs the potter vanity catch-alls and the
// final 404 handler. Fiber matches in registration order, so these must
// come after every fixed route of every router, including the API ones;
// otherwise single-segment paths like /api resolve as potter slugs and
// the 404 handler swallows the webhook endpoint.
func registerFallbackRoutes(app *fiber.App) {
	app.Get("/:slug", loggedInMiddleware, controllers.HandlePotterPage)
	app.Get("/:slug/:productSlug", loggedInMiddleware, controllers.HandleProductPage)

	// Everything else is a 404
	app.Use(controllers.HandleNotFound)
}
