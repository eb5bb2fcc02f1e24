package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a set of routes onto the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install HttpRouter first to initialize session store, oauth providers,
	// and the global UserContext middleware. Then register API routes which
	// depend on that middleware. The vanity catch-alls and the 404 handler
	// go in last so they cannot shadow any fixed route.
	setup(app, NewHttpRouter(), NewApiRouter())
	registerFallbackRoutes(app)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
