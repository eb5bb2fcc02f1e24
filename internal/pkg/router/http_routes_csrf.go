package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/ceramicsgallery/ceramics-gallery/app/controllers"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/env"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			// Webhooks are signature-verified, not CSRF-protected
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Auth
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Get("/activate", loggedInMiddleware, controllers.HandleAuthActivate)

	// Checkout
	group.Post("/buy", loggedInMiddleware, controllers.HandleBuy)
	group.Get("/checkout/success", loggedInMiddleware, controllers.HandleCheckoutSuccess)

	// Seller dashboard
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)
	group.Get("/dashboard/profile", middleware.RequireAuth, controllers.HandleDashboardProfile)
	group.Post("/dashboard/profile", middleware.RequireAuth, controllers.HandleDashboardProfile)
	group.Get("/dashboard/products", middleware.RequireAuth, controllers.HandleDashboardProducts)
	group.Get("/dashboard/products/new", middleware.RequireAuth, controllers.HandleDashboardProductForm)
	group.Post("/dashboard/products/new", middleware.RequireAuth, controllers.HandleDashboardProductForm)
	group.Get("/dashboard/products/edit/:id", middleware.RequireAuth, controllers.HandleDashboardProductForm)
	group.Post("/dashboard/products/edit/:id", middleware.RequireAuth, controllers.HandleDashboardProductForm)
	group.Post("/dashboard/products/toggle/:id", middleware.RequireAuth, controllers.HandleDashboardProductToggle)
	group.Post("/dashboard/products/delete/:id", middleware.RequireAuth, controllers.HandleDashboardProductDelete)
	group.Get("/dashboard/courses", middleware.RequireAuth, controllers.HandleDashboardCourses)
	group.Get("/dashboard/courses/new", middleware.RequireAuth, controllers.HandleDashboardCourseForm)
	group.Post("/dashboard/courses/new", middleware.RequireAuth, controllers.HandleDashboardCourseForm)
	group.Get("/dashboard/courses/edit/:id", middleware.RequireAuth, controllers.HandleDashboardCourseForm)
	group.Post("/dashboard/courses/edit/:id", middleware.RequireAuth, controllers.HandleDashboardCourseForm)
	group.Get("/dashboard/connect-stripe", middleware.RequireAuth, controllers.HandleConnectStripe)
}
