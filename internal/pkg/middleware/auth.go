package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/usercontext"
)

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please log in first.",
		}
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}
	return c.Next()
}

// RequireAdmin guards the operator area. Non-operators get a 404 so the
// admin surface does not advertise itself.
func RequireAdmin(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please log in first.",
		}
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}
	if !userCtx.IsAdmin {
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.Next()
}
