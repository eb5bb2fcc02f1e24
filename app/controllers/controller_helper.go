package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/usercontext"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/viewmodel"
)

// layoutFor assembles the shared page chrome for the current request.
func layoutFor(c *fiber.Ctx, page string) viewmodel.Layout {
	userCtx := usercontext.GetUserContext(c)

	siteTitle := "Ceramics Gallery"
	if s := models.GetAppSettings(); s != nil {
		siteTitle = s.GetSiteTitle()
	}

	return viewmodel.Layout{
		Page:          page,
		SiteTitle:     siteTitle,
		FromProtected: userCtx.IsLoggedIn,
		Msg:           flash.Get(c),
		Username:      userCtx.Username,
		IsAdmin:       userCtx.IsAdmin,
		IsPotter:      userCtx.PotterID != 0,
	}
}

// render merges the shared layout fields into the page data and renders
// the named template inside the main layout.
func render(c *fiber.Ctx, template string, page string, data fiber.Map) error {
	layout := layoutFor(c, page)

	bind := fiber.Map{
		"Page":          layout.Page,
		"SiteTitle":     layout.SiteTitle,
		"FromProtected": layout.FromProtected,
		"Username":      layout.Username,
		"IsAdmin":       layout.IsAdmin,
		"IsPotter":      layout.IsPotter,
		"Msg":           layout.Msg,
	}
	for k, v := range data {
		bind[k] = v
	}

	if csrf := c.Locals("csrf"); csrf != nil {
		bind["CSRFToken"] = csrf
	}

	return c.Render(template, bind, "layouts/main")
}

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}
