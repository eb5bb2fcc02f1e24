package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
)

// HandleStart renders the landing page with featured potters and the
// latest products.
func HandleStart(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()

	potters, err := repos.GetPotterRepository().GetFeatured(6)
	if err != nil {
		log.Errorf("home: loading featured potters failed: %v", err)
	}
	products, err := repos.GetProductRepository().GetRecent(12)
	if err != nil {
		log.Errorf("home: loading recent products failed: %v", err)
	}

	return render(c, "index", "home", fiber.Map{
		"FeaturedPotters": potters,
		"RecentProducts":  products,
	})
}

// HandleNotFound renders the 404 page.
func HandleNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "404", "not-found", fiber.Map{})
}

// HandleCheckoutSuccess is the return page after a completed hosted
// checkout. Settlement happens asynchronously through the webhook, so
// this page only confirms the purchase to the buyer.
func HandleCheckoutSuccess(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	return render(c, "checkout_success", "checkout-success", fiber.Map{
		"SessionID": sessionID,
	})
}
