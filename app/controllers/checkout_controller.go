package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/settlement"
)

// settlementService is wired once at router setup.
var settlementService *settlement.Service

// SetSettlementService injects the settlement service used by the
// checkout, webhook and dashboard controllers.
func SetSettlementService(s *settlement.Service) {
	settlementService = s
}

// HandleBuy starts a hosted checkout for a product and redirects the
// buyer to the payment page.
func HandleBuy(c *fiber.Ctx) error {
	productUUID := c.FormValue("product_uuid")
	potterUUID := c.FormValue("potter_uuid")

	fm := fiber.Map{"type": "error"}
	backTo := c.FormValue("back_to", "/")

	if settlementService == nil {
		fm["message"] = "Checkout is currently unavailable."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	checkoutURL, err := settlementService.CreateCheckout(c.UserContext(), productUUID, potterUUID)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrProductNotFound), errors.Is(err, settlement.ErrPotterNotFound):
			fm["message"] = "This item is no longer available."
		case errors.Is(err, settlement.ErrNotPaymentReady):
			fm["message"] = "This seller cannot accept payments yet."
		case errors.Is(err, settlement.ErrBelowMinimumCharge):
			fm["message"] = "This item cannot be purchased online."
		case errors.Is(err, settlement.ErrConfiguration):
			fm["message"] = "Checkout is currently unavailable."
		default:
			fm["message"] = "Something went wrong starting the checkout. Please try again."
		}
		log.Errorf("checkout: creating session for product %s failed: %v", productUUID, err)
		return flash.WithError(c, fm).Redirect(backTo)
	}

	return c.Redirect(checkoutURL, fiber.StatusSeeOther)
}
