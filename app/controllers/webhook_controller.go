package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/settlement"
)

// HandleStripeWebhook receives checkout completion events, verifies the
// signature and runs settlement. Status codes steer Stripe redelivery:
// 2xx acknowledges the event, 4xx rejects it permanently, 5xx asks for
// a retry.
func HandleStripeWebhook(c *fiber.Ctx) error {
	if settlementService == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "settlement not configured",
		})
	}

	outcome, err := settlementService.HandleWebhook(
		c.UserContext(),
		c.Body(),
		c.Get("Stripe-Signature"),
	)
	if err != nil {
		log.Errorf("webhook: %v (outcome=%s)", err, outcome)

		switch {
		case errors.Is(err, settlement.ErrVerification),
			errors.Is(err, settlement.ErrInvalidMetadata),
			errors.Is(err, settlement.ErrInvalidAmount),
			errors.Is(err, settlement.ErrTransferTooSmall):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			// Configuration and transfer failures: redelivery may succeed
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{"received": true, "outcome": string(outcome)})
}
