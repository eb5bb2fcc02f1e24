package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
)

// HandlePottersList renders the public directory of active potters.
func HandlePottersList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	const pageSize = 24

	repos := repository.GetGlobalFactory()
	potters, err := repos.GetPotterRepository().ListActive((page-1)*pageSize, pageSize)
	if err != nil {
		log.Errorf("potters: listing failed: %v", err)
		return HandleNotFound(c)
	}

	return render(c, "potters", "potters", fiber.Map{
		"Potters":    potters,
		"PageNumber": page,
	})
}

// HandlePotterPage renders a potter's public page with their catalog.
// Inactive potters are not shown.
func HandlePotterPage(c *fiber.Ctx) error {
	slug := c.Params("slug")

	repos := repository.GetGlobalFactory()
	potter, err := repos.GetPotterRepository().GetBySlug(slug)
	if err != nil || !potter.Active {
		return HandleNotFound(c)
	}

	products, err := repos.GetProductRepository().GetByPotterID(potter.ID, false)
	if err != nil {
		log.Errorf("potter page: loading products for %s failed: %v", slug, err)
	}
	courses, err := repos.GetCourseRepository().GetByPotterID(potter.ID)
	if err != nil {
		log.Errorf("potter page: loading courses for %s failed: %v", slug, err)
	}

	return render(c, "potter", "potter", fiber.Map{
		"Potter":   potter,
		"Products": products,
		"Courses":  courses,
	})
}

// HandleProductPage renders a single product page with the buy button.
func HandleProductPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	productSlug := c.Params("productSlug")

	repos := repository.GetGlobalFactory()
	potter, err := repos.GetPotterRepository().GetBySlug(slug)
	if err != nil || !potter.Active {
		return HandleNotFound(c)
	}

	product, err := repos.GetProductRepository().GetBySlug(potter.ID, productSlug)
	if err != nil || !product.Active {
		return HandleNotFound(c)
	}

	return render(c, "product", "product", fiber.Map{
		"Potter":  potter,
		"Product": product,
		// Purchases need a linked payout account on the seller side
		"Buyable": potter.IsPaymentReady() && !product.Sold,
	})
}
