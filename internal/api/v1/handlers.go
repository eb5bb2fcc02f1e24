package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/catalog"
)

// APIServer implements the public read-only JSON API
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterHandlers attaches the v1 endpoints to the router group.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Get("/potters", s.GetPotters)
	r.Get("/potters/:slug", s.GetPotter)
	r.Get("/potters/:slug/products", s.GetPotterProducts)
	r.Get("/courses", s.GetCourses)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ping": "pong"})
}

// GetPotters lists active potters.
func (s *APIServer) GetPotters(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	potters, err := repository.GetGlobalFactory().GetPotterRepository().ListActive((page-1)*pageSize, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(fiber.Map{"potters": potters, "page": page})
}

// GetPotter returns one active potter by slug.
func (s *APIServer) GetPotter(c *fiber.Ctx) error {
	potter, err := repository.GetGlobalFactory().GetPotterRepository().GetBySlug(c.Params("slug"))
	if err != nil || !potter.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	return c.JSON(potter)
}

// GetPotterProducts returns the active products of a potter.
func (s *APIServer) GetPotterProducts(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()
	potter, err := repos.GetPotterRepository().GetBySlug(c.Params("slug"))
	if err != nil || !potter.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	products, err := repos.GetProductRepository().GetByPotterID(potter.ID, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetCourses runs a catalog query and returns one page of courses.
func (s *APIServer) GetCourses(c *fiber.Ctx) error {
	query := catalog.Query{
		Level:    c.Query("level"),
		Location: c.Query("location"),
		Month:    c.Query("month"),
		Sort:     c.Query("sort"),
		Page:     c.QueryInt("page", 1),
	}

	page, err := catalog.Browse(repository.GetGlobalFactory().GetCourseRepository(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}
	return c.JSON(fiber.Map{
		"courses":    page.Courses,
		"total":      page.Total,
		"page":       page.PageNumber,
		"page_count": page.PageCount,
	})
}
