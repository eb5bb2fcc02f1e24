package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/catalog"
)

// HandleCourses renders the public course catalog with filters for
// level, location and starting month.
func HandleCourses(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()

	query := catalog.Query{
		Level:    c.Query("level"),
		Location: c.Query("location"),
		Month:    c.Query("month"),
		Sort:     c.Query("sort"),
		Page:     c.QueryInt("page", 1),
	}

	page, err := catalog.Browse(repos.GetCourseRepository(), query)
	if err != nil {
		log.Errorf("courses: browse failed: %v", err)
		return HandleNotFound(c)
	}

	locations, err := repos.GetCourseRepository().Locations()
	if err != nil {
		log.Errorf("courses: loading locations failed: %v", err)
	}

	return render(c, "courses", "courses", fiber.Map{
		"Courses":    page.Courses,
		"Total":      page.Total,
		"PageNumber": page.PageNumber,
		"PageCount":  page.PageCount,
		"Query":      page.Query,
		"Locations":  locations,
	})
}

// HandleCoursePage renders a single course detail page.
func HandleCoursePage(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()

	course, err := repos.GetCourseRepository().GetBySlug(c.Params("courseSlug"))
	if err != nil || !course.Active {
		return HandleNotFound(c)
	}

	potter, err := repos.GetPotterRepository().GetByID(course.PotterID)
	if err != nil {
		return HandleNotFound(c)
	}

	return render(c, "course", "course", fiber.Map{
		"Course": course,
		"Potter": potter,
	})
}
