package controllers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/imageprocessor"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/session"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/shortener"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/upload"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/usercontext"
)

// HandleDashboard renders the seller overview: profile state, payout
// readiness and recent sales.
func HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory()

	if userCtx.PotterID == 0 {
		return render(c, "dashboard/index", "dashboard", fiber.Map{
			"HasProfile": false,
		})
	}

	potter, err := repos.GetPotterRepository().GetByID(userCtx.PotterID)
	if err != nil {
		log.Errorf("dashboard: loading potter %d failed: %v", userCtx.PotterID, err)
		return HandleNotFound(c)
	}

	products, err := repos.GetProductRepository().GetByPotterID(potter.ID, true)
	if err != nil {
		log.Errorf("dashboard: loading products failed: %v", err)
	}
	transfers, err := repos.GetPaymentRepository().ListTransfersByPotter(potter.ID, 0, 10)
	if err != nil {
		log.Errorf("dashboard: loading transfers failed: %v", err)
	}

	return render(c, "dashboard/index", "dashboard", fiber.Map{
		"HasProfile":   true,
		"Potter":       potter,
		"Products":     products,
		"Transfers":    transfers,
		"PaymentReady": potter.IsPaymentReady(),
	})
}

// HandleDashboardProfile creates or updates the user's potter profile.
func HandleDashboardProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalFactory()
	potterRepo := repos.GetPotterRepository()

	var potter *models.Potter
	if userCtx.PotterID != 0 {
		var err error
		potter, err = potterRepo.GetByID(userCtx.PotterID)
		if err != nil {
			return HandleNotFound(c)
		}
	}

	if c.Method() == fiber.MethodGet {
		return render(c, "dashboard/profile", "dashboard-profile", fiber.Map{
			"Potter": potter,
		})
	}

	fm := fiber.Map{"type": "error"}

	name := strings.TrimSpace(c.FormValue("name"))
	bio := c.FormValue("bio")
	location := strings.TrimSpace(c.FormValue("location"))

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imageURL, err = storeUploadedImage(c, file)
		if err != nil {
			fm["message"] = err.Error()
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
	}

	if potter == nil {
		slug, err := uniquePotterSlug(potterRepo, name)
		if err != nil {
			fm["message"] = "Could not create your profile, please try again."
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
		potter = &models.Potter{
			UserID:   userCtx.UserID,
			Slug:     slug,
			Name:     name,
			Bio:      bio,
			Location: location,
			ImageURL: imageURL,
			Active:   true,
		}
		if err := potter.Validate(); err != nil {
			fm["message"] = "Please check your details and try again."
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
		if err := potterRepo.Create(potter); err != nil {
			fm["message"] = "Could not create your profile, please try again."
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
		// Refresh the cached potter id for subsequent requests
		_ = session.SetSessionValue(c, "potter_id", strconv.FormatUint(uint64(potter.ID), 10))
	} else {
		potter.Name = name
		potter.Bio = bio
		potter.Location = location
		if imageURL != "" {
			potter.ImageURL = imageURL
		}
		if err := potter.Validate(); err != nil {
			fm["message"] = "Please check your details and try again."
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
		if err := potterRepo.Update(potter); err != nil {
			fm["message"] = "Could not save your profile, please try again."
			return flash.WithError(c, fm).Redirect("/dashboard/profile")
		}
	}

	fm = fiber.Map{"type": "success", "message": "Profile saved."}
	return flash.WithSuccess(c, fm).Redirect(constants.DashboardRoute)
}

// HandleDashboardProducts lists the seller's products including inactive ones.
func HandleDashboardProducts(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	products, err := repository.GetGlobalFactory().GetProductRepository().GetByPotterID(potter.ID, true)
	if err != nil {
		log.Errorf("dashboard: loading products failed: %v", err)
	}

	return render(c, "dashboard/products", "dashboard-products", fiber.Map{
		"Potter":   potter,
		"Products": products,
	})
}

// HandleDashboardProductForm renders and processes the create/edit form.
// An "id" route parameter switches it to edit mode.
func HandleDashboardProductForm(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	productRepo := repository.GetGlobalFactory().GetProductRepository()

	var product *models.Product
	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			return HandleNotFound(c)
		}
		product, err = productRepo.GetByID(uint(id))
		if err != nil || product.PotterID != potter.ID {
			return HandleNotFound(c)
		}
	}

	if c.Method() == fiber.MethodGet {
		return render(c, "dashboard/product_form", "dashboard-product", fiber.Map{
			"Potter":  potter,
			"Product": product,
		})
	}

	fm := fiber.Map{"type": "error"}
	backTo := "/dashboard/products"

	name := strings.TrimSpace(c.FormValue("name"))
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		fm["message"] = "Please enter a valid price."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imagePath, err = storeUploadedImage(c, file)
		if err != nil {
			fm["message"] = err.Error()
			return flash.WithError(c, fm).Redirect(backTo)
		}
	}

	if product == nil {
		slug := shortener.Slugify(name)
		if exists, err := productRepo.SlugExists(potter.ID, slug); err != nil || exists {
			slug, err = shortener.UniqueSlug(slug)
			if err != nil {
				fm["message"] = "Could not create the product, please try again."
				return flash.WithError(c, fm).Redirect(backTo)
			}
		}
		product = &models.Product{
			PotterID:    potter.ID,
			Name:        name,
			Slug:        slug,
			Description: c.FormValue("description"),
			Price:       price,
			Currency:    models.DefaultCurrency,
			ImagePath:   imagePath,
			Active:      true,
		}
		if err := product.Validate(); err != nil {
			fm["message"] = "Please check the product details and try again."
			return flash.WithError(c, fm).Redirect(backTo)
		}
		if err := productRepo.Create(product); err != nil {
			fm["message"] = "Could not create the product, please try again."
			return flash.WithError(c, fm).Redirect(backTo)
		}
	} else {
		product.Name = name
		product.Description = c.FormValue("description")
		product.Price = price
		if imagePath != "" {
			product.ImagePath = imagePath
		}
		if err := product.Validate(); err != nil {
			fm["message"] = "Please check the product details and try again."
			return flash.WithError(c, fm).Redirect(backTo)
		}
		if err := productRepo.Update(product); err != nil {
			fm["message"] = "Could not save the product, please try again."
			return flash.WithError(c, fm).Redirect(backTo)
		}
	}

	fm = fiber.Map{"type": "success", "message": "Product saved."}
	return flash.WithSuccess(c, fm).Redirect(backTo)
}

// HandleDashboardProductToggle flips a product between active and hidden.
func HandleDashboardProductToggle(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	productRepo := repository.GetGlobalFactory().GetProductRepository()
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return HandleNotFound(c)
	}
	product, err := productRepo.GetByID(uint(id))
	if err != nil || product.PotterID != potter.ID {
		return HandleNotFound(c)
	}

	product.Active = !product.Active
	if err := productRepo.Update(product); err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not update the product."}
		return flash.WithError(c, fm).Redirect("/dashboard/products")
	}

	return c.Redirect("/dashboard/products", fiber.StatusSeeOther)
}

// HandleDashboardProductDelete removes one of the seller's own products.
func HandleDashboardProductDelete(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	productRepo := repository.GetGlobalFactory().GetProductRepository()
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return HandleNotFound(c)
	}
	product, err := productRepo.GetByID(uint(id))
	if err != nil || product.PotterID != potter.ID {
		return HandleNotFound(c)
	}

	if err := productRepo.Delete(product.ID); err != nil {
		log.Errorf("dashboard: deleting product %d failed: %v", product.ID, err)
		fm := fiber.Map{"type": "error", "message": "Could not delete the product."}
		return flash.WithError(c, fm).Redirect("/dashboard/products")
	}

	fm := fiber.Map{"type": "success", "message": "Product deleted."}
	return flash.WithSuccess(c, fm).Redirect("/dashboard/products")
}

// HandleDashboardCourses lists and manages the seller's courses.
func HandleDashboardCourses(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	courses, err := repository.GetGlobalFactory().GetCourseRepository().GetByPotterID(potter.ID)
	if err != nil {
		log.Errorf("dashboard: loading courses failed: %v", err)
	}

	return render(c, "dashboard/courses", "dashboard-courses", fiber.Map{
		"Potter":  potter,
		"Courses": courses,
	})
}

// HandleDashboardCourseForm creates or edits a course listing.
func HandleDashboardCourseForm(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	courseRepo := repository.GetGlobalFactory().GetCourseRepository()

	var course *models.Course
	if idParam := c.Params("id"); idParam != "" {
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			return HandleNotFound(c)
		}
		course, err = courseRepo.GetByID(uint(id))
		if err != nil || course.PotterID != potter.ID {
			return HandleNotFound(c)
		}
	}

	if c.Method() == fiber.MethodGet {
		return render(c, "dashboard/course_form", "dashboard-course", fiber.Map{
			"Potter": potter,
			"Course": course,
		})
	}

	fm := fiber.Map{"type": "error"}
	backTo := "/dashboard/courses"

	title := strings.TrimSpace(c.FormValue("title"))
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		fm["message"] = "Please enter a valid price."
		return flash.WithError(c, fm).Redirect(backTo)
	}
	duration, err := strconv.Atoi(c.FormValue("duration_days", "1"))
	if err != nil || duration < 1 {
		duration = 1
	}

	var startDate *time.Time
	if raw := c.FormValue("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			startDate = &t
		}
	}

	if course == nil {
		slug, err := shortener.UniqueSlug(shortener.Slugify(title))
		if err != nil {
			fm["message"] = "Could not save the course, please try again."
			return flash.WithError(c, fm).Redirect(backTo)
		}
		course = &models.Course{
			PotterID: potter.ID,
			Slug:     slug,
			Active:   true,
		}
	}
	course.Title = title
	course.Description = c.FormValue("description")
	course.Location = strings.TrimSpace(c.FormValue("location"))
	course.Level = c.FormValue("level", models.COURSE_LEVEL_ALL)
	course.StartDate = startDate
	course.DurationDays = duration
	course.Price = price

	if err := course.Validate(); err != nil {
		fm["message"] = "Please check the course details and try again."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	if course.ID == 0 {
		err = courseRepo.Create(course)
	} else {
		err = courseRepo.Update(course)
	}
	if err != nil {
		fm["message"] = "Could not save the course, please try again."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	fm = fiber.Map{"type": "success", "message": "Course saved."}
	return flash.WithSuccess(c, fm).Redirect(backTo)
}

// HandleConnectStripe sends the potter into Stripe onboarding, or shows
// the completion state when Stripe redirects back with success=1.
func HandleConnectStripe(c *fiber.Ctx) error {
	potter, err := requirePotter(c)
	if err != nil {
		return err
	}

	if c.Query("success") == "1" {
		fm := fiber.Map{
			"type":    "success",
			"message": "Your payout account is connected. You can sell now!",
		}
		return flash.WithSuccess(c, fm).Redirect(constants.DashboardRoute)
	}

	if settlementService == nil {
		fm := fiber.Map{"type": "error", "message": "Payouts are currently unavailable."}
		return flash.WithError(c, fm).Redirect(constants.DashboardRoute)
	}

	url, err := settlementService.CreateOnboardingLink(c.UserContext(), potter.ID)
	if err != nil {
		log.Errorf("connect: onboarding link for potter %d failed: %v", potter.ID, err)
		fm := fiber.Map{"type": "error", "message": "Could not start onboarding, please try again."}
		return flash.WithError(c, fm).Redirect(constants.DashboardRoute)
	}

	return c.Redirect(url, fiber.StatusSeeOther)
}

// requirePotter loads the logged-in user's potter profile or redirects
// to profile creation.
func requirePotter(c *fiber.Ctx) (*models.Potter, error) {
	userCtx := usercontext.GetUserContext(c)
	if userCtx.PotterID == 0 {
		fm := fiber.Map{"type": "error", "message": "Create your potter profile first."}
		return nil, flash.WithError(c, fm).Redirect("/dashboard/profile")
	}
	potter, err := repository.GetGlobalFactory().GetPotterRepository().GetByID(userCtx.PotterID)
	if err != nil {
		return nil, HandleNotFound(c)
	}
	return potter, nil
}

// uniquePotterSlug derives a URL slug from the display name, suffixing
// it when taken.
func uniquePotterSlug(repo repository.PotterRepository, name string) (string, error) {
	slug := shortener.Slugify(name)
	if slug == "" {
		return shortener.UniqueSlug("potter")
	}
	exists, err := repo.SlugExists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		return shortener.UniqueSlug(slug)
	}
	return slug, nil
}

// storeUploadedImage validates, stores and post-processes an uploaded
// image, returning its public path.
func storeUploadedImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("could not read the uploaded file")
	}
	head := make([]byte, 512)
	n, _ := src.Read(head)
	src.Close()

	if _, err := upload.ValidateImageBySniff(file.Filename, head[:n]); err != nil {
		return "", err
	}

	if err := os.MkdirAll(imageprocessor.OriginalDir, 0755); err != nil {
		return "", fmt.Errorf("could not store the uploaded file")
	}

	imageUUID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	localPath := filepath.Join(imageprocessor.OriginalDir, imageUUID+ext)
	if err := c.SaveFile(file, localPath); err != nil {
		return "", fmt.Errorf("could not store the uploaded file")
	}

	if _, err := imageprocessor.ProcessImage(localPath, imageUUID); err != nil {
		log.Warnf("upload: processing %s failed: %v", imageUUID, err)
	}

	mirrorImage(c, localPath, imageUUID, ext)

	return "/" + localPath, nil
}
