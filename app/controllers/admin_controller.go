package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/database"
)

// HandleAdminDashboard shows marketplace totals and commission revenue.
func HandleAdminDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory()

	userCount, _ := repos.GetUserRepository().Count()
	potterCount, _ := repos.GetPotterRepository().Count()
	productCount, _ := repos.GetProductRepository().Count()
	courseCount, _ := repos.GetCourseRepository().Count()
	transferCount, _ := repos.GetPaymentRepository().CountTransfers()
	totalCommission, err := repos.GetPaymentRepository().TotalCommission()
	if err != nil {
		log.Errorf("admin: total commission failed: %v", err)
	}

	return render(c, "admin/index", "admin", fiber.Map{
		"UserCount":     userCount,
		"PotterCount":   potterCount,
		"ProductCount":  productCount,
		"CourseCount":   courseCount,
		"TransferCount": transferCount,
		// Commission revenue in major units for display
		"TotalCommission": float64(totalCommission) / 100,
	})
}

// HandleAdminPotters lists all potters including inactive ones.
func HandleAdminPotters(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	potters, err := repository.GetGlobalFactory().GetPotterRepository().List((page-1)*pageSize, pageSize)
	if err != nil {
		log.Errorf("admin: listing potters failed: %v", err)
	}

	return render(c, "admin/potters", "admin-potters", fiber.Map{
		"Potters":    potters,
		"PageNumber": page,
	})
}

// HandleAdminPotterEdit edits per-potter marketplace settings: the
// commission override, featured flag and active state.
func HandleAdminPotterEdit(c *fiber.Ctx) error {
	potterRepo := repository.GetGlobalFactory().GetPotterRepository()

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return HandleNotFound(c)
	}
	potter, err := potterRepo.GetByID(uint(id))
	if err != nil {
		return HandleNotFound(c)
	}

	if c.Method() == fiber.MethodGet {
		return render(c, "admin/potter_edit", "admin-potter-edit", fiber.Map{
			"Potter": potter,
		})
	}

	fm := fiber.Map{"type": "error"}
	backTo := "/admin/potters"

	// An empty field clears the override back to the platform default.
	var override *float64
	if raw := strings.TrimSpace(c.FormValue("commission_override")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			fm["message"] = "The commission override must be between 0 and 100."
			return flash.WithError(c, fm).Redirect(backTo)
		}
		override = &v
	}
	if err := potterRepo.SetCommissionOverride(potter.ID, override); err != nil {
		fm["message"] = "Could not save the commission override."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	potter.Featured = c.FormValue("featured") == "on"
	if err := potterRepo.Update(potter); err != nil {
		fm["message"] = "Could not save the potter."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	fm = fiber.Map{"type": "success", "message": "Potter saved."}
	return flash.WithSuccess(c, fm).Redirect(backTo)
}

// HandleAdminPotterNew creates a potter profile on behalf of an existing
// user, identified by email.
func HandleAdminPotterNew(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return render(c, "admin/potter_new", "admin-potter-new", fiber.Map{})
	}

	repos := repository.GetGlobalFactory()
	fm := fiber.Map{"type": "error"}
	backTo := "/admin/potters/new"

	email := strings.TrimSpace(c.FormValue("user_email"))
	user, err := repos.GetUserRepository().GetByEmail(email)
	if err != nil {
		fm["message"] = "No user with that email address."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	potterRepo := repos.GetPotterRepository()
	if existing, err := potterRepo.GetByUserID(user.ID); err == nil && existing != nil {
		fm["message"] = "That user already has a potter profile."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	slug, err := uniquePotterSlug(potterRepo, name)
	if err != nil {
		fm["message"] = "Could not create the potter."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	potter := &models.Potter{
		UserID:   user.ID,
		Slug:     slug,
		Name:     name,
		Bio:      c.FormValue("bio"),
		Location: strings.TrimSpace(c.FormValue("location")),
		Active:   true,
	}
	if err := potter.Validate(); err != nil {
		fm["message"] = "Please check the potter details."
		return flash.WithError(c, fm).Redirect(backTo)
	}
	if err := potterRepo.Create(potter); err != nil {
		log.Errorf("admin: creating potter for user %d failed: %v", user.ID, err)
		fm["message"] = "Could not create the potter."
		return flash.WithError(c, fm).Redirect(backTo)
	}

	fm = fiber.Map{"type": "success", "message": "Potter created."}
	return flash.WithSuccess(c, fm).Redirect("/admin/potters")
}

// HandleAdminPotterToggle flips a potter between active and suspended.
func HandleAdminPotterToggle(c *fiber.Ctx) error {
	potterRepo := repository.GetGlobalFactory().GetPotterRepository()

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return HandleNotFound(c)
	}
	potter, err := potterRepo.GetByID(uint(id))
	if err != nil {
		return HandleNotFound(c)
	}

	if err := potterRepo.SetActive(potter.ID, !potter.Active); err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not update the potter."}
		return flash.WithError(c, fm).Redirect("/admin/potters")
	}

	return c.Redirect("/admin/potters", fiber.StatusSeeOther)
}

// HandleAdminPotterDelete removes a potter profile. Products stay in the
// database but disappear from all public pages.
func HandleAdminPotterDelete(c *fiber.Ctx) error {
	potterRepo := repository.GetGlobalFactory().GetPotterRepository()

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return HandleNotFound(c)
	}

	fm := fiber.Map{"type": "error"}
	if err := potterRepo.Delete(uint(id)); err != nil {
		fm["message"] = "Could not delete the potter."
		return flash.WithError(c, fm).Redirect("/admin/potters")
	}

	fm = fiber.Map{"type": "success", "message": "Potter deleted."}
	return flash.WithSuccess(c, fm).Redirect("/admin/potters")
}

// HandleAdminPayments lists settlement transfers for auditing.
func HandleAdminPayments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	payments := repository.GetGlobalFactory().GetPaymentRepository()
	transfers, err := payments.ListTransfers((page-1)*pageSize, pageSize)
	if err != nil {
		log.Errorf("admin: listing transfers failed: %v", err)
	}
	total, _ := payments.CountTransfers()

	return render(c, "admin/payments", "admin-payments", fiber.Map{
		"Transfers":  transfers,
		"Total":      total,
		"PageNumber": page,
	})
}

// HandleAdminSettings shows and saves the platform settings, including
// the default commission percentage.
func HandleAdminSettings(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return render(c, "admin/settings", "admin-settings", fiber.Map{
			"Settings": models.GetAppSettings(),
		})
	}

	fm := fiber.Map{"type": "error"}

	commission, err := strconv.ParseFloat(c.FormValue("default_commission_percent"), 64)
	if err != nil || commission < 0 || commission > 100 {
		fm["message"] = "The default commission must be between 0 and 100."
		return flash.WithError(c, fm).Redirect("/admin/settings")
	}

	settings := &models.AppSettings{
		SiteTitle:                strings.TrimSpace(c.FormValue("site_title")),
		SiteDescription:          strings.TrimSpace(c.FormValue("site_description")),
		DefaultCommissionPercent: commission,
	}

	if err := models.SaveSettings(database.GetDB(), settings); err != nil {
		fm["message"] = "Could not save the settings."
		return flash.WithError(c, fm).Redirect("/admin/settings")
	}

	fm = fiber.Map{"type": "success", "message": "Settings saved."}
	return flash.WithSuccess(c, fm).Redirect(constants.AdminRoute + "/settings")
}
