package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/mail"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/session"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/usercontext"
)

const (
	AUTH_KEY   string = "authenticated"
	USER_ID    string = usercontext.KeyUserID
	USER_NAME  string = usercontext.KeyUsername
	USER_EMAIL string = usercontext.KeyUserEmail
)

func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return render(c, "auth/register", "register", fiber.Map{})
	}

	fm := fiber.Map{"type": "error"}

	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if password != c.FormValue("password_confirm") {
		fm["message"] = "The passwords do not match."
		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	user, err := models.CreateUser(name, email, password)
	if err != nil {
		fm["message"] = "Please check your details and try again."
		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	if err := user.GenerateActivationToken(); err != nil {
		fm["message"] = "Registration failed, please try again."
		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := userRepo.GetByEmail(email); err == nil {
		fm["message"] = "There is a problem with the registration process."
		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	if err := userRepo.Create(user); err != nil {
		fm["message"] = "There is a problem with the registration process."
		return flash.WithError(c, fm).Redirect(constants.RegisterRoute)
	}

	if err := mail.SendActivationMail(user.Email, user.Name, user.ActivationToken); err != nil {
		log.Errorf("register: activation mail to %s failed: %v", user.Email, err)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome! Please check your inbox to activate your account.",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.LoginRoute)
}

// HandleAuthActivate activates an account from the emailed token link.
func HandleAuthActivate(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	token := c.Query("token")
	if token == "" {
		fm["message"] = "The activation link is invalid."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByActivationToken(token)
	if err != nil {
		fm["message"] = "The activation link is invalid or has expired."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := userRepo.Update(user); err != nil {
		fm["message"] = "Activation failed, please try again."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Your account is active. You can log in now.",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.LoginRoute)
}

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return render(c, "auth/login", "login", fiber.Map{})
	}

	fm := fiber.Map{"type": "error"}

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(c.FormValue("email"))
	if err != nil {
		fm["message"] = "There is a problem with the login process."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if !user.CheckPassword(c.FormValue("password")) {
		fm["message"] = "There is a problem with the login process."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if !user.IsActive() {
		fm["message"] = "Please activate your account first. Check your inbox."
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if err := createUserSession(c, user); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := userRepo.Update(user); err != nil {
		log.Warnf("login: updating last login for user %d failed: %v", user.ID, err)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome back!",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.PublicRoute)
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect(constants.LoginRoute)
	}

	c.Locals(usercontext.KeyFromProtected, false)

	fm = fiber.Map{
		"type":    "success",
		"message": "See you soon!",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.PublicRoute)
}

// createUserSession writes the logged-in user into the server-side session.
func createUserSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_EMAIL, user.Email)

	return sess.Save()
}
