package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/authz"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/session"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/usercontext"
)

// UserContext builds the per-request user context from the session. The
// operator policy is injected here and queried on every request; admin
// status is never trusted from the session itself.
func UserContext(policy *authz.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Goth keeps its own session state on the OAuth routes.
		if strings.HasPrefix(c.Path(), "/auth/") {
			return c.Next()
		}

		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			setAnonymous(c)
			return c.Next()
		}

		userID, ok := sess.Get(usercontext.KeyUserID).(uint)
		if !ok || userID == 0 {
			setAnonymous(c)
			return c.Next()
		}

		username := session.GetSessionValue(c, usercontext.KeyUsername)
		email := session.GetSessionValue(c, usercontext.KeyUserEmail)

		userCtx := usercontext.UserContext{
			UserID:     userID,
			Username:   username,
			Email:      email,
			IsLoggedIn: true,
			IsAdmin:    policy.IsOperator(email),
			PotterID:   resolvePotterID(c, userID),
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

		return c.Next()
	}
}

func setAnonymous(c *fiber.Ctx) {
	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		IsLoggedIn: false,
		IsAdmin:    false,
	})
	c.Locals(usercontext.KeyFromProtected, false)
	c.Locals(usercontext.KeyIsAdmin, false)
}

// resolvePotterID finds the potter profile owned by the user, session
// first, database second.
func resolvePotterID(c *fiber.Ctx, userID uint) uint {
	if cached := session.GetSessionValue(c, "potter_id"); cached != "" {
		if id, err := strconv.ParseUint(cached, 10, 64); err == nil {
			return uint(id)
		}
	}

	potter, err := repository.GetGlobalFactory().GetPotterRepository().GetByUserID(userID)
	if err != nil {
		return 0
	}
	_ = session.SetSessionValue(c, "potter_id", strconv.FormatUint(uint64(potter.ID), 10))
	return potter.ID
}
