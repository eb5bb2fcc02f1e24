package router

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
)

// The fallback routes are terminal: once registered, no later route can
// match. These tests install the API routes and the fallback in the same
// order InstallRouter does and check the API endpoints still resolve.

func TestWebhookRouteResolvesBeforeFallback(t *testing.T) {
	app := fiber.New()
	NewApiRouter().InstallRouter(app)
	registerFallbackRoutes(app)

	req := httptest.NewRequest(fiber.MethodPost, constants.StripeWebhookRoute, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The webhook controller answers (settlement is unwired here), not
	// the 404 fallback.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "settlement not configured")
}

func TestApiGroupResolvesBeforeFallback(t *testing.T) {
	app := fiber.New()
	NewApiRouter().InstallRouter(app)
	registerFallbackRoutes(app)

	req := httptest.NewRequest(fiber.MethodGet, "/api", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
