package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ceramicsgallery/ceramics-gallery/app/controllers"
	"github.com/ceramicsgallery/ceramics-gallery/app/repository"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/authz"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/database"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/env"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/imagestore"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/mail"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/middleware"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/oauth"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/session"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/settlement"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContext(authz.NewPolicyFromEnv()))

	// Wire the settlement service with the real payment processor
	svc := settlement.NewServiceFromDB(database.GetDB(), payments.NewStripeProcessorFromEnv(), env.BaseURL()).
		WithNotifier(mail.NewSaleNotifier(repository.GetGlobalRepositories()))
	controllers.SetSettlementService(svc)

	// Optional S3 mirror for uploaded images
	if cfg, err := imagestore.LoadConfig(); err == nil && cfg.IsEnabled() {
		if client, err := imagestore.NewClient(cfg); err == nil {
			controllers.SetImageStore(client, cfg)
		}
	}

	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
	h.registerPublicRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContext middleware already populated everything this page needs
	return c.Next()
}
