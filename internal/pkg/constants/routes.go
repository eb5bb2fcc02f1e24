package constants

// Static route constants
const (
	PublicRoute  = "/"
	UploadsRoute = "/uploads"
	// Upload path without leading slash for URL construction
	UploadsPath = "uploads"

	LoginRoute         = "/login"
	RegisterRoute      = "/register"
	ChooseRoute        = "/choose"
	CoursesRoute       = "/courses"
	DashboardRoute     = "/dashboard"
	ConnectStripeRoute = "/dashboard/connect-stripe"
	AdminRoute         = "/admin"
	StripeWebhookRoute = "/api/webhooks/stripe"
	CheckoutSuccess    = "/checkout/success"
)
