package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
)

const (
	// ProviderStripe tags ledger rows with the processor that sent them.
	ProviderStripe = "stripe"
	// MinimumChargeMinorUnits is the processor's minimum chargeable amount
	// (50 pence).
	MinimumChargeMinorUnits = 50
	// MinimumTransferMinorUnits is the smallest transfer the flow issues.
	MinimumTransferMinorUnits = 1
	// ConnectedAccountCountry is the fixed country for new payout accounts.
	ConnectedAccountCountry = "GB"
)

// Metadata keys carried on checkout sessions and transfers.
const (
	MetaProductID         = "product_id"
	MetaPotterID          = "potter_id"
	MetaStripeAccountID   = "stripe_account_id"
	MetaCheckoutSessionID = "checkout_session_id"
	MetaCommissionPercent = "commission_percent"
	MetaCommissionAmount  = "commission_amount"
)

// Notifier is told about completed sales after the transfer succeeds.
// Notifications are best-effort and never fail the settlement.
type Notifier interface {
	NotifySale(potterID uint, t *models.PayoutTransfer)
}

// Service implements the three settlement flows: checkout initiation,
// webhook handling and payout-account onboarding. Dependencies are
// injected per instance; nothing reaches for globals.
type Service struct {
	proc     payments.Processor
	repo     Repository
	baseURL  string
	notifier Notifier
}

// NewService creates a settlement service.
func NewService(proc payments.Processor, repo Repository, baseURL string) *Service {
	return &Service{proc: proc, repo: repo, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewServiceFromDB creates a settlement service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, proc payments.Processor, baseURL string) *Service {
	return NewService(proc, NewRepository(db), baseURL)
}

// WithNotifier attaches a sale notifier and returns the service.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// CreateCheckout builds a hosted checkout session for a single product and
// returns its redirect URL. No local state is written; the session lives in
// the processor's system of record.
func (s *Service) CreateCheckout(ctx context.Context, productUUID, potterUUID string) (string, error) {
	product, err := s.repo.GetActiveProductByUUID(productUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProductNotFound
		}
		return "", fmt.Errorf("load product: %w", err)
	}

	potter, err := s.repo.GetActivePotterByUUID(potterUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPotterNotFound
		}
		return "", fmt.Errorf("load maker: %w", err)
	}

	if !potter.IsPaymentReady() {
		return "", ErrNotPaymentReady
	}

	unitAmount := product.PriceMinorUnits()
	if unitAmount < MinimumChargeMinorUnits {
		return "", ErrBelowMinimumCharge
	}

	currency := strings.ToLower(product.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}

	sess, err := s.proc.CreateCheckoutSession(ctx, payments.CheckoutInput{
		Currency:    currency,
		UnitAmount:  unitAmount,
		ProductName: product.Name,
		Description: "by " + potter.Name,
		ImageURL:    s.absoluteImageURL(product.ImagePath),
		Metadata: map[string]string{
			MetaProductID:       product.UUID,
			MetaPotterID:        potter.UUID,
			MetaStripeAccountID: *potter.StripeAccountID,
		},
		SuccessURL: s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.baseURL + "/" + potter.Slug + "/" + product.Slug,
	})
	if err != nil {
		return "", fmt.Errorf("checkout session could not be created: %w", err)
	}
	if sess.URL == "" {
		return "", fmt.Errorf("checkout session has no redirect URL")
	}

	return sess.URL, nil
}

// CreateOnboardingLink returns a time-limited Stripe onboarding URL for the
// potter, creating the connected account first if none is linked yet. The
// new account reference is persisted immediately; if that write fails the
// remote account is left orphaned and the error is surfaced for retry.
func (s *Service) CreateOnboardingLink(ctx context.Context, potterID uint) (string, error) {
	potter, err := s.repo.GetPotterByID(potterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrPotterNotFound
		}
		return "", fmt.Errorf("load maker: %w", err)
	}

	accountID := ""
	if potter.IsPaymentReady() {
		accountID = *potter.StripeAccountID
	} else {
		accountID, err = s.proc.CreateAccount(ctx, ConnectedAccountCountry)
		if err != nil {
			return "", fmt.Errorf("payout account could not be created: %w", err)
		}
		if err := s.repo.SetPotterStripeAccount(potter.ID, accountID); err != nil {
			return "", fmt.Errorf("failed to save payout account reference: %w", err)
		}
	}

	returnURL := s.baseURL + "/dashboard/connect-stripe?success=1"
	refreshURL := s.baseURL + "/dashboard/connect-stripe"

	url, err := s.proc.CreateAccountLink(ctx, accountID, refreshURL, returnURL)
	if err != nil {
		return "", fmt.Errorf("onboarding link could not be created: %w", err)
	}

	return url, nil
}

// absoluteImageURL resolves a possibly relative image path against the site
// base URL. Stripe requires absolute image URLs on checkout sessions.
func (s *Service) absoluteImageURL(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	if !strings.HasPrefix(imagePath, "/") {
		imagePath = "/" + imagePath
	}
	return s.baseURL + imagePath
}
