package payments

import "context"

// Processor is the payment-processor surface the settlement flow depends
// on. Each flow receives an explicit Processor instead of touching a
// module-level client, so components stay testable in isolation.
type Processor interface {
	// CreateCheckoutSession creates a hosted checkout session and returns
	// its id and redirect URL.
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error)
	// ConstructEvent verifies the signature over the raw body and parses
	// the event. Returns ErrNotConfigured when no signing secret is set,
	// ErrVerification (wrapped) on signature mismatch or malformed payload.
	ConstructEvent(payload []byte, signatureHeader string) (*Event, error)
	// CreateTransfer moves settled funds to a connected account and
	// returns the processor transfer id.
	CreateTransfer(ctx context.Context, in TransferInput) (string, error)
	// CreateAccount creates a connected payout account and returns its
	// opaque reference.
	CreateAccount(ctx context.Context, country string) (string, error)
	// CreateAccountLink creates a time-limited onboarding link for the
	// given connected account.
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
}
