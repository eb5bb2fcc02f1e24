package payments

import "errors"

// Sentinel errors for webhook verification. The settlement flow maps these
// onto configuration vs verification outcomes.
var (
	// ErrNotConfigured means the secret key or webhook signing secret is
	// missing. Fail closed: nothing is processed.
	ErrNotConfigured = errors.New("payment processor is not configured")
	// ErrVerification means the signature did not verify over the raw body
	// or the payload was malformed.
	ErrVerification = errors.New("webhook verification failed")
)

// EventTypeCheckoutCompleted is the only event type the settlement flow
// acts on.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// PaymentStatusPaid is the checkout session payment status required before
// any transfer is issued.
const PaymentStatusPaid = "paid"

// CheckoutInput describes the hosted checkout session to create.
type CheckoutInput struct {
	Currency    string
	UnitAmount  int64             // minor units
	ProductName string
	Description string
	ImageURL    string            // absolute URL, optional
	Metadata    map[string]string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the subset of a processor checkout session the
// settlement flow reads.
type CheckoutSession struct {
	ID             string
	URL            string
	Currency       string
	AmountSubtotal int64             // net of tax, minor units
	PaymentStatus  string
	Metadata       map[string]string
}

// Event is a verified webhook notification. Session is populated only for
// checkout-session events.
type Event struct {
	ID      string
	Type    string
	Session *CheckoutSession
}

// TransferInput describes a movement of settled funds to a connected
// account. Metadata carries the commission figures for reconciliation.
type TransferInput struct {
	Amount      int64             // minor units
	Currency    string
	Destination string            // connected account reference
	Metadata    map[string]string
}
