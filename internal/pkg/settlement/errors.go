package settlement

import "errors"

// Errors surfaced by the settlement flows. Webhook handling maps them onto
// HTTP statuses: configuration and transfer failures are 500 (the processor
// retries transfer failures via redelivery), everything else is a 400-class
// rejection that redelivery cannot fix.
var (
	ErrConfiguration = errors.New("payment processor configuration missing")
	ErrVerification  = errors.New("webhook verification failed")

	ErrProductNotFound    = errors.New("product not found")
	ErrPotterNotFound     = errors.New("maker not found")
	ErrNotPaymentReady    = errors.New("maker has not set up payments yet")
	ErrBelowMinimumCharge = errors.New("price is below the minimum chargeable amount")

	ErrInvalidMetadata  = errors.New("invalid event metadata")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrTransferTooSmall = errors.New("transfer amount too small")
	ErrTransferFailed   = errors.New("transfer failed")
)
