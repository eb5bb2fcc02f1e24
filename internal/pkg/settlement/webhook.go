package settlement

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
)

// Outcome classifies an acknowledged webhook delivery.
type Outcome string

const (
	// OutcomeIgnored: wrong event type or payment not completed yet.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeDuplicate: this event id already settled a transfer.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeTransferred: the seller transfer was issued.
	OutcomeTransferred Outcome = "transferred"
)

// HandleWebhook verifies and settles a single processor webhook delivery.
// Deliveries are evaluated independently using state fetched at handling
// time; nothing assumes an order across deliveries.
//
// Signature verification happens before any data-store access. Validation
// failures come back as the sentinel errors from errors.go; a transfer
// failure leaves the ledger row unsettled so the processor's redelivery
// retries the event.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signatureHeader string) (Outcome, error) {
	event, err := s.proc.ConstructEvent(rawBody, signatureHeader)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			return "", ErrConfiguration
		}
		return "", fmt.Errorf("%w: %v", ErrVerification, err)
	}

	if event.Type != payments.EventTypeCheckoutCompleted {
		return OutcomeIgnored, nil
	}

	sess := event.Session
	if sess == nil {
		return "", ErrInvalidMetadata
	}
	if sess.PaymentStatus != payments.PaymentStatusPaid {
		// Covers async payment methods that complete later or never.
		return OutcomeIgnored, nil
	}

	created, stored, err := s.repo.CreateWebhookEventIfNotExists(&models.WebhookEvent{
		Provider:        ProviderStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
	})
	if err != nil {
		return "", fmt.Errorf("webhook event could not be recorded: %w", err)
	}
	if !created && stored.IsSettled() {
		return OutcomeDuplicate, nil
	}

	potterUUID := sess.Metadata[MetaPotterID]
	accountID := sess.Metadata[MetaStripeAccountID]
	if potterUUID == "" || accountID == "" {
		_ = s.repo.MarkWebhookProcessed(stored.ID, ErrInvalidMetadata)
		return "", ErrInvalidMetadata
	}

	if sess.AmountSubtotal < MinimumTransferMinorUnits {
		_ = s.repo.MarkWebhookProcessed(stored.ID, ErrInvalidAmount)
		return "", ErrInvalidAmount
	}

	platformDefault, err := s.repo.DefaultCommissionPercent()
	if err != nil {
		_ = s.repo.MarkWebhookProcessed(stored.ID, err)
		return "", fmt.Errorf("load default commission: %w", err)
	}

	// The transfer destination comes from the session metadata, so a
	// missing potter row only costs the override, not the settlement.
	var override *float64
	var potterID uint
	potter, err := s.repo.GetPotterByUUID(potterUUID)
	switch {
	case err == nil:
		override = potter.CommissionOverridePercent
		potterID = potter.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through with the platform default
	default:
		_ = s.repo.MarkWebhookProcessed(stored.ID, err)
		return "", fmt.Errorf("load maker: %w", err)
	}

	commissionPercent := ResolveCommissionPercent(override, platformDefault, models.FallbackCommissionPercent)
	commissionAmount, transferAmount := SplitAmount(sess.AmountSubtotal, commissionPercent)

	if transferAmount < MinimumTransferMinorUnits {
		_ = s.repo.MarkWebhookProcessed(stored.ID, ErrTransferTooSmall)
		return "", ErrTransferTooSmall
	}

	currency := strings.ToLower(sess.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}

	transferID, err := s.proc.CreateTransfer(ctx, payments.TransferInput{
		Amount:      transferAmount,
		Currency:    currency,
		Destination: accountID,
		Metadata: map[string]string{
			MetaPotterID:          potterUUID,
			MetaCheckoutSessionID: sess.ID,
			MetaCommissionPercent: strconv.FormatFloat(commissionPercent, 'f', -1, 64),
			MetaCommissionAmount:  strconv.FormatInt(commissionAmount, 10),
		},
	})
	if err != nil {
		// Leave the ledger row unsettled; the processor will redeliver.
		_ = s.repo.MarkWebhookProcessed(stored.ID, err)
		return "", fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	record := &models.PayoutTransfer{
		PotterID:          potterID,
		CheckoutSessionID: sess.ID,
		TransferID:        transferID,
		Currency:          currency,
		AmountSubtotal:    sess.AmountSubtotal,
		CommissionPercent: commissionPercent,
		CommissionAmount:  commissionAmount,
		TransferAmount:    transferAmount,
	}
	// The transfer already went out; a failed audit write must not fail
	// the event, or redelivery would pay the seller twice.
	if err := s.repo.CreatePayoutTransfer(record); err != nil {
		log.Errorf("settlement: failed to record payout transfer %s: %v", transferID, err)
	}

	if err := s.repo.MarkWebhookProcessed(stored.ID, nil); err != nil {
		log.Errorf("settlement: failed to settle webhook event %s: %v", event.ID, err)
	}

	if s.notifier != nil && potterID != 0 {
		s.notifier.NotifySale(potterID, record)
	}

	return OutcomeTransferred, nil
}
