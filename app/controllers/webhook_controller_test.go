package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/constants"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/settlement"
)

// stubProcessor scripts the processor responses the webhook needs.
type stubProcessor struct {
	event       *payments.Event
	eventErr    error
	transferID  string
	transferErr error
}

func (s *stubProcessor) CreateCheckoutSession(context.Context, payments.CheckoutInput) (*payments.CheckoutSession, error) {
	return nil, payments.ErrNotConfigured
}

func (s *stubProcessor) ConstructEvent([]byte, string) (*payments.Event, error) {
	if s.eventErr != nil {
		return nil, s.eventErr
	}
	return s.event, nil
}

func (s *stubProcessor) CreateTransfer(context.Context, payments.TransferInput) (string, error) {
	if s.transferErr != nil {
		return "", s.transferErr
	}
	return s.transferID, nil
}

func (s *stubProcessor) CreateAccount(context.Context, string) (string, error) {
	return "", payments.ErrNotConfigured
}

func (s *stubProcessor) CreateAccountLink(context.Context, string, string, string) (string, error) {
	return "", payments.ErrNotConfigured
}

// stubSettlementRepo is the minimal in-memory state the webhook flow touches.
type stubSettlementRepo struct {
	potter      *models.Potter
	events      map[string]*models.WebhookEvent
	nextEventID uint
	transfers   []*models.PayoutTransfer
}

func newStubSettlementRepo() *stubSettlementRepo {
	return &stubSettlementRepo{events: map[string]*models.WebhookEvent{}}
}

func (r *stubSettlementRepo) GetActiveProductByUUID(string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSettlementRepo) GetActivePotterByUUID(string) (*models.Potter, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSettlementRepo) GetPotterByUUID(uuid string) (*models.Potter, error) {
	if r.potter != nil && r.potter.UUID == uuid {
		return r.potter, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSettlementRepo) GetPotterByID(id uint) (*models.Potter, error) {
	if r.potter != nil && r.potter.ID == id {
		return r.potter, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSettlementRepo) SetPotterStripeAccount(uint, string) error { return nil }

func (r *stubSettlementRepo) DefaultCommissionPercent() (float64, error) { return 10, nil }

func (r *stubSettlementRepo) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	if existing, ok := r.events[event.ProviderEventID]; ok {
		return false, existing, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	r.events[event.ProviderEventID] = event
	return true, event, nil
}

func (r *stubSettlementRepo) MarkWebhookProcessed(uint, error) error { return nil }

func (r *stubSettlementRepo) CreatePayoutTransfer(t *models.PayoutTransfer) error {
	r.transfers = append(r.transfers, t)
	return nil
}

func paidCheckoutEvent(metadata map[string]string, subtotal int64) *payments.Event {
	return &payments.Event{
		ID:   "evt_test",
		Type: payments.EventTypeCheckoutCompleted,
		Session: &payments.CheckoutSession{
			ID:             "cs_test",
			Currency:       "gbp",
			AmountSubtotal: subtotal,
			PaymentStatus:  payments.PaymentStatusPaid,
			Metadata:       metadata,
		},
	}
}

func postWebhook(t *testing.T, proc payments.Processor, repo settlement.Repository) (int, map[string]interface{}) {
	t.Helper()

	SetSettlementService(settlement.NewService(proc, repo, "https://gallery.example"))
	t.Cleanup(func() { SetSettlementService(nil) })

	app := fiber.New()
	app.Post(constants.StripeWebhookRoute, HandleStripeWebhook)

	req := httptest.NewRequest(fiber.MethodPost, constants.StripeWebhookRoute, bytes.NewReader([]byte("{}")))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestHandleStripeWebhookAcknowledgesTransfer(t *testing.T) {
	repo := newStubSettlementRepo()
	repo.potter = &models.Potter{ID: 3, UUID: "pot-1", Active: true}
	proc := &stubProcessor{
		event:      paidCheckoutEvent(map[string]string{settlement.MetaPotterID: "pot-1", settlement.MetaStripeAccountID: "acct_1"}, 100),
		transferID: "tr_1",
	}

	status, body := postWebhook(t, proc, repo)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["received"])
	assert.Equal(t, "transferred", body["outcome"])
	assert.Len(t, repo.transfers, 1)
}

func TestHandleStripeWebhookBadSignatureIsPermanentReject(t *testing.T) {
	proc := &stubProcessor{eventErr: payments.ErrVerification}

	status, body := postWebhook(t, proc, newStubSettlementRepo())
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "verification failed")
}

func TestHandleStripeWebhookMissingMetadataIsPermanentReject(t *testing.T) {
	proc := &stubProcessor{
		event: paidCheckoutEvent(map[string]string{settlement.MetaPotterID: "pot-1"}, 100),
	}

	status, body := postWebhook(t, proc, newStubSettlementRepo())
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "metadata")
}

func TestHandleStripeWebhookInvalidAmountIsPermanentReject(t *testing.T) {
	proc := &stubProcessor{
		event: paidCheckoutEvent(map[string]string{settlement.MetaPotterID: "pot-1", settlement.MetaStripeAccountID: "acct_1"}, 0),
	}

	status, _ := postWebhook(t, proc, newStubSettlementRepo())
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleStripeWebhookMissingConfigurationAsksForRetry(t *testing.T) {
	proc := &stubProcessor{eventErr: payments.ErrNotConfigured}

	status, _ := postWebhook(t, proc, newStubSettlementRepo())
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestHandleStripeWebhookTransferFailureAsksForRetry(t *testing.T) {
	repo := newStubSettlementRepo()
	repo.potter = &models.Potter{ID: 3, UUID: "pot-1", Active: true}
	proc := &stubProcessor{
		event:       paidCheckoutEvent(map[string]string{settlement.MetaPotterID: "pot-1", settlement.MetaStripeAccountID: "acct_1"}, 100),
		transferErr: errors.New("stripe unavailable"),
	}

	status, _ := postWebhook(t, proc, repo)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Empty(t, repo.transfers)
}

func TestHandleStripeWebhookIgnoresUnrelatedEvents(t *testing.T) {
	proc := &stubProcessor{event: &payments.Event{ID: "evt_test", Type: "payment_intent.succeeded"}}

	status, body := postWebhook(t, proc, newStubSettlementRepo())
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ignored", body["outcome"])
}

func TestHandleStripeWebhookUnconfiguredServiceAsksForRetry(t *testing.T) {
	SetSettlementService(nil)

	app := fiber.New()
	app.Post(constants.StripeWebhookRoute, HandleStripeWebhook)

	req := httptest.NewRequest(fiber.MethodPost, constants.StripeWebhookRoute, bytes.NewReader([]byte("{}")))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
