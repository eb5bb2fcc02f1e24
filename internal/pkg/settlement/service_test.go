package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
)

// fakeProcessor scripts processor responses and records calls.
type fakeProcessor struct {
	event       *payments.Event
	eventErr    error
	session     *payments.CheckoutSession
	sessionErr  error
	transferID  string
	transferErr error
	accountID   string
	accountErr  error
	linkURL     string
	linkErr     error

	checkoutCalls []payments.CheckoutInput
	transferCalls []payments.TransferInput
	accountCalls  int
	linkCalls     []string
}

func (f *fakeProcessor) CreateCheckoutSession(_ context.Context, in payments.CheckoutInput) (*payments.CheckoutSession, error) {
	f.checkoutCalls = append(f.checkoutCalls, in)
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.session, nil
}

func (f *fakeProcessor) ConstructEvent(payload []byte, signatureHeader string) (*payments.Event, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

func (f *fakeProcessor) CreateTransfer(_ context.Context, in payments.TransferInput) (string, error) {
	f.transferCalls = append(f.transferCalls, in)
	if f.transferErr != nil {
		return "", f.transferErr
	}
	return f.transferID, nil
}

func (f *fakeProcessor) CreateAccount(_ context.Context, country string) (string, error) {
	f.accountCalls++
	if f.accountErr != nil {
		return "", f.accountErr
	}
	return f.accountID, nil
}

func (f *fakeProcessor) CreateAccountLink(_ context.Context, accountID, refreshURL, returnURL string) (string, error) {
	f.linkCalls = append(f.linkCalls, accountID)
	if f.linkErr != nil {
		return "", f.linkErr
	}
	return f.linkURL, nil
}

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	products          map[string]*models.Product
	potters           map[string]*models.Potter
	defaultCommission float64

	events        map[string]*models.WebhookEvent
	nextEventID   uint
	transfers     []*models.PayoutTransfer
	savedAccounts map[uint]string

	storeReads int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		products:          map[string]*models.Product{},
		potters:           map[string]*models.Potter{},
		defaultCommission: 10,
		events:            map[string]*models.WebhookEvent{},
		savedAccounts:     map[uint]string{},
	}
}

func (r *fakeRepository) GetActiveProductByUUID(uuid string) (*models.Product, error) {
	r.storeReads++
	p, ok := r.products[uuid]
	if !ok || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepository) GetActivePotterByUUID(uuid string) (*models.Potter, error) {
	r.storeReads++
	p, ok := r.potters[uuid]
	if !ok || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepository) GetPotterByUUID(uuid string) (*models.Potter, error) {
	r.storeReads++
	p, ok := r.potters[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeRepository) GetPotterByID(id uint) (*models.Potter, error) {
	r.storeReads++
	for _, p := range r.potters {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) SetPotterStripeAccount(potterID uint, accountID string) error {
	r.savedAccounts[potterID] = accountID
	for _, p := range r.potters {
		if p.ID == potterID {
			p.StripeAccountID = &accountID
		}
	}
	return nil
}

func (r *fakeRepository) DefaultCommissionPercent() (float64, error) {
	r.storeReads++
	return r.defaultCommission, nil
}

func (r *fakeRepository) CreateWebhookEventIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	if existing, ok := r.events[event.ProviderEventID]; ok {
		return false, existing, nil
	}
	r.nextEventID++
	event.ID = r.nextEventID
	r.events[event.ProviderEventID] = event
	return true, event, nil
}

func (r *fakeRepository) MarkWebhookProcessed(id uint, processingErr error) error {
	for _, ev := range r.events {
		if ev.ID == id {
			now := time.Now()
			ev.ProcessedAt = &now
			if processingErr != nil {
				ev.ProcessingError = processingErr.Error()
			} else {
				ev.ProcessingError = ""
			}
		}
	}
	return nil
}

func (r *fakeRepository) CreatePayoutTransfer(t *models.PayoutTransfer) error {
	r.transfers = append(r.transfers, t)
	return nil
}

func strPtr(s string) *string { return &s }

func paidEvent(id string, subtotal int64, metadata map[string]string) *payments.Event {
	return &payments.Event{
		ID:   id,
		Type: payments.EventTypeCheckoutCompleted,
		Session: &payments.CheckoutSession{
			ID:             "cs_" + id,
			Currency:       "gbp",
			AmountSubtotal: subtotal,
			PaymentStatus:  payments.PaymentStatusPaid,
			Metadata:       metadata,
		},
	}
}

func TestHandleWebhookTransfersSplitAmount(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true}
	proc := &fakeProcessor{
		event:      paidEvent("evt_1", 100, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"}),
		transferID: "tr_1",
	}
	svc := NewService(proc, repo, "https://gallery.example")

	outcome, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if outcome != OutcomeTransferred {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeTransferred)
	}
	if len(proc.transferCalls) != 1 {
		t.Fatalf("expected one transfer call, got %d", len(proc.transferCalls))
	}
	call := proc.transferCalls[0]
	if call.Amount != 90 || call.Destination != "acct_1" || call.Currency != "gbp" {
		t.Fatalf("unexpected transfer call: %+v", call)
	}
	if call.Metadata[MetaCommissionAmount] != "10" {
		t.Fatalf("commission metadata = %q, want 10", call.Metadata[MetaCommissionAmount])
	}
	if len(repo.transfers) != 1 || repo.transfers[0].TransferAmount != 90 {
		t.Fatalf("expected a recorded payout transfer of 90")
	}
}

func TestHandleWebhookUsesCommissionOverride(t *testing.T) {
	repo := newFakeRepository()
	override := 25.0
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true, CommissionOverridePercent: &override}
	proc := &fakeProcessor{
		event:      paidEvent("evt_1", 200, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"}),
		transferID: "tr_1",
	}
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if got := proc.transferCalls[0].Amount; got != 150 {
		t.Fatalf("transfer amount = %d, want 150 (25%% override)", got)
	}
}

func TestHandleWebhookIgnoresOtherEventTypes(t *testing.T) {
	repo := newFakeRepository()
	proc := &fakeProcessor{event: &payments.Event{ID: "evt_1", Type: "payment_intent.succeeded"}}
	svc := NewService(proc, repo, "https://gallery.example")

	outcome, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if err != nil {
		t.Fatalf("HandleWebhook returned error: %v", err)
	}
	if outcome != OutcomeIgnored {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeIgnored)
	}
	if len(proc.transferCalls) != 0 {
		t.Fatalf("expected no transfer calls")
	}
}

func TestHandleWebhookIgnoresUnpaidSessions(t *testing.T) {
	repo := newFakeRepository()
	ev := paidEvent("evt_1", 100, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"})
	ev.Session.PaymentStatus = "unpaid"
	proc := &fakeProcessor{event: ev}
	svc := NewService(proc, repo, "https://gallery.example")

	outcome, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if err != nil || outcome != OutcomeIgnored {
		t.Fatalf("outcome = %q, err = %v, want ignored with no error", outcome, err)
	}
	if len(proc.transferCalls) != 0 {
		t.Fatalf("expected no transfer calls for unpaid session")
	}
}

func TestHandleWebhookRejectsBadSignatureBeforeDataAccess(t *testing.T) {
	repo := newFakeRepository()
	proc := &fakeProcessor{eventErr: payments.ErrVerification}
	svc := NewService(proc, repo, "https://gallery.example")

	_, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !errors.Is(err, ErrVerification) {
		t.Fatalf("expected verification error, got %v", err)
	}
	if repo.storeReads != 0 {
		t.Fatalf("expected no data-store access before verification, got %d reads", repo.storeReads)
	}
}

func TestHandleWebhookMissingConfigurationFailsClosed(t *testing.T) {
	repo := newFakeRepository()
	proc := &fakeProcessor{eventErr: payments.ErrNotConfigured}
	svc := NewService(proc, repo, "https://gallery.example")

	_, err := svc.HandleWebhook(context.Background(), []byte("{}"), "")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if repo.storeReads != 0 || len(proc.transferCalls) != 0 {
		t.Fatalf("expected no processing on configuration error")
	}
}

func TestHandleWebhookRejectsMissingMetadata(t *testing.T) {
	repo := newFakeRepository()
	proc := &fakeProcessor{event: paidEvent("evt_1", 100, map[string]string{MetaPotterID: "pot-1"})}
	svc := NewService(proc, repo, "https://gallery.example")

	_, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !errors.Is(err, ErrInvalidMetadata) {
		t.Fatalf("expected invalid metadata error, got %v", err)
	}
	if len(proc.transferCalls) != 0 {
		t.Fatalf("expected no partial transfer on missing metadata")
	}
}

func TestHandleWebhookRejectsTinyTransfer(t *testing.T) {
	repo := newFakeRepository()
	override := 100.0
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true, CommissionOverridePercent: &override}
	proc := &fakeProcessor{event: paidEvent("evt_1", 1, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"})}
	svc := NewService(proc, repo, "https://gallery.example")

	_, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !errors.Is(err, ErrTransferTooSmall) {
		t.Fatalf("expected transfer-too-small error, got %v", err)
	}
	if len(proc.transferCalls) != 0 {
		t.Fatalf("expected no transfer call for zero transfer amount")
	}
}

func TestHandleWebhookDeduplicatesSettledEvents(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true}
	proc := &fakeProcessor{
		event:      paidEvent("evt_1", 100, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"}),
		transferID: "tr_1",
	}
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	outcome, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if err != nil {
		t.Fatalf("second delivery failed: %v", err)
	}
	if outcome != OutcomeDuplicate {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeDuplicate)
	}
	if len(proc.transferCalls) != 1 {
		t.Fatalf("redelivery must not issue a second transfer, got %d calls", len(proc.transferCalls))
	}
}

func TestHandleWebhookRetriesAfterTransferFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true}
	proc := &fakeProcessor{
		event:       paidEvent("evt_1", 100, map[string]string{MetaPotterID: "pot-1", MetaStripeAccountID: "acct_1"}),
		transferErr: errors.New("stripe is down"),
	}
	svc := NewService(proc, repo, "https://gallery.example")

	_, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("expected transfer failure, got %v", err)
	}

	// Redelivery of the same event must be processed again, not treated
	// as a settled duplicate.
	proc.transferErr = nil
	proc.transferID = "tr_2"
	outcome, err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if err != nil {
		t.Fatalf("redelivery after transfer failure errored: %v", err)
	}
	if outcome != OutcomeTransferred {
		t.Fatalf("outcome = %q, want %q", outcome, OutcomeTransferred)
	}
	if len(proc.transferCalls) != 2 {
		t.Fatalf("expected two transfer attempts, got %d", len(proc.transferCalls))
	}
}
