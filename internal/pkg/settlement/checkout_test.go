package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/payments"
)

func checkoutFixtures(price float64) (*fakeRepository, *fakeProcessor) {
	repo := newFakeRepository()
	repo.products["prod-1"] = &models.Product{
		ID: 1, UUID: "prod-1", PotterID: 7, Name: "Glazed Bowl", Slug: "glazed-bowl",
		Price: price, Currency: "gbp", ImagePath: "/uploads/bowl.jpg", Active: true,
	}
	repo.potters["pot-1"] = &models.Potter{
		ID: 7, UUID: "pot-1", Slug: "anna", Name: "Anna", Active: true,
		StripeAccountID: strPtr("acct_1"),
	}
	proc := &fakeProcessor{session: &payments.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/pay/cs_1"}}
	return repo, proc
}

func TestCreateCheckoutReturnsRedirectURL(t *testing.T) {
	repo, proc := checkoutFixtures(24.50)
	svc := NewService(proc, repo, "https://gallery.example/")

	url, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1")
	if err != nil {
		t.Fatalf("CreateCheckout returned error: %v", err)
	}
	if url != "https://checkout.stripe.com/pay/cs_1" {
		t.Fatalf("unexpected redirect URL %q", url)
	}

	if len(proc.checkoutCalls) != 1 {
		t.Fatalf("expected one checkout session call")
	}
	in := proc.checkoutCalls[0]
	if in.UnitAmount != 2450 {
		t.Fatalf("unit amount = %d, want 2450", in.UnitAmount)
	}
	if in.Metadata[MetaStripeAccountID] != "acct_1" || in.Metadata[MetaPotterID] != "pot-1" || in.Metadata[MetaProductID] != "prod-1" {
		t.Fatalf("unexpected session metadata: %+v", in.Metadata)
	}
	if in.ImageURL != "https://gallery.example/uploads/bowl.jpg" {
		t.Fatalf("image URL not absolute: %q", in.ImageURL)
	}
	if in.CancelURL != "https://gallery.example/anna/glazed-bowl" {
		t.Fatalf("cancel URL = %q", in.CancelURL)
	}
	if in.SuccessURL != "https://gallery.example/checkout/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("success URL = %q", in.SuccessURL)
	}
}

func TestCreateCheckoutMinimumCharge(t *testing.T) {
	// 49 pence is below the processor minimum, 50 proceeds.
	repo, proc := checkoutFixtures(0.49)
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); !errors.Is(err, ErrBelowMinimumCharge) {
		t.Fatalf("expected minimum-charge rejection for 49p, got %v", err)
	}
	if len(proc.checkoutCalls) != 0 {
		t.Fatalf("expected no session call for rejected price")
	}

	repo.products["prod-1"].Price = 0.50
	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); err != nil {
		t.Fatalf("expected 50p checkout to proceed, got %v", err)
	}
}

func TestCreateCheckoutRequiresPaymentReadyPotter(t *testing.T) {
	repo, proc := checkoutFixtures(24.50)
	repo.potters["pot-1"].StripeAccountID = nil
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); !errors.Is(err, ErrNotPaymentReady) {
		t.Fatalf("expected not-payment-ready error, got %v", err)
	}
}

func TestCreateCheckoutRequiresActiveRecords(t *testing.T) {
	repo, proc := checkoutFixtures(24.50)
	repo.products["prod-1"].Active = false
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product-not-found for inactive product, got %v", err)
	}

	repo.products["prod-1"].Active = true
	repo.potters["pot-1"].Active = false
	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); !errors.Is(err, ErrPotterNotFound) {
		t.Fatalf("expected maker-not-found for inactive potter, got %v", err)
	}
}

func TestCreateCheckoutWrapsProcessorErrors(t *testing.T) {
	repo, proc := checkoutFixtures(24.50)
	proc.sessionErr = errors.New("stripe 503")
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateCheckout(context.Background(), "prod-1", "pot-1"); err == nil {
		t.Fatalf("expected wrapped processor error")
	}
}
