package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/ceramicsgallery/ceramics-gallery/app/models"
)

func TestCreateOnboardingLinkCreatesAndPersistsAccount(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true}
	proc := &fakeProcessor{accountID: "acct_new", linkURL: "https://connect.stripe.com/setup/x"}
	svc := NewService(proc, repo, "https://gallery.example")

	url, err := svc.CreateOnboardingLink(context.Background(), 7)
	if err != nil {
		t.Fatalf("CreateOnboardingLink returned error: %v", err)
	}
	if url != "https://connect.stripe.com/setup/x" {
		t.Fatalf("unexpected onboarding URL %q", url)
	}
	if proc.accountCalls != 1 {
		t.Fatalf("expected one account creation, got %d", proc.accountCalls)
	}
	if repo.savedAccounts[7] != "acct_new" {
		t.Fatalf("account reference was not persisted on the potter")
	}
	if len(proc.linkCalls) != 1 || proc.linkCalls[0] != "acct_new" {
		t.Fatalf("account link not requested for the new account: %+v", proc.linkCalls)
	}
}

func TestCreateOnboardingLinkReusesExistingAccount(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true, StripeAccountID: strPtr("acct_old")}
	proc := &fakeProcessor{linkURL: "https://connect.stripe.com/setup/y"}
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateOnboardingLink(context.Background(), 7); err != nil {
		t.Fatalf("CreateOnboardingLink returned error: %v", err)
	}
	if proc.accountCalls != 0 {
		t.Fatalf("expected no second remote account, got %d creations", proc.accountCalls)
	}
	if len(proc.linkCalls) != 1 || proc.linkCalls[0] != "acct_old" {
		t.Fatalf("expected link for the existing account, got %+v", proc.linkCalls)
	}
}

func TestCreateOnboardingLinkUnknownPotter(t *testing.T) {
	repo := newFakeRepository()
	proc := &fakeProcessor{}
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateOnboardingLink(context.Background(), 99); !errors.Is(err, ErrPotterNotFound) {
		t.Fatalf("expected maker-not-found, got %v", err)
	}
}

func TestCreateOnboardingLinkSurfacesAccountError(t *testing.T) {
	repo := newFakeRepository()
	repo.potters["pot-1"] = &models.Potter{ID: 7, UUID: "pot-1", Active: true}
	proc := &fakeProcessor{accountErr: errors.New("stripe 500")}
	svc := NewService(proc, repo, "https://gallery.example")

	if _, err := svc.CreateOnboardingLink(context.Background(), 7); err == nil {
		t.Fatalf("expected account creation error to surface")
	}
	if len(proc.linkCalls) != 0 {
		t.Fatalf("expected no link request after failed account creation")
	}
}
