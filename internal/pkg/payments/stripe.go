package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/ceramicsgallery/ceramics-gallery/internal/pkg/env"
)

// StripeProcessor implements Processor against the Stripe API.
type StripeProcessor struct {
	api           *client.API
	webhookSecret string
	configured    bool
}

// NewStripeProcessor builds a processor from an explicit secret key and
// webhook signing secret.
func NewStripeProcessor(secretKey, webhookSecret string) *StripeProcessor {
	api := &client.API{}
	if secretKey != "" {
		api.Init(secretKey, nil)
	}
	return &StripeProcessor{api: api, webhookSecret: webhookSecret, configured: secretKey != ""}
}

// NewStripeProcessorFromEnv builds a processor from STRIPE_SECRET_KEY and
// STRIPE_WEBHOOK_SECRET.
func NewStripeProcessorFromEnv() *StripeProcessor {
	return NewStripeProcessor(
		env.GetEnv("STRIPE_SECRET_KEY", ""),
		env.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
	)
}

// Configured reports whether a secret key is present.
func (p *StripeProcessor) Configured() bool {
	return p.configured
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSession, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name:        stripe.String(in.ProductName),
		Description: stripe.String(in.Description),
	}
	if in.ImageURL != "" {
		productData.Images = stripe.StringSlice([]string{in.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(in.Currency),
					ProductData: productData,
					UnitAmount:  stripe.Int64(in.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Currency: string(sess.Currency),
		Metadata: sess.Metadata,
	}, nil
}

func (p *StripeProcessor) ConstructEvent(payload []byte, signatureHeader string) (*Event, error) {
	if p.webhookSecret == "" || signatureHeader == "" {
		return nil, ErrNotConfigured
	}

	stripeEvent, err := webhook.ConstructEvent(payload, signatureHeader, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	ev := &Event{ID: stripeEvent.ID, Type: string(stripeEvent.Type)}
	if ev.Type == EventTypeCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVerification, err)
		}
		amountSubtotal := sess.AmountSubtotal
		ev.Session = &CheckoutSession{
			ID:             sess.ID,
			Currency:       string(sess.Currency),
			AmountSubtotal: amountSubtotal,
			PaymentStatus:  string(sess.PaymentStatus),
			Metadata:       sess.Metadata,
		}
	}

	return ev, nil
}

func (p *StripeProcessor) CreateTransfer(ctx context.Context, in TransferInput) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(in.Amount),
		Currency:    stripe.String(in.Currency),
		Destination: stripe.String(in.Destination),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	tr, err := p.api.Transfers.New(params)
	if err != nil {
		return "", fmt.Errorf("create transfer: %w", err)
	}
	return tr.ID, nil
}

func (p *StripeProcessor) CreateAccount(ctx context.Context, country string) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Country: stripe.String(country),
	}
	params.Context = ctx

	acct, err := p.api.Account.New(params)
	if err != nil {
		return "", fmt.Errorf("create connected account: %w", err)
	}
	return acct.ID, nil
}

func (p *StripeProcessor) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	if !p.Configured() {
		return "", ErrNotConfigured
	}

	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		return "", fmt.Errorf("create account link: %w", err)
	}
	return link.URL, nil
}
