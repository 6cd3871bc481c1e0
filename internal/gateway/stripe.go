package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/teachniche/marketplace/internal/config"
)

// Client is the Stripe-backed payment gateway adapter. Services depend on
// their own narrow interfaces; this type satisfies all of them so the vendor
// stays a swappable implementation detail.
type Client struct {
	webhookSecret string
}

func NewClient(cfg *config.Config) *Client {
	stripe.Key = cfg.StripeSecretKey
	return &Client{webhookSecret: cfg.StripeWebhookSecret}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.Title),
						Description: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(toCents(p.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		ClientReferenceID: stripe.String(p.ClientReferenceID),
	}
	params.AddMetadata("lessonId", p.LessonID)
	params.AddMetadata("userId", p.UserID)
	params.AddMetadata("purchaseId", p.PurchaseID)
	params.AddMetadata("creatorId", p.CreatorID)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("can't create checkout session: %w", err)
	}
	return mapSession(s), nil
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("line_items")
	params.AddExpand("payment_intent")

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("can't retrieve checkout session %s: %w", sessionID, err)
	}
	return mapSession(s), nil
}

// ConstructEvent verifies the webhook signature and maps the payload to a
// vendor-neutral event. A signature mismatch fails closed.
func (c *Client) ConstructEvent(payload []byte, signature string) (*Event, error) {
	ev, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	out := &Event{Type: string(ev.Type)}
	switch out.Type {
	case EventCheckoutSessionCompleted:
		var s stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("can't decode checkout session event: %w", err)
		}
		out.Session = mapSession(&s)
	case EventPaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("can't decode payment intent event: %w", err)
		}
		out.PaymentIntent = &PaymentIntent{
			ID:       pi.ID,
			Amount:   fromCents(pi.Amount),
			Metadata: pi.Metadata,
		}
	case EventChargeRefunded:
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("can't decode charge event: %w", err)
		}
		charge := &Charge{
			ID:             ch.ID,
			AmountRefunded: fromCents(ch.AmountRefunded),
		}
		if ch.PaymentIntent != nil {
			charge.PaymentIntentID = ch.PaymentIntent.ID
		}
		if ch.Refunds != nil && len(ch.Refunds.Data) > 0 {
			charge.RefundID = ch.Refunds.Data[0].ID
		}
		out.Charge = charge
	}
	return out, nil
}

func mapSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:                s.ID,
		URL:               s.URL,
		PaymentStatus:     string(s.PaymentStatus),
		Metadata:          s.Metadata,
		ClientReferenceID: s.ClientReferenceID,
		AmountTotal:       fromCents(s.AmountTotal),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(amount int64) float64 {
	return float64(amount) / 100
}
