package paymentsvc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/zenkai/taiji/core"
	"github.com/zenkai/taiji/core/billing"
)

var ErrUnhandledEvent = errors.New("unhandled webhook event")

type stripeService struct {
	conf   *core.Config
	logger core.Logger
}

var _ billing.CheckoutProvider = (*stripeService)(nil)

func NewStripeService(conf *core.Config, logger core.Logger) *stripeService {
	stripe.Key = conf.Stripe.SecretKey
	return &stripeService{conf: conf, logger: logger}
}

// CreateCheckoutSession opens a hosted checkout for the premium upgrade.
// The learner ID rides along as the client reference so the webhook can
// attribute the payment.
func (svc *stripeService) CreateCheckoutSession(ctx context.Context, userID, email string) (billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(userID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(svc.conf.Stripe.PremiumPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(svc.conf.Stripe.SuccessURL),
		CancelURL:  stripe.String(svc.conf.Stripe.CancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("stripe checkout session: %v", err), err)
		return billing.CheckoutSession{}, errors.Wrap(err, "creating stripe session")
	}
	return billing.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// CompletedCheckoutUser verifies a webhook payload and, for a completed
// checkout, returns the learner it belongs to.
// ErrUnhandledEvent is returned for event types we do not care about.
func (svc *stripeService) CompletedCheckoutUser(payload []byte, signature string) (string, error) {
	event, err := webhook.ConstructEvent(payload, signature, svc.conf.Stripe.WebhookSecret)
	if err != nil {
		return "", errors.Wrap(err, "verifying webhook signature")
	}
	if event.Type != "checkout.session.completed" {
		return "", ErrUnhandledEvent
	}

	var sess stripe.CheckoutSession
	if err = json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return "", errors.Wrap(err, "decoding checkout session")
	}
	if sess.ClientReferenceID == "" {
		return "", errors.New("checkout session has no client reference")
	}
	return sess.ClientReferenceID, nil
}
