package paymentsvc

import (
	"context"

	"github.com/zenkai/taiji/core/billing"
)

type serviceMock struct {
	Sessions []billing.CheckoutSession
	// WebhookUserID is what CompletedCheckoutUser returns.
	WebhookUserID string
	Err           error
}

var _ billing.CheckoutProvider = (*serviceMock)(nil)

// NewServiceMock returns a checkout provider that never talks to Stripe.
func NewServiceMock() *serviceMock {
	return &serviceMock{}
}

func (svc *serviceMock) CreateCheckoutSession(ctx context.Context, userID, email string) (billing.CheckoutSession, error) {
	if svc.Err != nil {
		return billing.CheckoutSession{}, svc.Err
	}
	sess := billing.CheckoutSession{
		ID:  "cs_test_" + userID,
		URL: "https://checkout.stripe.com/pay/cs_test_" + userID,
	}
	svc.Sessions = append(svc.Sessions, sess)
	return sess, nil
}

func (svc *serviceMock) CompletedCheckoutUser(payload []byte, signature string) (string, error) {
	if svc.Err != nil {
		return "", svc.Err
	}
	if svc.WebhookUserID == "" {
		return "", ErrUnhandledEvent
	}
	return svc.WebhookUserID, nil
}
