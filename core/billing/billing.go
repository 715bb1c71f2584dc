package billing

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/course"
)

var (
	ErrProfileNotFound = errors.New("billing profile not found")

	// mockable
	nowFunc = time.Now
)

type (
	// Profile is a learner's billing state. A missing row means free tier.
	Profile struct {
		UserID     string    `json:"user_id"`
		HasPremium bool      `json:"has_premium"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	// CheckoutSession points the learner at the hosted payment page.
	CheckoutSession struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}

	// CheckoutProvider talks to the payment processor.
	CheckoutProvider interface {
		CreateCheckoutSession(ctx context.Context, userID, email string) (CheckoutSession, error)
	}

	Repository interface {
		GetProfile(ctx context.Context, userID string) (Profile, error)
		UpsertProfile(ctx context.Context, profile Profile) (Profile, error)
	}

	Service interface {
		// Profile returns the learner's billing profile, defaulting to
		// the free tier when none is stored.
		Profile(ctx context.Context, userID string) (Profile, error)
		Entitlement(ctx context.Context, userID string) (course.Entitlement, error)
		GrantPremium(ctx context.Context, userID string) (Profile, error)
		RevokePremium(ctx context.Context, userID string) (Profile, error)
		CreateCheckoutSession(ctx context.Context, userID, email string) (CheckoutSession, error)
	}

	service struct {
		repo     Repository
		provider CheckoutProvider
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, provider CheckoutProvider) Service {
	return &service{repo: repo, provider: provider}
}

func (svc *service) Profile(ctx context.Context, userID string) (Profile, error) {
	profile, err := svc.repo.GetProfile(ctx, userID)
	if errors.Cause(err) == ErrProfileNotFound {
		return Profile{UserID: userID}, nil
	}
	return profile, errors.Wrap(err, "loading billing profile")
}

func (svc *service) Entitlement(ctx context.Context, userID string) (course.Entitlement, error) {
	profile, err := svc.Profile(ctx, userID)
	if err != nil {
		return course.Entitlement{}, err
	}
	return course.Entitlement{HasPremium: profile.HasPremium}, nil
}

func (svc *service) GrantPremium(ctx context.Context, userID string) (Profile, error) {
	return svc.setPremium(ctx, userID, true)
}

func (svc *service) RevokePremium(ctx context.Context, userID string) (Profile, error) {
	return svc.setPremium(ctx, userID, false)
}

func (svc *service) setPremium(ctx context.Context, userID string, premium bool) (Profile, error) {
	profile := Profile{
		UserID:     userID,
		HasPremium: premium,
		UpdatedAt:  nowFunc().UTC(),
	}
	profile, err := svc.repo.UpsertProfile(ctx, profile)
	return profile, errors.Wrap(err, "updating billing profile")
}

func (svc *service) CreateCheckoutSession(ctx context.Context, userID, email string) (CheckoutSession, error) {
	sess, err := svc.provider.CreateCheckoutSession(ctx, userID, email)
	return sess, errors.Wrap(err, "creating checkout session")
}
