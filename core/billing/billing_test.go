package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	profiles map[string]Profile
}

func newRepoMock() *repoMock { return &repoMock{profiles: make(map[string]Profile)} }

func (r *repoMock) GetProfile(ctx context.Context, userID string) (Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (r *repoMock) UpsertProfile(ctx context.Context, profile Profile) (Profile, error) {
	r.profiles[profile.UserID] = profile
	return profile, nil
}

type providerMock struct {
	sess CheckoutSession
	err  error
}

func (p *providerMock) CreateCheckoutSession(ctx context.Context, userID, email string) (CheckoutSession, error) {
	return p.sess, p.err
}

func TestService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 3, 10, 8, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	repo := newRepoMock()
	provider := &providerMock{sess: CheckoutSession{ID: "cs_123", URL: "https://checkout.test/cs_123"}}
	svc := NewService(repo, provider)

	// unknown learner defaults to free tier
	profile, err := svc.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserID)
	assert.False(t, profile.HasPremium)

	ent, err := svc.Entitlement(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ent.HasPremium)

	profile, err = svc.GrantPremium(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, profile.HasPremium)
	assert.Equal(t, now, profile.UpdatedAt)

	ent, err = svc.Entitlement(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ent.HasPremium)

	profile, err = svc.RevokePremium(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, profile.HasPremium)

	sess, err := svc.CreateCheckoutSession(ctx, "u1", "jet@test.cool")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", sess.ID)
}
