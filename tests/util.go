package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  &isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// SetPremium flips a user's premium flag directly in storage.
func SetPremium(t *testing.T, repo billing.Repository, userID string, premium bool) billing.Profile {
	t.Helper()

	profile, err := repo.UpsertProfile(context.Background(), billing.Profile{
		UserID:     userID,
		HasPremium: premium,
		UpdatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("SetPremium() failed: %v", err)
	}
	return profile
}
