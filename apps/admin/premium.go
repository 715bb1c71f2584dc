package main

import (
	"context"
	"time"

	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/user"
)

// setPremium grants or revokes premium access directly, without going
// through a checkout.
func (cli *commandLine) setPremium(uname string, premium bool) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{UsernameOrEmail: []string{uname}})
	if err != nil {
		return err
	}

	_, err = cli.profileRepo.UpsertProfile(ctx, billing.Profile{
		UserID:     usr.ID,
		HasPremium: premium,
		UpdatedAt:  time.Now().UTC(),
	})
	return err
}
