package inmemdb

import (
	"context"

	"github.com/zenkai/taiji/core/billing"
)

type profileRepository struct {
	db *DB
}

var _ billing.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) GetProfile(ctx context.Context, userID string) (billing.Profile, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	profile, ok := repo.db.profiles[userID]
	if !ok {
		return billing.Profile{}, billing.ErrProfileNotFound
	}
	return *profile, nil
}

func (repo *profileRepository) UpsertProfile(ctx context.Context, profile billing.Profile) (billing.Profile, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.profiles[profile.UserID] = &profile
	return profile, nil
}
