package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/billing"
)

var profileColumns = []string{"user_id", "has_premium", "updated_at"}

type profileRow struct {
	UserID     string    `db:"user_id"`
	HasPremium bool      `db:"has_premium"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r profileRow) toProfile() billing.Profile {
	return billing.Profile{
		UserID:     r.UserID,
		HasPremium: r.HasPremium,
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

type profileRepository struct {
	db *sqlx.DB
}

var _ billing.Repository = (*profileRepository)(nil)

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) GetProfile(ctx context.Context, userID string) (billing.Profile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("user_profile").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return billing.Profile{}, errors.Wrap(err, "building query")
	}

	var row profileRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return billing.Profile{}, billing.ErrProfileNotFound
		}
		return billing.Profile{}, errors.Wrap(err, "getting billing profile")
	}
	return row.toProfile(), nil
}

func (repo profileRepository) UpsertProfile(ctx context.Context, profile billing.Profile) (billing.Profile, error) {
	query, args, err := psql.Insert("user_profile").
		Columns(profileColumns...).
		Values(profile.UserID, profile.HasPremium, profile.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET has_premium = EXCLUDED.has_premium, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return billing.Profile{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return billing.Profile{}, errors.Wrap(err, "upserting billing profile")
	}
	return profile, nil
}
