package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/progress"
)

var progressColumns = []string{"user_id", "module_id", "completed", "completed_at"}

type progressRow struct {
	UserID      string    `db:"user_id"`
	ModuleID    int       `db:"module_id"`
	Completed   bool      `db:"completed"`
	CompletedAt time.Time `db:"completed_at"`
}

func (r progressRow) toEvent() progress.Event {
	return progress.Event{
		UserID:      r.UserID,
		UnitOrdinal: r.ModuleID,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt.UTC(),
	}
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo progressRepository) UpsertEvent(ctx context.Context, event progress.Event) (progress.Event, error) {
	query, args, err := psql.Insert("user_progress").
		Columns(progressColumns...).
		Values(event.UserID, event.UnitOrdinal, event.Completed, event.CompletedAt).
		Suffix("ON CONFLICT (user_id, module_id) DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at").
		ToSql()
	if err != nil {
		return progress.Event{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return progress.Event{}, errors.Wrap(err, "upserting progress")
	}
	return event, nil
}

func (repo progressRepository) QueryEvents(ctx context.Context, userID string) ([]progress.Event, error) {
	query, args, err := psql.Select(progressColumns...).
		From("user_progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("module_id ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []progressRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying progress")
	}

	events := make([]progress.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEvent())
	}
	return events, nil
}
