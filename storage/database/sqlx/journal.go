package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/zenkai/taiji/core/journal"
)

var journalColumns = []string{"id", "user_id", "entry", "ai_response", "created_at"}

type journalRow struct {
	ID         string      `db:"id"`
	UserID     string      `db:"user_id"`
	Entry      string      `db:"entry"`
	AIResponse null.String `db:"ai_response"`
	CreatedAt  time.Time   `db:"created_at"`
}

func (r journalRow) toEntry() journal.Entry {
	return journal.Entry{
		ID:         r.ID,
		UserID:     r.UserID,
		Text:       r.Entry,
		AIResponse: r.AIResponse,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

type journalRepository struct {
	db *sqlx.DB
}

var _ journal.Repository = (*journalRepository)(nil)

func NewJournalRepository(db *sqlx.DB) *journalRepository {
	return &journalRepository{db: db}
}

func (repo journalRepository) CreateEntry(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	query, args, err := psql.Insert("journal_entry").
		Columns(journalColumns...).
		Values(entry.ID, entry.UserID, entry.Text, entry.AIResponse, entry.CreatedAt).
		ToSql()
	if err != nil {
		return journal.Entry{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return journal.Entry{}, errors.Wrap(err, "inserting journal entry")
	}
	return entry, nil
}

func (repo journalRepository) QueryEntries(ctx context.Context, userID string) ([]journal.Entry, error) {
	query, args, err := psql.Select(journalColumns...).
		From("journal_entry").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []journalRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying journal entries")
	}

	entries := make([]journal.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	return entries, nil
}

func (repo journalRepository) GetEntry(ctx context.Context, userID, entryID string) (journal.Entry, error) {
	query, args, err := psql.Select(journalColumns...).
		From("journal_entry").
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return journal.Entry{}, errors.Wrap(err, "building query")
	}

	var row journalRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return journal.Entry{}, journal.ErrNotFound
		}
		return journal.Entry{}, errors.Wrap(err, "getting journal entry")
	}
	return row.toEntry(), nil
}

func (repo journalRepository) SetAIResponse(ctx context.Context, entryID, response string) error {
	query, args, err := psql.Update("journal_entry").
		Set("ai_response", response).
		Where(sq.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "updating journal entry")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return journal.ErrNotFound
	}
	return nil
}
