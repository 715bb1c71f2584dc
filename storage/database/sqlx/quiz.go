package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/quiz"
)

// answersJSON stores a question-to-option map as JSONB.
type answersJSON map[int]int

var (
	_ driver.Valuer = (answersJSON)(nil)
	_ sql.Scanner   = (*answersJSON)(nil)
)

func (a answersJSON) Value() (driver.Value, error) {
	if a == nil {
		a = answersJSON{}
	}
	return json.Marshal(a)
}

func (a *answersJSON) Scan(src interface{}) error {
	data, ok := src.([]byte)
	if !ok {
		return errors.Errorf("unexpected answers type %T", src)
	}
	return json.Unmarshal(data, a)
}

var (
	sessionColumns = []string{"user_id", "status", "current_index", "answers"}
	attemptColumns = []string{"id", "user_id", "score", "answers", "created_at"}
)

type (
	sessionRow struct {
		UserID       string      `db:"user_id"`
		Status       string      `db:"status"`
		CurrentIndex int         `db:"current_index"`
		Answers      answersJSON `db:"answers"`
	}

	attemptRow struct {
		ID        string      `db:"id"`
		UserID    string      `db:"user_id"`
		Score     float64     `db:"score"`
		Answers   answersJSON `db:"answers"`
		CreatedAt time.Time   `db:"created_at"`
	}
)

func (r sessionRow) toSession() quiz.Session {
	answers := r.Answers
	if answers == nil {
		answers = answersJSON{}
	}
	return quiz.Session{
		UserID:       r.UserID,
		Status:       quiz.Status(r.Status),
		CurrentIndex: r.CurrentIndex,
		Answers:      answers,
	}
}

func (r attemptRow) toAttempt() quiz.Attempt {
	return quiz.Attempt{
		ID:        r.ID,
		UserID:    r.UserID,
		Score:     r.Score,
		Answers:   r.Answers,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type quizRepository struct {
	db *sqlx.DB
}

var _ quiz.Repository = (*quizRepository)(nil)

func NewQuizRepository(db *sqlx.DB) *quizRepository {
	return &quizRepository{db: db}
}

func (repo quizRepository) GetSession(ctx context.Context, userID string) (quiz.Session, error) {
	query, args, err := psql.Select(sessionColumns...).
		From("quiz_session").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return quiz.Session{}, errors.Wrap(err, "building query")
	}

	var row sessionRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return quiz.Session{}, quiz.ErrSessionNotFound
		}
		return quiz.Session{}, errors.Wrap(err, "getting quiz session")
	}
	return row.toSession(), nil
}

func (repo quizRepository) SaveSession(ctx context.Context, sess quiz.Session) error {
	query, args, err := psql.Insert("quiz_session").
		Columns(sessionColumns...).
		Values(sess.UserID, string(sess.Status), sess.CurrentIndex, answersJSON(sess.Answers)).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status, current_index = EXCLUDED.current_index, answers = EXCLUDED.answers").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	_, err = repo.db.ExecContext(ctx, query, args...)
	return errors.Wrap(err, "saving quiz session")
}

func (repo quizRepository) CreateAttempt(ctx context.Context, attempt quiz.Attempt) (quiz.Attempt, error) {
	query, args, err := psql.Insert("quiz_attempt").
		Columns(attemptColumns...).
		Values(attempt.ID, attempt.UserID, attempt.Score, answersJSON(attempt.Answers), attempt.CreatedAt).
		ToSql()
	if err != nil {
		return quiz.Attempt{}, errors.Wrap(err, "building query")
	}
	if _, err = repo.db.ExecContext(ctx, query, args...); err != nil {
		return quiz.Attempt{}, errors.Wrap(err, "inserting quiz attempt")
	}
	return attempt, nil
}

func (repo quizRepository) QueryAttempts(ctx context.Context, userID string) ([]quiz.Attempt, error) {
	query, args, err := psql.Select(attemptColumns...).
		From("quiz_attempt").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var rows []attemptRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying quiz attempts")
	}

	attempts := make([]quiz.Attempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, row.toAttempt())
	}
	return attempts, nil
}
