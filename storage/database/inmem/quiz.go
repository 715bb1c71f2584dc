package inmemdb

import (
	"context"
	"sort"

	"github.com/zenkai/taiji/core/quiz"
)

type quizRepository struct {
	db *DB
}

var _ quiz.Repository = (*quizRepository)(nil)

func NewQuizRepository(db *DB) *quizRepository {
	return &quizRepository{db: db}
}

func (repo *quizRepository) GetSession(ctx context.Context, userID string) (quiz.Session, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	sess, ok := repo.db.sessions[userID]
	if !ok {
		return quiz.Session{}, quiz.ErrSessionNotFound
	}
	cp := *sess
	cp.Answers = make(map[int]int, len(sess.Answers))
	for k, v := range sess.Answers {
		cp.Answers[k] = v
	}
	return cp, nil
}

func (repo *quizRepository) SaveSession(ctx context.Context, sess quiz.Session) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.sessions[sess.UserID] = &sess
	return nil
}

func (repo *quizRepository) CreateAttempt(ctx context.Context, attempt quiz.Attempt) (quiz.Attempt, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.attempts[attempt.UserID] = append(repo.db.attempts[attempt.UserID], attempt)
	return attempt, nil
}

func (repo *quizRepository) QueryAttempts(ctx context.Context, userID string) ([]quiz.Attempt, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	attempts := make([]quiz.Attempt, len(repo.db.attempts[userID]))
	copy(attempts, repo.db.attempts[userID])
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].CreatedAt.After(attempts[j].CreatedAt) })
	return attempts, nil
}
