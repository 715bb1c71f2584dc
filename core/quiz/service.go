package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNoAttempts = errors.New("no quiz attempts")

	// mockable
	nowFunc = time.Now
)

type (
	// Attempt is a completed, graded run of the quiz.
	Attempt struct {
		ID        string      `json:"id"`
		UserID    string      `json:"user_id"`
		Score     float64     `json:"score"`
		Answers   map[int]int `json:"answers"`
		CreatedAt time.Time   `json:"created_at"`
	}

	Repository interface {
		GetSession(ctx context.Context, userID string) (Session, error)
		SaveSession(ctx context.Context, sess Session) error
		CreateAttempt(ctx context.Context, attempt Attempt) (Attempt, error)
		QueryAttempts(ctx context.Context, userID string) ([]Attempt, error)
	}

	Service interface {
		// Session returns the learner's session, starting one if needed.
		Session(ctx context.Context, userID string) (Session, error)
		Answer(ctx context.Context, userID string, option int) (Session, error)
		// Next advances the session. When that completes the quiz, the
		// graded attempt is persisted and returned alongside the session.
		Next(ctx context.Context, userID string) (Session, *Attempt, error)
		Previous(ctx context.Context, userID string) (Session, error)
		Reset(ctx context.Context, userID string) (Session, error)
		// Submit grades a full answer set directly and records the attempt.
		Submit(ctx context.Context, userID string, answers map[int]int) (Attempt, Result, error)
		Attempts(ctx context.Context, userID string) ([]Attempt, error)
		LatestAttempt(ctx context.Context, userID string) (Attempt, error)
		Grade(answers map[int]int) Result
	}

	service struct {
		repo Repository
	}
)

// ErrSessionNotFound is returned by repositories when a learner has no
// stored session yet.
var ErrSessionNotFound = errors.New("quiz session not found")

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Session(ctx context.Context, userID string) (Session, error) {
	sess, err := svc.repo.GetSession(ctx, userID)
	if errors.Cause(err) == ErrSessionNotFound {
		sess = NewSession(userID)
		err = svc.repo.SaveSession(ctx, sess)
	}
	return sess, errors.Wrap(err, "loading quiz session")
}

func (svc *service) Answer(ctx context.Context, userID string, option int) (Session, error) {
	sess, err := svc.Session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if err = sess.Select(Questions(), option); err != nil {
		return Session{}, err
	}
	return sess, errors.Wrap(svc.repo.SaveSession(ctx, sess), "saving quiz session")
}

func (svc *service) Next(ctx context.Context, userID string) (Session, *Attempt, error) {
	sess, err := svc.Session(ctx, userID)
	if err != nil {
		return Session{}, nil, err
	}

	// only the transition into Completed records an attempt
	wasCompleted := sess.Status == StatusCompleted

	sess.Next(Questions())
	if err = svc.repo.SaveSession(ctx, sess); err != nil {
		return Session{}, nil, errors.Wrap(err, "saving quiz session")
	}
	if wasCompleted || sess.Status != StatusCompleted {
		return sess, nil, nil
	}

	res := Grade(Questions(), sess.Answers)
	attempt := Attempt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     res.Percentage,
		Answers:   sess.Answers,
		CreatedAt: nowFunc().UTC(),
	}
	attempt, err = svc.repo.CreateAttempt(ctx, attempt)
	if err != nil {
		return Session{}, nil, errors.Wrap(err, "recording quiz attempt")
	}
	return sess, &attempt, nil
}

func (svc *service) Previous(ctx context.Context, userID string) (Session, error) {
	sess, err := svc.Session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	sess.Previous()
	return sess, errors.Wrap(svc.repo.SaveSession(ctx, sess), "saving quiz session")
}

func (svc *service) Reset(ctx context.Context, userID string) (Session, error) {
	sess, err := svc.Session(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	sess.Reset()
	return sess, errors.Wrap(svc.repo.SaveSession(ctx, sess), "saving quiz session")
}

func (svc *service) Submit(ctx context.Context, userID string, answers map[int]int) (Attempt, Result, error) {
	if answers == nil {
		answers = make(map[int]int)
	}
	res := Grade(Questions(), answers)
	attempt := Attempt{
		ID:        uuid.New().String(),
		UserID:    userID,
		Score:     res.Percentage,
		Answers:   answers,
		CreatedAt: nowFunc().UTC(),
	}
	attempt, err := svc.repo.CreateAttempt(ctx, attempt)
	if err != nil {
		return Attempt{}, Result{}, errors.Wrap(err, "recording quiz attempt")
	}
	return attempt, res, nil
}

func (svc *service) Attempts(ctx context.Context, userID string) ([]Attempt, error) {
	attempts, err := svc.repo.QueryAttempts(ctx, userID)
	return attempts, errors.Wrap(err, "listing quiz attempts")
}

func (svc *service) LatestAttempt(ctx context.Context, userID string) (Attempt, error) {
	attempts, err := svc.repo.QueryAttempts(ctx, userID)
	if err != nil {
		return Attempt{}, errors.Wrap(err, "listing quiz attempts")
	}
	if len(attempts) == 0 {
		return Attempt{}, ErrNoAttempts
	}

	latest := attempts[0]
	for _, att := range attempts[1:] {
		if att.CreatedAt.After(latest.CreatedAt) {
			latest = att
		}
	}
	return latest, nil
}

func (svc *service) Grade(answers map[int]int) Result {
	return Grade(Questions(), answers)
}
