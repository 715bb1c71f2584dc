package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions(t *testing.T) {
	questions := Questions()
	require.Len(t, questions, 5)
	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.Len(t, q.Options, 4)
		assert.True(t, q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options))
		assert.NotEmpty(t, q.Explanation)
	}
}

func allCorrect() map[int]int {
	answers := make(map[int]int)
	for _, q := range catalog {
		answers[q.ID] = q.CorrectIndex
	}
	return answers
}

func TestGrade(t *testing.T) {
	questions := Questions()

	t.Run("perfect score", func(t *testing.T) {
		res := Grade(questions, allCorrect())
		assert.Equal(t, 5, res.Correct)
		assert.Equal(t, float64(100), res.Percentage)
		assert.True(t, res.Passed())

		// reviews carry the option texts for the review screen
		for i, rev := range res.Reviews {
			q := questions[i]
			assert.Equal(t, q.Options[q.CorrectIndex], rev.CorrectText)
			assert.Equal(t, rev.CorrectText, rev.SelectedText)
		}
	})

	t.Run("three of five fails", func(t *testing.T) {
		answers := allCorrect()
		answers[1] = 0
		answers[2] = 0
		res := Grade(questions, answers)
		assert.Equal(t, 3, res.Correct)
		assert.Equal(t, float64(60), res.Percentage)
		assert.False(t, res.Passed())
	})

	t.Run("four of five passes", func(t *testing.T) {
		answers := allCorrect()
		answers[1] = 0
		res := Grade(questions, answers)
		assert.Equal(t, float64(80), res.Percentage)
		assert.True(t, res.Passed())
	})

	t.Run("missing answers grade as incorrect", func(t *testing.T) {
		answers := allCorrect()
		delete(answers, 4)
		delete(answers, 5)
		res := Grade(questions, answers)
		assert.Equal(t, 3, res.Correct)
		for _, rev := range res.Reviews {
			if rev.QuestionID == 4 || rev.QuestionID == 5 {
				assert.Equal(t, Unanswered, rev.Selected)
				assert.Empty(t, rev.SelectedText)
				assert.NotEmpty(t, rev.CorrectText)
				assert.False(t, rev.IsCorrect)
			}
		}
	})

	t.Run("no answers at all", func(t *testing.T) {
		res := Grade(questions, nil)
		assert.Equal(t, 0, res.Correct)
		assert.Equal(t, float64(0), res.Percentage)
		assert.False(t, res.Passed())
	})
}

func TestSession(t *testing.T) {
	questions := Questions()
	sess := NewSession("u1")

	assert.Equal(t, StatusInProgress, sess.Status)
	assert.Equal(t, 0, sess.CurrentIndex)

	// next is a no-op while unanswered
	sess.Next(questions)
	assert.Equal(t, 0, sess.CurrentIndex)

	require.NoError(t, sess.Select(questions, 1))
	sess.Next(questions)
	assert.Equal(t, 1, sess.CurrentIndex)

	// previous stops at the first question and keeps answers
	sess.Previous()
	sess.Previous()
	assert.Equal(t, 0, sess.CurrentIndex)
	assert.Equal(t, 1, sess.Answers[1])

	assert.Equal(t, ErrInvalidOption, sess.Select(questions, 4))
	assert.Equal(t, ErrInvalidOption, sess.Select(questions, -1))

	// walk through to completion
	for sess.Status == StatusInProgress {
		require.NoError(t, sess.Select(questions, 0))
		sess.Next(questions)
	}
	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, ErrSessionCompleted, sess.Select(questions, 0))

	sess.Reset()
	assert.Equal(t, StatusInProgress, sess.Status)
	assert.Equal(t, 0, sess.CurrentIndex)
	assert.Empty(t, sess.Answers)
}

type repoMock struct {
	sessions map[string]Session
	attempts []Attempt
}

func newRepoMock() *repoMock { return &repoMock{sessions: make(map[string]Session)} }

func (r *repoMock) GetSession(ctx context.Context, userID string) (Session, error) {
	sess, ok := r.sessions[userID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (r *repoMock) SaveSession(ctx context.Context, sess Session) error {
	r.sessions[sess.UserID] = sess
	return nil
}

func (r *repoMock) CreateAttempt(ctx context.Context, attempt Attempt) (Attempt, error) {
	r.attempts = append(r.attempts, attempt)
	return attempt, nil
}

func (r *repoMock) QueryAttempts(ctx context.Context, userID string) ([]Attempt, error) {
	var attempts []Attempt
	for _, att := range r.attempts {
		if att.UserID == userID {
			attempts = append(attempts, att)
		}
	}
	return attempts, nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 3, 10, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	repo := newRepoMock()
	svc := NewService(repo)

	// first call starts a session
	sess, err := svc.Session(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, sess.Status)

	_, err = svc.LatestAttempt(ctx, "u1")
	assert.Equal(t, ErrNoAttempts, err)

	// answer everything correctly except the last question
	for i := 0; i < 4; i++ {
		q := catalog[i]
		_, err = svc.Answer(ctx, "u1", q.CorrectIndex)
		require.NoError(t, err)
		sess, attempt, err := svc.Next(ctx, "u1")
		require.NoError(t, err)
		assert.Nil(t, attempt)
		assert.Equal(t, i+1, sess.CurrentIndex)
	}

	_, err = svc.Answer(ctx, "u1", 0) // wrong
	require.NoError(t, err)
	sess, attempt, err := svc.Next(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, float64(80), attempt.Score)
	assert.Equal(t, now, attempt.CreatedAt)

	latest, err := svc.LatestAttempt(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, latest.ID)

	// next on a completed session records nothing more
	sess, attempt, err = svc.Next(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, attempt)
	assert.Equal(t, StatusCompleted, sess.Status)
	attempts, err := svc.Attempts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	// reset starts over without touching attempts
	sess, err = svc.Reset(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.CurrentIndex)
	assert.Empty(t, sess.Answers)
	attempts, err = svc.Attempts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}
