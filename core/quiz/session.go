package quiz

import (
	"github.com/pkg/errors"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var (
	ErrSessionCompleted = errors.New("quiz session already completed")
	ErrInvalidOption    = errors.New("invalid option")
)

// Session tracks a learner stepping through the quiz one question at
// a time. The machine only moves forward past an answered question;
// moving back never loses answers.
type Session struct {
	UserID       string      `json:"user_id"`
	Status       Status      `json:"status"`
	CurrentIndex int         `json:"current_index"`
	Answers      map[int]int `json:"answers"`
}

func NewSession(userID string) Session {
	return Session{
		UserID:  userID,
		Status:  StatusInProgress,
		Answers: make(map[int]int),
	}
}

// Current returns the question the session is positioned at.
func (s Session) Current(questions []Question) Question {
	return questions[s.CurrentIndex]
}

// Answered reports whether the current question has an answer.
func (s Session) Answered(questions []Question) bool {
	_, ok := s.Answers[s.Current(questions).ID]
	return ok
}

// Select records an answer for the current question.
func (s *Session) Select(questions []Question, option int) error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	q := s.Current(questions)
	if option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}
	s.Answers[q.ID] = option
	return nil
}

// Next advances past the current question. It is a no-op while the
// current question is unanswered; advancing past the last question
// completes the session.
func (s *Session) Next(questions []Question) {
	if s.Status == StatusCompleted || !s.Answered(questions) {
		return
	}
	if s.CurrentIndex == len(questions)-1 {
		s.Status = StatusCompleted
		return
	}
	s.CurrentIndex++
}

// Previous steps back one question, stopping at the first.
func (s *Session) Previous() {
	if s.Status == StatusCompleted {
		return
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Reset returns the session to the first question with all answers cleared.
func (s *Session) Reset() {
	s.Status = StatusInProgress
	s.CurrentIndex = 0
	s.Answers = make(map[int]int)
}
