package journal

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/zenkai/taiji/core"
)

type (
	// Entry is a practice reflection. AIResponse stays null until the
	// learner asks for feedback.
	Entry struct {
		ID         string      `json:"id"`
		UserID     string      `json:"user_id"`
		Text       string      `json:"entry"`
		AIResponse null.String `json:"ai_response"`
		CreatedAt  time.Time   `json:"created_at"`
	}

	// NewEntry may carry feedback the learner already generated before
	// saving the entry.
	NewEntry struct {
		Text       string `json:"entry" validate:"required"`
		AIResponse string `json:"ai_response"`
	}
)

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.Text = core.CleanString(ne.Text)
	return validate.Struct(ne)
}
