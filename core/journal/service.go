package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	ErrNotFound = errors.New("journal entry not found")

	// mockable
	nowFunc = time.Now
)

type (
	Repository interface {
		CreateEntry(ctx context.Context, entry Entry) (Entry, error)
		QueryEntries(ctx context.Context, userID string) ([]Entry, error)
		GetEntry(ctx context.Context, userID, entryID string) (Entry, error)
		SetAIResponse(ctx context.Context, entryID, response string) error
	}

	// FeedbackGenerator produces instructor feedback on a reflection.
	FeedbackGenerator interface {
		GenerateFeedback(ctx context.Context, reflection string) (string, error)
	}

	Service interface {
		Create(ctx context.Context, userID string, ne NewEntry) (Entry, error)
		List(ctx context.Context, userID string) ([]Entry, error)
		Get(ctx context.Context, userID, entryID string) (Entry, error)
		// GenerateFeedback produces feedback for a reflection without
		// touching storage, so learners can preview before saving.
		GenerateFeedback(ctx context.Context, reflection string) (string, error)
		// Feedback generates AI feedback for an entry and stores it.
		Feedback(ctx context.Context, userID, entryID string) (Entry, error)
	}

	service struct {
		repo      Repository
		generator FeedbackGenerator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, generator FeedbackGenerator) Service {
	return &service{repo: repo, generator: generator}
}

func (svc *service) Create(ctx context.Context, userID string, ne NewEntry) (Entry, error) {
	entry := Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      ne.Text,
		CreatedAt: nowFunc().UTC(),
	}
	if ne.AIResponse != "" {
		entry.AIResponse = null.StringFrom(ne.AIResponse)
	}
	entry, err := svc.repo.CreateEntry(ctx, entry)
	return entry, errors.Wrap(err, "creating journal entry")
}

func (svc *service) GenerateFeedback(ctx context.Context, reflection string) (string, error) {
	response, err := svc.generator.GenerateFeedback(ctx, reflection)
	return response, errors.Wrap(err, "generating feedback")
}

func (svc *service) List(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := svc.repo.QueryEntries(ctx, userID)
	return entries, errors.Wrap(err, "listing journal entries")
}

func (svc *service) Get(ctx context.Context, userID, entryID string) (Entry, error) {
	return svc.repo.GetEntry(ctx, userID, entryID)
}

func (svc *service) Feedback(ctx context.Context, userID, entryID string) (Entry, error) {
	entry, err := svc.repo.GetEntry(ctx, userID, entryID)
	if err != nil {
		return Entry{}, err
	}

	response, err := svc.generator.GenerateFeedback(ctx, entry.Text)
	if err != nil {
		return Entry{}, errors.Wrap(err, "generating feedback")
	}
	if err = svc.repo.SetAIResponse(ctx, entry.ID, response); err != nil {
		return Entry{}, errors.Wrap(err, "storing feedback")
	}

	entry.AIResponse = null.StringFrom(response)
	return entry, nil
}
