package progress

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/zenkai/taiji/core/course"
)

var (
	ErrUnknownUnit = errors.New("unknown unit")

	// mockable
	nowFunc = time.Now
)

type (
	Repository interface {
		UpsertEvent(ctx context.Context, event Event) (Event, error)
		QueryEvents(ctx context.Context, userID string) ([]Event, error)
	}

	Service interface {
		Complete(ctx context.Context, userID string, ordinal int) (Event, error)
		List(ctx context.Context, userID string) ([]Event, error)
		// Summary aggregates the learner's completions. The streak is
		// computed from activity, the journaling timestamps, not from
		// unit completions.
		Summary(ctx context.Context, userID string, activity []time.Time) (Summary, error)
	}

	// Summary is the progress block of the learner dashboard.
	Summary struct {
		CompletedCount int     `json:"completed_count"`
		TotalUnits     int     `json:"total_units"`
		Percentage     float64 `json:"percentage"`
		StreakDays     int     `json:"streak_days"`
		NextUnit       int     `json:"next_unit"`
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Complete(ctx context.Context, userID string, ordinal int) (Event, error) {
	if _, err := course.Get(ordinal); err != nil {
		return Event{}, ErrUnknownUnit
	}
	event := Event{
		UserID:      userID,
		UnitOrdinal: ordinal,
		Completed:   true,
		CompletedAt: nowFunc().UTC(),
	}
	event, err := svc.repo.UpsertEvent(ctx, event)
	return event, errors.Wrap(err, "marking unit completed")
}

func (svc *service) List(ctx context.Context, userID string) ([]Event, error) {
	events, err := svc.repo.QueryEvents(ctx, userID)
	return events, errors.Wrap(err, "listing progress")
}

func (svc *service) Summary(ctx context.Context, userID string, activity []time.Time) (Summary, error) {
	events, err := svc.repo.QueryEvents(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading progress")
	}

	completed := CompletedCount(events)
	total := course.Count()
	return Summary{
		CompletedCount: completed,
		TotalUnits:     total,
		Percentage:     Percentage(completed, total),
		StreakDays:     StreakDays(activity, nowFunc()),
		NextUnit:       NextUnit(completed, total),
	}, nil
}
