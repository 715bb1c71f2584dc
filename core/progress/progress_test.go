package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletedCount(t *testing.T) {
	day := time.Date(2021, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{UnitOrdinal: 1, Completed: true, CompletedAt: day},
		{UnitOrdinal: 1, Completed: true, CompletedAt: day.Add(time.Hour)}, // duplicate
		{UnitOrdinal: 2, Completed: true, CompletedAt: day},
		{UnitOrdinal: 3, Completed: false, CompletedAt: day},
	}
	assert.Equal(t, 2, CompletedCount(events))
	assert.Equal(t, 0, CompletedCount(nil))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, float64(0), Percentage(0, 0))
	assert.Equal(t, float64(0), Percentage(0, 5))
	assert.Equal(t, float64(40), Percentage(2, 5))
	assert.Equal(t, float64(100), Percentage(5, 5))
}

func TestNextUnit(t *testing.T) {
	assert.Equal(t, 1, NextUnit(0, 5))
	assert.Equal(t, 3, NextUnit(2, 5))
	assert.Equal(t, 5, NextUnit(5, 5))
}

func TestStreakDays(t *testing.T) {
	today := time.Date(2021, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return today.AddDate(0, 0, -offset).Truncate(24 * time.Hour).Add(time.Duration(hour) * time.Hour)
	}

	tests := []struct {
		name       string
		timestamps []time.Time
		want       int
	}{
		{"no events", nil, 0},
		{"today only", []time.Time{day(0, 9)}, 1},
		{"today and yesterday", []time.Time{day(0, 9), day(1, 22)}, 2},
		{"gap stops the walk", []time.Time{day(0, 9), day(1, 9), day(3, 9)}, 2},
		{"no event today", []time.Time{day(1, 9), day(2, 9)}, 0},
		{"several events one day", []time.Time{day(0, 1), day(0, 23)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakDays(tt.timestamps, today))
		})
	}
}

type repoMock struct {
	events []Event
}

func (r *repoMock) UpsertEvent(ctx context.Context, event Event) (Event, error) {
	for i, ev := range r.events {
		if ev.UserID == event.UserID && ev.UnitOrdinal == event.UnitOrdinal {
			r.events[i] = event
			return event, nil
		}
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *repoMock) QueryEvents(ctx context.Context, userID string) ([]Event, error) {
	var events []Event
	for _, ev := range r.events {
		if ev.UserID == userID {
			events = append(events, ev)
		}
	}
	return events, nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2021, 3, 10, 15, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	repo := &repoMock{}
	svc := NewService(repo)

	_, err := svc.Complete(ctx, "u1", 42)
	assert.Equal(t, ErrUnknownUnit, err)

	for _, ordinal := range []int{1, 2, 2} { // 2 completed twice
		_, err = svc.Complete(ctx, "u1", ordinal)
		require.NoError(t, err)
	}

	events, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// streak comes from the journaling activity passed in,
	// not from the completion events
	sum, err := svc.Summary(ctx, "u1", []time.Time{now, now.AddDate(0, 0, -1)})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.CompletedCount)
	assert.Equal(t, 5, sum.TotalUnits)
	assert.Equal(t, float64(40), sum.Percentage)
	assert.Equal(t, 2, sum.StreakDays)
	assert.Equal(t, 3, sum.NextUnit)

	sum, err = svc.Summary(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.StreakDays)

	// another learner sees nothing
	sum, err = svc.Summary(ctx, "u2", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.CompletedCount)
	assert.Equal(t, float64(0), sum.Percentage)
}
