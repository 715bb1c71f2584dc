package inmemdb

import (
	"context"

	"github.com/zenkai/taiji/core/progress"
)

type progressRepository struct {
	db *DB
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) UpsertEvent(ctx context.Context, event progress.Event) (progress.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	events := repo.db.events[event.UserID]
	for i, ev := range events {
		if ev.UnitOrdinal == event.UnitOrdinal {
			events[i] = event
			return event, nil
		}
	}
	repo.db.events[event.UserID] = append(events, event)
	return event, nil
}

func (repo *progressRepository) QueryEvents(ctx context.Context, userID string) ([]progress.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]progress.Event, len(repo.db.events[userID]))
	copy(events, repo.db.events[userID])
	return events, nil
}
