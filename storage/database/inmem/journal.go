package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/zenkai/taiji/core/journal"
)

type journalRepository struct {
	db *DB
}

var _ journal.Repository = (*journalRepository)(nil)

func NewJournalRepository(db *DB) *journalRepository {
	return &journalRepository{db: db}
}

func (repo *journalRepository) CreateEntry(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.entries[entry.ID] = &entry
	return entry, nil
}

func (repo *journalRepository) QueryEntries(ctx context.Context, userID string) ([]journal.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]journal.Entry, 0)
	for _, entry := range repo.db.entries {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

func (repo *journalRepository) GetEntry(ctx context.Context, userID, entryID string) (journal.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entry, ok := repo.db.entries[entryID]
	if !ok || entry.UserID != userID {
		return journal.Entry{}, journal.ErrNotFound
	}
	return *entry, nil
}

func (repo *journalRepository) SetAIResponse(ctx context.Context, entryID, response string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	entry, ok := repo.db.entries[entryID]
	if !ok {
		return journal.ErrNotFound
	}
	entry.AIResponse = null.StringFrom(response)
	return nil
}
