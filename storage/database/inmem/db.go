// Package inmemdb holds map-backed repositories for tests and local
// development without a running database.
package inmemdb

import (
	"sync"

	"github.com/zenkai/taiji/core/billing"
	"github.com/zenkai/taiji/core/journal"
	"github.com/zenkai/taiji/core/progress"
	"github.com/zenkai/taiji/core/quiz"
	"github.com/zenkai/taiji/core/user"
)

type DB struct {
	mutex sync.RWMutex

	users    map[string]*user.User
	events   map[string][]progress.Event // keyed by user ID
	entries  map[string]*journal.Entry   // keyed by entry ID
	sessions map[string]*quiz.Session    // keyed by user ID
	attempts map[string][]quiz.Attempt   // keyed by user ID
	profiles map[string]*billing.Profile // keyed by user ID
}

func NewDB() *DB {
	return &DB{
		users:    make(map[string]*user.User),
		events:   make(map[string][]progress.Event),
		entries:  make(map[string]*journal.Entry),
		sessions: make(map[string]*quiz.Session),
		attempts: make(map[string][]quiz.Attempt),
		profiles: make(map[string]*billing.Profile),
	}
}
