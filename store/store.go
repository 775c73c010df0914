package store // import "github.com/hapinus/booksync/store"

import (
	"sync"

	"github.com/jmoiron/sqlx"
)

// Store writes synchronized book records into the relational database.
// Writes are serialized through dbLock; sqlite runs in single-writer mode
// and the sync batch is sequential by design anyway.
type Store struct {
	db     *sqlx.DB
	dbLock sync.Mutex
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
