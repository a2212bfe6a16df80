// Package session keeps the bounded, newest-first ledger of timer sessions.
package session

import (
	"context"
	"log"
	"sync"

	"taskflow/internal/model"
	"taskflow/internal/storage"
)

// Capacity is the number of records the ledger retains.
const Capacity = 100

type Store struct {
	mu      sync.RWMutex
	storage storage.Storage
	records []model.SessionRecord
	lastID  int64
}

// Load restores the ledger from storage. Absent or corrupt data yields an
// empty ledger; corruption is logged, never returned.
func Load(ctx context.Context, s storage.Storage) *Store {
	store := &Store{storage: s, records: make([]model.SessionRecord, 0)}
	if s == nil {
		return store
	}

	var records []model.SessionRecord
	found, err := storage.LoadJSON(ctx, s, storage.KeyHistory, &records)
	if err != nil {
		log.Printf("session history unreadable, starting empty: %v", err)
	}
	if !found {
		return store
	}

	if len(records) > Capacity {
		records = records[:Capacity]
	}
	for _, rec := range records {
		if rec.ID > store.lastID {
			store.lastID = rec.ID
		}
	}
	store.records = records
	return store
}

// Append stamps rec with a creation-ordered id, prepends it and evicts the
// oldest entries beyond Capacity. The in-memory ledger is updated even when
// persisting fails; the persistence error is returned for reporting.
func (s *Store) Append(ctx context.Context, rec model.SessionRecord) (model.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rec.CreatedAt.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	rec.ID = id

	next := make([]model.SessionRecord, 0, min(len(s.records)+1, Capacity))
	next = append(next, rec)
	next = append(next, s.records...)
	if len(next) > Capacity {
		next = next[:Capacity]
	}
	s.records = next
	return rec, s.persistLocked(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]model.SessionRecord, 0)
	return s.persistLocked(ctx)
}

// List returns a copy of the ledger, newest first.
func (s *Store) List() []model.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) snapshotLocked() []model.SessionRecord {
	out := make([]model.SessionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// persistLocked writes the full ledger while the lock is held so writes land
// in mutation order.
func (s *Store) persistLocked(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	return storage.SaveJSON(ctx, s.storage, storage.KeyHistory, s.records)
}
