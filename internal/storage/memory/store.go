// Package memory implements the session store in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/egelke/dssp-client/internal/storage"
)

// Store implements storage.SessionStore with an in-process map. Records
// do not survive a restart; use the mongodb store for that.
type Store struct {
	mu      sync.RWMutex
	records map[string]*storage.SessionRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]*storage.SessionRecord)}
}

func (s *Store) PutSession(_ context.Context, record *storage.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *Store) GetSession(_ context.Context, id string) (*storage.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return record, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *Store) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for id, record := range s.records {
		if !record.ExpiresOn.IsZero() && record.ExpiresOn.Before(now) {
			delete(s.records, id)
			purged++
		}
	}
	return purged, nil
}

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) Ping(context.Context) error { return nil }
