// Package memory provides an in-memory store.Store, used in tests and as a
// throwaway dev backend.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	users     []store.User
}

func New() *Store {
	return &Store{snapshots: make(map[string][]byte)}
}

// LoadSnapshot implements store.SnapshotStore.
func (s *Store) LoadSnapshot(_ context.Context, key string) (core.Snapshot, error) {
	s.mu.Lock()
	payload, ok := s.snapshots[key]
	s.mu.Unlock()
	if !ok {
		return core.Snapshot{}, store.ErrNotFound
	}
	return core.DecodeSnapshot(payload)
}

// SaveSnapshot implements store.SnapshotStore. Snapshots are kept encoded
// so the memory backend exercises the same codec path as SQLite.
func (s *Store) SaveSnapshot(_ context.Context, key string, snap core.Snapshot) error {
	payload, err := core.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	s.snapshots[key] = payload
	s.mu.Unlock()
	return nil
}

// CreateUser implements store.UserStore.
func (s *Store) CreateUser(_ context.Context, u *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("username %q already exists", u.Username)
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users = append(s.users, *u)
	return nil
}

// GetUserByName implements store.UserStore.
func (s *Store) GetUserByName(_ context.Context, username string) (*store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

// ListUsers implements store.UserStore.
func (s *Store) ListUsers(_ context.Context) ([]store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.User(nil), s.users...), nil
}

func (s *Store) Close() error { return nil }
