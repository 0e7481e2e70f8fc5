// Package store defines the persistence ports the ledger core is written
// against: a key→snapshot store and a user record store. Implementations
// live in the sqlite and memory subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"tally/internal/core"
)

// ErrNotFound is returned when no record exists for the given key.
var ErrNotFound = errors.New("not found")

type (
	// SnapshotStore persists one full ledger snapshot per user key. There
	// are no partial writes: every mutation is followed by a whole-snapshot
	// Save, and concurrent writers are last-writer-wins.
	SnapshotStore interface {
		// LoadSnapshot returns the snapshot stored under key, or
		// ErrNotFound when the user has no ledger yet.
		LoadSnapshot(ctx context.Context, key string) (core.Snapshot, error)

		// SaveSnapshot replaces the snapshot stored under key.
		SaveSnapshot(ctx context.Context, key string, snap core.Snapshot) error
	}

	// User is one account record. PasswordHash is a bcrypt hash, never a
	// bare digest.
	User struct {
		ID           string
		Username     string
		PasswordHash string
		Role         string
		CreatedAt    time.Time
	}

	// UserStore persists account records for the identity provider.
	UserStore interface {
		// CreateUser inserts a new user. Duplicate usernames fail.
		CreateUser(ctx context.Context, u *User) error

		// GetUserByName returns the user with the given username, or
		// ErrNotFound.
		GetUserByName(ctx context.Context, username string) (*User, error)

		// ListUsers returns all users in creation order.
		ListUsers(ctx context.Context) ([]User, error)
	}

	// Store is the full persistence surface the service layer needs.
	Store interface {
		SnapshotStore
		UserStore

		// Close releases any resources held by the store.
		Close() error
	}
)
