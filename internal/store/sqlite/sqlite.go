// Package sqlite provides the SQLite-backed store.Store implementation.
// Snapshots are stored as one JSON blob per user key, matching the
// whole-snapshot write-through model of the core.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"tally/internal/core"
	"tally/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and runs the
// embedded migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadSnapshot implements store.SnapshotStore.
func (s *Store) LoadSnapshot(ctx context.Context, key string) (core.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE user_key = ?", key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, store.ErrNotFound
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("query snapshot: %w", err)
	}
	snap, err := core.DecodeSnapshot(payload)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot for %q: %w", key, err)
	}
	return snap, nil
}

// SaveSnapshot implements store.SnapshotStore. The whole blob is replaced
// in one statement.
func (s *Store) SaveSnapshot(ctx context.Context, key string, snap core.Snapshot) error {
	payload, err := core.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (user_key, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, snap.Version, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"user_key", key,
		"transactions", len(snap.Transactions),
		"categories", len(snap.Categories))
	return nil
}

// CreateUser implements store.UserStore.
func (s *Store) CreateUser(ctx context.Context, u *store.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByName implements store.UserStore.
func (s *Store) GetUserByName(ctx context.Context, username string) (*store.User, error) {
	var (
		u       store.User
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.CreatedAt = time.Unix(created, 0)
	return &u, nil
}

// ListUsers implements store.UserStore.
func (s *Store) ListUsers(ctx context.Context) ([]store.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []store.User
	for rows.Next() {
		var (
			u       store.User
			created int64
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &created); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CreatedAt = time.Unix(created, 0)
		out = append(out, u)
	}
	return out, rows.Err()
}
