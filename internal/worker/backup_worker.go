// Package worker implements the backup worker: it consumes backup messages
// from the queue and writes timestamped snapshot files to the backup
// directory, keeping only the most recent few per user.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/store"
)

// BackupWorker mirrors ledger snapshots to on-disk backup files. The store
// stays the source of truth; backups are a best-effort safety net, so a
// missing snapshot is not an error worth requeueing forever.
type BackupWorker struct {
	snapshots store.SnapshotStore
	dir       string
	keep      int

	now func() time.Time
}

// NewBackupWorker creates a worker writing into dir, retaining keep backups
// per user (minimum 1).
func NewBackupWorker(snapshots store.SnapshotStore, dir string, keep int) *BackupWorker {
	if keep < 1 {
		keep = 1
	}
	return &BackupWorker{snapshots: snapshots, dir: dir, keep: keep, now: time.Now}
}

// HandleBackupMessage processes a single backup request from the queue.
func (w *BackupWorker) HandleBackupMessage(ctx context.Context, msg *amqp.BackupMessage) error {
	slog.InfoContext(ctx, "Processing backup message",
		"user_key", msg.UserKey,
		"reason", msg.Reason)

	snap, err := w.snapshots.LoadSnapshot(ctx, msg.UserKey)
	if errors.Is(err, store.ErrNotFound) {
		// The snapshot can be gone by the time the message arrives.
		slog.WarnContext(ctx, "No snapshot to back up", "user_key", msg.UserKey)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	path, err := w.writeBackup(msg.UserKey, snap)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Backup written", "user_key", msg.UserKey, "path", path)

	if err := w.Prune(msg.UserKey); err != nil {
		slog.WarnContext(ctx, "Backup pruning failed", "error", err, "user_key", msg.UserKey)
	}
	return nil
}

func (w *BackupWorker) writeBackup(userKey string, snap core.Snapshot) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	payload, err := core.EncodeSnapshot(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	name := fmt.Sprintf("%s_%s.json", userKey, w.now().UTC().Format("20060102T150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}

// Prune removes the oldest backup files for userKey beyond the retention
// count. File names sort chronologically by construction.
func (w *BackupWorker) Prune(userKey string) error {
	matches, err := filepath.Glob(filepath.Join(w.dir, userKey+"_*.json"))
	if err != nil {
		return fmt.Errorf("glob backups: %w", err)
	}
	if len(matches) <= w.keep {
		return nil
	}
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-w.keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old backup: %w", err)
		}
	}
	return nil
}

// PruneAll prunes every user found in the backup directory. The server can
// run this periodically so retention holds even when individual prunes
// failed.
func (w *BackupWorker) PruneAll(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read backup dir: %w", err)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		i := strings.LastIndex(name, "_")
		if i <= 0 || !strings.HasSuffix(name, ".json") {
			continue
		}
		key := name[:i]
		if seen[key] {
			continue
		}
		seen[key] = true
		if err := w.Prune(key); err != nil {
			slog.WarnContext(ctx, "Backup pruning failed", "error", err, "user_key", key)
		}
	}
	return nil
}
