// Package service orchestrates ledger operations: it loads the snapshot for
// a user key, applies the core mutation, writes the whole snapshot back, and
// publishes an async backup event. The snapshot write-through happens here,
// never inside the core, so the core stays storage-agnostic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/store"
)

// BackupPublisher is the outbound port to the backup queue. A nil publisher
// disables backups without affecting persistence.
type BackupPublisher interface {
	PublishBackup(ctx context.Context, userKey, reason string) error
}

// AddTransactionInput carries the raw user-supplied fields of a new
// transaction. Parsing happens in the service so handlers surface the core
// error taxonomy directly.
type AddTransactionInput struct {
	Date        string // YYYY-MM-DD
	Amount      string // decimal, unsigned
	Kind        string // income | expense
	Category    string
	Description string
}

type LedgerService struct {
	snapshots store.SnapshotStore
	backups   BackupPublisher
}

func NewLedgerService(snapshots store.SnapshotStore, backups BackupPublisher) *LedgerService {
	return &LedgerService{snapshots: snapshots, backups: backups}
}

// Ledger loads the ledger for the given user key, creating an empty one
// with default categories when the user has no snapshot yet. Corrupt
// snapshots propagate core.ErrCorruptSnapshot instead of being coerced.
func (s *LedgerService) Ledger(ctx context.Context, key string) (*core.Ledger, error) {
	snap, err := s.snapshots.LoadSnapshot(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return core.NewLedger(key), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	ledger, err := core.FromSnapshot(key, snap)
	if err != nil {
		return nil, fmt.Errorf("restore ledger: %w", err)
	}
	return ledger, nil
}

// AddTransaction parses, validates and records a new transaction, then
// persists the full snapshot.
func (s *LedgerService) AddTransaction(ctx context.Context, key string, in AddTransactionInput) (core.Transaction, error) {
	date, err := core.ParseDate(in.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return core.Transaction{}, err
	}
	tx, err := ledger.AddTransaction(date, core.Money{Cents: cents}, core.Kind(in.Kind), in.Category, in.Description)
	if err != nil {
		return core.Transaction{}, err
	}
	ledger.LogActivity(fmt.Sprintf("Added %s %s to %s", tx.Kind, tx.Amount, tx.Category))

	if err := s.persist(ctx, ledger, "transaction_added"); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// RemoveTransaction deletes a transaction by id, reporting whether anything
// was removed. Removing a missing id persists nothing.
func (s *LedgerService) RemoveTransaction(ctx context.Context, key, id string) (bool, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return false, err
	}
	if !ledger.RemoveTransaction(id) {
		return false, nil
	}
	ledger.LogActivity("Transaction deleted")

	if err := s.persist(ctx, ledger, "transaction_removed"); err != nil {
		return false, err
	}
	return true, nil
}

// ListTransactions returns the transactions for key, optionally narrowed to
// a "YYYY-MM" month.
func (s *LedgerService) ListTransactions(ctx context.Context, key, month string) ([]core.Transaction, error) {
	filter, err := core.ParseMonthFilter(month)
	if err != nil {
		return nil, err
	}
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return nil, err
	}
	return ledger.Transactions(filter), nil
}

// TotalsByCategory returns the expense breakdown, optionally narrowed to a
// month.
func (s *LedgerService) TotalsByCategory(ctx context.Context, key, month string) ([]core.CategoryTotal, error) {
	filter, err := core.ParseMonthFilter(month)
	if err != nil {
		return nil, err
	}
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return nil, err
	}
	return ledger.TotalsByCategory(filter), nil
}

// NetBalance returns income, expense and net, optionally narrowed to a
// month.
func (s *LedgerService) NetBalance(ctx context.Context, key, month string) (core.Balance, error) {
	filter, err := core.ParseMonthFilter(month)
	if err != nil {
		return core.Balance{}, err
	}
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return core.Balance{}, err
	}
	return ledger.NetBalance(filter), nil
}

// TotalsByMonth returns the per-month aggregation in chronological order.
func (s *LedgerService) TotalsByMonth(ctx context.Context, key string) ([]core.MonthTotal, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return nil, err
	}
	return ledger.TotalsByMonth(), nil
}

// Categories returns the category set in display order.
func (s *LedgerService) Categories(ctx context.Context, key string) ([]string, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return nil, err
	}
	return ledger.Categories(), nil
}

// AddCategory appends a category label. A duplicate label reports false and
// persists nothing.
func (s *LedgerService) AddCategory(ctx context.Context, key, label string) (bool, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return false, err
	}
	if !ledger.AddCategory(label) {
		return false, nil
	}
	ledger.LogActivity(fmt.Sprintf("Category added: %s", label))

	if err := s.persist(ctx, ledger, "category_added"); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveCategory removes a category label. Existing transactions keep their
// stale labels.
func (s *LedgerService) RemoveCategory(ctx context.Context, key, label string) (bool, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return false, err
	}
	if !ledger.RemoveCategory(label) {
		return false, nil
	}
	ledger.LogActivity(fmt.Sprintf("Category removed: %s", label))

	if err := s.persist(ctx, ledger, "category_removed"); err != nil {
		return false, err
	}
	return true, nil
}

// Activity returns the newest audit entries, up to limit (0 = all).
func (s *LedgerService) Activity(ctx context.Context, key string, limit int) ([]core.ActivityEntry, error) {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return nil, err
	}
	return ledger.Activity(limit), nil
}

// RecordExport notes an export in the activity feed.
func (s *LedgerService) RecordExport(ctx context.Context, key, format string) error {
	ledger, err := s.Ledger(ctx, key)
	if err != nil {
		return err
	}
	ledger.LogActivity(fmt.Sprintf("Exported %s", format))
	return s.persist(ctx, ledger, "export")
}

// persist writes the whole snapshot, then publishes a backup event. The
// publish is best-effort: the snapshot is already durable, so a queue
// failure is logged and swallowed.
func (s *LedgerService) persist(ctx context.Context, ledger *core.Ledger, reason string) error {
	if err := s.snapshots.SaveSnapshot(ctx, ledger.Key(), ledger.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if s.backups == nil {
		return nil
	}
	if err := s.backups.PublishBackup(ctx, ledger.Key(), reason); err != nil {
		slog.ErrorContext(ctx, "Failed to publish backup message",
			"error", err,
			"user_key", ledger.Key(),
			"reason", reason)
	}
	return nil
}
