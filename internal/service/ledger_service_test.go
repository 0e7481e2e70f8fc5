package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
	"tally/internal/store/memory"
)

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishBackup(_ context.Context, userKey, reason string) error {
	p.events = append(p.events, userKey+":"+reason)
	return nil
}

func newService() (*LedgerService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewLedgerService(memory.New(), pub), pub
}

func TestAddTransactionPersistsAndPublishes(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "50", Kind: "expense", Category: "Food", Description: "groceries",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, int64(5000), tx.Amount.Cents)

	// The snapshot was written through: a fresh load sees the transaction.
	txs, err := svc.ListTransactions(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx, txs[0])

	assert.Equal(t, []string{"alice:transaction_added"}, pub.events)

	activity, err := svc.Activity(ctx, "alice", 0)
	require.NoError(t, err)
	require.NotEmpty(t, activity)
	assert.Equal(t, "Added expense 50.00 to Food", activity[0].Message)
}

func TestAddTransactionValidation(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "not a date", Amount: "50", Kind: "expense", Category: "Food",
	})
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	_, err = svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "-50", Kind: "expense", Category: "Food",
	})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "50", Kind: "transfer", Category: "Food",
	})
	assert.ErrorIs(t, err, core.ErrInvalidKind)

	// Nothing persisted, nothing published.
	txs, err := svc.ListTransactions(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Empty(t, pub.events)
}

func TestRemoveTransactionIdempotent(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "50", Kind: "expense", Category: "Food",
	})
	require.NoError(t, err)

	removed, err := svc.RemoveTransaction(ctx, "alice", tx.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveTransaction(ctx, "alice", tx.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	// The no-op second delete must not publish another backup.
	assert.Equal(t, []string{"alice:transaction_added", "alice:transaction_removed"}, pub.events)
}

func TestAggregations(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for _, in := range []AddTransactionInput{
		{Date: "2024-03-01", Amount: "50", Kind: "expense", Category: "Food"},
		{Date: "2024-03-15", Amount: "20", Kind: "expense", Category: "Food"},
		{Date: "2024-03-10", Amount: "1000", Kind: "income", Category: "Salary"},
	} {
		_, err := svc.AddTransaction(ctx, "alice", in)
		require.NoError(t, err)
	}

	totals, err := svc.TotalsByCategory(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, core.CategoryTotal{Category: "Food", Amount: core.Money{Cents: 7000}}, totals[0])

	balance, err := svc.NetBalance(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), balance.Income.Cents)
	assert.Equal(t, int64(7000), balance.Expense.Cents)
	assert.Equal(t, int64(93000), balance.Net)

	// Unmatched month: empty list, zero totals.
	txs, err := svc.ListTransactions(ctx, "alice", "2024-02")
	require.NoError(t, err)
	assert.Empty(t, txs)
	balance, err = svc.NetBalance(ctx, "alice", "2024-02")
	require.NoError(t, err)
	assert.Equal(t, core.Balance{}, balance)

	months, err := svc.TotalsByMonth(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, 2024, months[0].Year)
	assert.Equal(t, 3, months[0].Month)
}

func TestCategories(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	cats, err := svc.Categories(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultCategories, cats)

	added, err := svc.AddCategory(ctx, "alice", "Travel")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddCategory(ctx, "alice", "Travel")
	require.NoError(t, err)
	assert.False(t, added)

	removed, err := svc.RemoveCategory(ctx, "alice", "Travel")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveCategory(ctx, "alice", "Travel")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLedgersAreIsolatedByKey(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "50", Kind: "expense", Category: "Food",
	})
	require.NoError(t, err)

	txs, err := svc.ListTransactions(ctx, "bob", "")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestNilPublisherIsFine(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	_, err := svc.AddTransaction(context.Background(), "alice", AddTransactionInput{
		Date: "2024-03-01", Amount: "50", Kind: "expense", Category: "Food",
	})
	require.NoError(t, err)
}
