package core

import (
	"testing"
	"time"
)

func mustAdd(t *testing.T, l *Ledger, date string, cents int64, kind Kind, category string) Transaction {
	t.Helper()
	d, err := ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	tx, err := l.AddTransaction(d, Money{Cents: cents}, kind, category, "")
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestAddTransactionAssignsUniqueIDs(t *testing.T) {
	l := NewLedger("alice")
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tx := mustAdd(t, l, "2024-03-01", 100, KindExpense, "Food")
		if seen[tx.ID] {
			t.Fatalf("id %q reused", tx.ID)
		}
		seen[tx.ID] = true
	}
	if got := len(l.Transactions(MonthFilter{})); got != 50 {
		t.Fatalf("expected 50 transactions, got %d", got)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	l := NewLedger("alice")
	d := NewDate(2024, 3, 1)

	if _, err := l.AddTransaction(d, Money{Cents: 0}, KindExpense, "Food", ""); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.AddTransaction(d, Money{Cents: -5}, KindExpense, "Food", ""); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.AddTransaction(Date{}, Money{Cents: 100}, KindExpense, "Food", ""); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := l.AddTransaction(d, Money{Cents: 100}, Kind("transfer"), "Food", ""); err != ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if got := len(l.Transactions(MonthFilter{})); got != 0 {
		t.Fatalf("failed adds must leave the ledger unchanged, got %d transactions", got)
	}
}

func TestRemoveTransactionIdempotent(t *testing.T) {
	l := NewLedger("alice")
	tx := mustAdd(t, l, "2024-03-01", 100, KindExpense, "Food")

	if !l.RemoveTransaction(tx.ID) {
		t.Fatal("first remove should report true")
	}
	if l.RemoveTransaction(tx.ID) {
		t.Fatal("second remove should report false")
	}
	if got := len(l.Transactions(MonthFilter{})); got != 0 {
		t.Fatalf("expected empty ledger, got %d transactions", got)
	}
}

func TestTransactionsMonthFilter(t *testing.T) {
	l := NewLedger("alice")
	mustAdd(t, l, "2024-03-01", 5000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-15", 2000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-10", 100000, KindIncome, "Salary")

	march, err := ParseMonthFilter("2024-03")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if got := len(l.Transactions(march)); got != 3 {
		t.Fatalf("expected 3 in 2024-03, got %d", got)
	}

	feb, err := ParseMonthFilter("2024-02")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if got := len(l.Transactions(feb)); got != 0 {
		t.Fatalf("expected none in 2024-02, got %d", got)
	}
	if got := l.TotalsByCategory(feb); len(got) != 0 {
		t.Fatalf("expected no category totals in 2024-02, got %v", got)
	}
	if b := l.NetBalance(feb); b.Income.Cents != 0 || b.Expense.Cents != 0 || b.Net != 0 {
		t.Fatalf("expected zero balance in 2024-02, got %+v", b)
	}
}

func TestTotalsByCategoryExpensesOnly(t *testing.T) {
	l := NewLedger("alice")
	mustAdd(t, l, "2024-03-01", 5000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-15", 2000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-10", 100000, KindIncome, "Salary")

	totals := l.TotalsByCategory(MonthFilter{})
	if len(totals) != 1 {
		t.Fatalf("expected one category, got %v", totals)
	}
	if totals[0].Category != "Food" || totals[0].Amount.Cents != 7000 {
		t.Fatalf("expected Food=7000, got %+v", totals[0])
	}

	// Sum of returned values equals total expense amount.
	var sum int64
	for _, ct := range totals {
		sum += ct.Amount.Cents
	}
	if b := l.NetBalance(MonthFilter{}); sum != b.Expense.Cents {
		t.Fatalf("category sum %d != total expense %d", sum, b.Expense.Cents)
	}
}

func TestNetBalance(t *testing.T) {
	l := NewLedger("alice")
	if b := l.NetBalance(MonthFilter{}); b.Income.Cents != 0 || b.Expense.Cents != 0 || b.Net != 0 {
		t.Fatalf("empty ledger balance should be zero, got %+v", b)
	}

	mustAdd(t, l, "2024-03-01", 5000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-15", 2000, KindExpense, "Food")
	mustAdd(t, l, "2024-03-10", 100000, KindIncome, "Salary")

	b := l.NetBalance(MonthFilter{})
	if b.Income.Cents != 100000 || b.Expense.Cents != 7000 || b.Net != 93000 {
		t.Fatalf("expected income=100000 expense=7000 net=93000, got %+v", b)
	}
}

func TestTotalsByMonthChronological(t *testing.T) {
	l := NewLedger("alice")
	mustAdd(t, l, "2024-03-01", 5000, KindExpense, "Food")
	mustAdd(t, l, "2024-01-10", 1000, KindExpense, "Bills")
	mustAdd(t, l, "2024-03-10", 100000, KindIncome, "Salary")

	months := l.TotalsByMonth()
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != 1 || months[1].Month != 3 {
		t.Fatalf("expected chronological order, got %+v", months)
	}
	if months[1].Balance.Net != 95000 {
		t.Fatalf("expected march net 95000, got %d", months[1].Balance.Net)
	}
}

func TestCategorySet(t *testing.T) {
	l := NewLedger("alice")
	before := l.Categories()

	if l.AddCategory("Food") {
		t.Fatal("duplicate add should report false")
	}
	after := l.Categories()
	if len(after) != len(before) {
		t.Fatalf("duplicate add changed set size: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("duplicate add changed order at %d: %q != %q", i, before[i], after[i])
		}
	}

	// Case-sensitive compare: "food" is a distinct label.
	if !l.AddCategory("food") {
		t.Fatal("case-differing label should be accepted")
	}
	if !l.RemoveCategory("food") {
		t.Fatal("expected removal of existing label")
	}
	if l.RemoveCategory("food") {
		t.Fatal("removal of missing label should report false")
	}

	label, ok := l.RemoveCategoryAt(0)
	if !ok || label != "Food" {
		t.Fatalf("expected positional removal of Food, got %q ok=%v", label, ok)
	}
	if _, ok := l.RemoveCategoryAt(99); ok {
		t.Fatal("out-of-range removal should report false")
	}
}

func TestRemoveCategoryKeepsStaleReferences(t *testing.T) {
	l := NewLedger("alice")
	mustAdd(t, l, "2024-03-01", 5000, KindExpense, "Food")
	l.RemoveCategory("Food")

	txs := l.Transactions(MonthFilter{})
	if len(txs) != 1 || txs[0].Category != "Food" {
		t.Fatalf("transaction should keep its stale label, got %+v", txs)
	}
	totals := l.TotalsByCategory(MonthFilter{})
	if len(totals) != 1 || totals[0].Category != "Food" {
		t.Fatalf("aggregation should still see the stale label, got %+v", totals)
	}
}

func TestActivityCap(t *testing.T) {
	l := NewLedger("alice")
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	for i := 0; i < activityCap+25; i++ {
		l.LogActivity("entry")
	}
	if got := len(l.Activity(0)); got != activityCap {
		t.Fatalf("expected %d entries, got %d", activityCap, got)
	}
	if got := len(l.Activity(10)); got != 10 {
		t.Fatalf("expected limited view of 10, got %d", got)
	}
}

func TestActivityNewestFirst(t *testing.T) {
	l := NewLedger("alice")
	l.LogActivity("first")
	l.LogActivity("second")
	entries := l.Activity(0)
	if entries[0].Message != "second" || entries[1].Message != "first" {
		t.Fatalf("expected newest-first, got %+v", entries)
	}
}
