package core

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategories seeds every freshly created ledger, in display order.
var DefaultCategories = []string{"Food", "Transport", "Bills", "Shopping", "Other"}

// activityCap bounds the retained activity entries to the most recent N.
const activityCap = 200

type (
	// Ledger holds one user's transactions and categories. It is not safe
	// for concurrent mutation: there is exactly one active mutator per
	// ledger (the owning session), and persistence is last-writer-wins at
	// snapshot granularity.
	Ledger struct {
		key          string
		categories   []string
		transactions []Transaction
		activity     []ActivityEntry

		now   func() time.Time
		newID func() string
	}

	// ActivityEntry is one audit line, retained newest-first.
	ActivityEntry struct {
		At      time.Time
		Message string
	}

	// CategoryTotal is an amount aggregated under one category label.
	CategoryTotal struct {
		Category string
		Amount   Money
	}

	// Balance nets income against expense over a set of transactions.
	// Net is signed cents: negative when expenses exceed income.
	Balance struct {
		Income  Money
		Expense Money
		Net     int64
	}

	// MonthTotal is the aggregation for a single calendar month.
	MonthTotal struct {
		Year       int
		Month      int // 1-12
		Balance    Balance
		ByCategory []CategoryTotal
	}
)

// NewLedger creates an empty ledger for the given user key, seeded with the
// default category set.
func NewLedger(key string) *Ledger {
	return &Ledger{
		key:        key,
		categories: append([]string(nil), DefaultCategories...),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Key returns the owning user key the ledger was constructed with.
func (l *Ledger) Key() string {
	return l.key
}

// AddTransaction validates the inputs and appends a new transaction with a
// freshly generated unique id. The category is not required to be a member
// of the category set: keeping the choices in sync is the presentation
// layer's job (it feeds its dropdown from Categories), so the core accepts
// free labels. Persistence is the caller's responsibility.
func (l *Ledger) AddTransaction(date Date, amount Money, kind Kind, category, description string) (Transaction, error) {
	tx := Transaction{
		ID:          l.newID(),
		Date:        date,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Description: description,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// RemoveTransaction removes the transaction with the given id and reports
// whether a removal occurred. Removing a missing id is a no-op, so a
// double-delete from a stale view is harmless.
func (l *Ledger) RemoveTransaction(id string) bool {
	for i, tx := range l.transactions {
		if tx.ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// Transactions returns transactions in insertion order, narrowed to the
// filtered month when a non-zero filter is given. Display order is the
// caller's concern.
func (l *Ledger) Transactions(filter MonthFilter) []Transaction {
	out := make([]Transaction, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if filter.Matches(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// TotalsByCategory sums expense amounts per category over the filtered
// transactions. Income is excluded here and reported by NetBalance instead.
// Categories with no matching transactions are omitted; labels appear in
// first-spend order.
func (l *Ledger) TotalsByCategory(filter MonthFilter) []CategoryTotal {
	sums := make(map[string]int64)
	var order []string
	for _, tx := range l.transactions {
		if tx.Kind != KindExpense || !filter.Matches(tx.Date) {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Amount: Money{Cents: sums[c]}})
	}
	return out
}

// NetBalance sums income and expense over the filtered transactions. All
// fields are zero when nothing matches.
func (l *Ledger) NetBalance(filter MonthFilter) Balance {
	var b Balance
	for _, tx := range l.transactions {
		if !filter.Matches(tx.Date) {
			continue
		}
		switch tx.Kind {
		case KindIncome:
			b.Income.Cents += tx.Amount.Cents
		case KindExpense:
			b.Expense.Cents += tx.Amount.Cents
		}
	}
	b.Net = b.Income.Cents - b.Expense.Cents
	return b
}

// TotalsByMonth aggregates every month that has at least one transaction,
// in chronological order, each with its balance and expense breakdown.
func (l *Ledger) TotalsByMonth() []MonthTotal {
	seen := make(map[MonthFilter]bool)
	var months []MonthFilter
	for _, tx := range l.transactions {
		f := MonthFilter{Year: tx.Date.Year(), Month: int(tx.Date.Month())}
		if !seen[f] {
			seen[f] = true
			months = append(months, f)
		}
	}
	// Chronological, not first-seen, order.
	for i := 1; i < len(months); i++ {
		for j := i; j > 0 && earlier(months[j], months[j-1]); j-- {
			months[j], months[j-1] = months[j-1], months[j]
		}
	}
	out := make([]MonthTotal, 0, len(months))
	for _, f := range months {
		out = append(out, MonthTotal{
			Year:       f.Year,
			Month:      f.Month,
			Balance:    l.NetBalance(f),
			ByCategory: l.TotalsByCategory(f),
		})
	}
	return out
}

func earlier(a, b MonthFilter) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}

// Categories returns the category set in display (insertion) order.
func (l *Ledger) Categories() []string {
	return append([]string(nil), l.categories...)
}

// AddCategory appends a label to the category set. It reports false and
// leaves the set unchanged when the label is already present; the compare
// is case-sensitive.
func (l *Ledger) AddCategory(label string) bool {
	for _, c := range l.categories {
		if c == label {
			return false
		}
	}
	l.categories = append(l.categories, label)
	return true
}

// RemoveCategory removes a label from the set and reports whether it was
// present. Transactions already referencing the label keep it; stale labels
// simply stop appearing in the dropdown.
func (l *Ledger) RemoveCategory(label string) bool {
	for i, c := range l.categories {
		if c == label {
			l.categories = append(l.categories[:i], l.categories[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveCategoryAt removes the label at the given position, returning it.
func (l *Ledger) RemoveCategoryAt(index int) (string, bool) {
	if index < 0 || index >= len(l.categories) {
		return "", false
	}
	label := l.categories[index]
	l.categories = append(l.categories[:index], l.categories[index+1:]...)
	return label, true
}

// LogActivity prepends an audit entry, dropping the oldest beyond the cap.
func (l *Ledger) LogActivity(message string) {
	entry := ActivityEntry{At: l.now(), Message: message}
	l.activity = append([]ActivityEntry{entry}, l.activity...)
	if len(l.activity) > activityCap {
		l.activity = l.activity[:activityCap]
	}
}

// Activity returns audit entries newest-first, up to limit (0 = all).
func (l *Ledger) Activity(limit int) []ActivityEntry {
	n := len(l.activity)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]ActivityEntry(nil), l.activity[:n]...)
}
