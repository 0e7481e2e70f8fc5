package core

import (
	"errors"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type (
	// Kind tags a transaction as money in or money out.
	Kind string

	// Date is a calendar date; time of day carries no meaning.
	Date struct {
		time.Time
	}

	// Transaction is one recorded income or expense event. Transactions are
	// immutable once created: to change one, delete it and add a replacement.
	Transaction struct {
		ID          string
		Date        Date
		Amount      Money
		Kind        Kind
		Category    string
		Description string
	}

	// MonthFilter narrows queries to a single calendar month. The zero value
	// means no filtering.
	MonthFilter struct {
		Year  int
		Month int // 1-12
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidKind   = errors.New("invalid kind")
)

func (k Kind) Validate() error {
	switch k {
	case KindIncome, KindExpense:
		return nil
	}
	return ErrInvalidKind
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string. Unparseable input fails with
// ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String formats the date back to "YYYY-MM-DD".
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// ParseMonthFilter parses a "YYYY-MM" string. The empty string yields the
// zero filter (no filtering); anything else unparseable fails with
// ErrInvalidDate.
func ParseMonthFilter(s string) (MonthFilter, error) {
	if s == "" {
		return MonthFilter{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthFilter{}, ErrInvalidDate
	}
	return MonthFilter{Year: t.Year(), Month: int(t.Month())}, nil
}

func (f MonthFilter) IsZero() bool {
	return f.Year == 0 && f.Month == 0
}

// String formats the filter as "YYYY-MM"; empty for the zero filter.
func (f MonthFilter) String() string {
	if f.IsZero() {
		return ""
	}
	return NewDate(f.Year, f.Month, 1).Format("2006-01")
}

// Matches reports whether the date falls in the filtered month. The zero
// filter matches everything.
func (f MonthFilter) Matches(d Date) bool {
	if f.IsZero() {
		return true
	}
	return d.Year() == f.Year && int(d.Month()) == f.Month
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.Kind.Validate()
}
