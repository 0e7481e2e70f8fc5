package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.5", 50, true},
		{".5", 50, true},
		{"12.344", 1234, true}, // rounds down
		{"12.345", 1235, true}, // rounds up (half-up)
		{"12.346", 1235, true}, // rounds up
		{"", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1a.20", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: expected %d, got %d err=%v", tc.in, tc.want, got, err)
		}
		if !tc.ok && err != ErrInvalidAmount {
			t.Fatalf("%q: expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-03-01"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "march 1", "2024/03/01"} {
		if _, err := ParseDate(bad); err != ErrInvalidDate {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestParseMonthFilter(t *testing.T) {
	f, err := ParseMonthFilter("2024-03")
	if err != nil || f.Year != 2024 || f.Month != 3 {
		t.Fatalf("expected 2024-03, got %+v err=%v", f, err)
	}
	if f.String() != "2024-03" {
		t.Fatalf("round-trip: got %q", f.String())
	}

	zero, err := ParseMonthFilter("")
	if err != nil || !zero.IsZero() {
		t.Fatalf("empty input should yield zero filter, got %+v err=%v", zero, err)
	}

	if _, err := ParseMonthFilter("2024-3"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
