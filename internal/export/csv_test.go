package export

import (
	"bytes"
	"strings"
	"testing"

	"tally/internal/core"
)

func tx(date, category, description string, cents int64, kind core.Kind) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{
		ID:          "t-" + date,
		Date:        d,
		Amount:      core.Money{Cents: cents},
		Kind:        kind,
		Category:    category,
		Description: description,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []core.Transaction{
		tx("2024-03-01", "Food", "groceries", 5000, core.KindExpense),
		tx("2024-03-10", "Salary", "", 100000, core.KindIncome),
	})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "Date,Category,Description,Amount" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2024-03-01,Food,groceries,50.00" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "2024-03-10,Salary,,1000.00" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestWriteCSVQuotesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []core.Transaction{
		tx("2024-03-01", "Food", `dinner, with "friends"`, 2500, core.KindExpense),
	})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := `2024-03-01,Food,"dinner, with ""friends""",25.00`
	if lines[1] != want {
		t.Fatalf("expected %q, got %q", want, lines[1])
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, []core.Transaction{
		tx("2024-03-01", "Food", "groceries", 5000, core.KindExpense),
	})
	if err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", buf.Bytes()[:8])
	}
}
