package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"tally/internal/core"
)

// WritePDF renders the transactions as a simple paginated listing, one line
// per transaction in list order.
func WritePDF(w io.Writer, txs []core.Transaction) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 10, "Transactions")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	for _, tx := range txs {
		sign := "-"
		if tx.Kind == core.KindIncome {
			sign = "+"
		}
		line := fmt.Sprintf("%s | %s | %s | %s%s",
			tx.Date.String(), tx.Category, tx.Description, sign, tx.Amount)
		doc.Cell(0, 6, line)
		doc.Ln(6)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
