// Package export renders a transaction list as CSV or PDF for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"tally/internal/core"
)

// csvHeader is the exchange format other tools import: the 4-column
// superset with Description included. Fields containing commas or quotes
// are quoted with doubled internal quotes by encoding/csv.
var csvHeader = []string{"Date", "Category", "Description", "Amount"}

// WriteCSV writes the transactions in list order.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.String(),
			tx.Category,
			tx.Description,
			tx.Amount.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
