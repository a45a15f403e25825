// Package export renders the transaction list for download: CSV, PDF, and a
// printable HTML document. Renderers only consume the list the projection
// produces; they never reach back into the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vkotenko/fintrack/internal/model"
)

// CSVHeader is the first row of every exported CSV.
const CSVHeader = "S.No,Date,Type,Category,Description,Amount"

// WriteCSV writes the transactions as CSV, one row per transaction in the
// given order, with a running serial number.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range transactions {
		row := []string{
			fmt.Sprintf("%d", i+1),
			tx.Date,
			string(tx.Type),
			tx.Category,
			tx.Description,
			tx.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}

// Filename returns the date-stamped download name, e.g.
// transactions-2025-07-01.csv.
func Filename(ext string) string {
	return fmt.Sprintf("transactions-%s.%s", time.Now().Format(model.DateFormat), ext)
}
