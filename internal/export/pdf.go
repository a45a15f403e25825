package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/projection"
)

var pdfColumnWidths = []float64{15, 25, 20, 30, 65, 25}

// WritePDF renders the transaction report: title, generation date, summary
// block, then the table in the given order. The summary covers exactly the
// rows being exported.
func WritePDF(w io.Writer, transactions []model.Transaction) error {
	summary := projection.Summarize(transactions)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(51, 65, 85)
	pdf.Cell(0, 10, "Financial Transaction Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 116, 139)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on: %s", time.Now().Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(51, 65, 85)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total Income: %s", summary.TotalIncome.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Expenses: %s", summary.TotalExpenses.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Balance: %s", summary.Balance.StringFixed(2)))
	pdf.Ln(12)

	// Table header.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(148, 163, 184)
	pdf.SetTextColor(255, 255, 255)
	for i, title := range strings.Split(CSVHeader, ",") {
		pdf.CellFormat(pdfColumnWidths[i], 7, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(51, 65, 85)
	for i, tx := range transactions {
		fill := i%2 == 1
		pdf.SetFillColor(248, 250, 252)

		cells := []string{
			fmt.Sprintf("%d", i+1),
			tx.Date,
			titleCase(string(tx.Type)),
			tx.Category,
			tx.Description,
			tx.Amount.StringFixed(2),
		}
		for j, cell := range cells {
			align := "L"
			if j == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[j], 6, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
