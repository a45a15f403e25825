package export

import (
	"html/template"
	"io"
	"time"

	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/projection"
)

var printTmpl = template.Must(template.New("print").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<html>
  <head>
    <title>Financial Transactions</title>
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 20px; color: #333; }
      table { width: 100%; border-collapse: collapse; margin-top: 20px; }
      th, td { border: 1px solid #ddd; padding: 10px; text-align: left; }
      th { background-color: #f2f2f2; font-weight: 600; }
      .header { margin-bottom: 20px; }
      .summary { margin-bottom: 25px; padding: 15px; border: 1px solid #eee; background-color: #f9f9f9; border-radius: 5px; }
    </style>
  </head>
  <body>
    <div class="header">
      <h1>Financial Transactions</h1>
      <p>Generated on: {{.Generated}}</p>
    </div>

    <div class="summary">
      <h2>Summary</h2>
      <p>Total Income: {{.Summary.TotalIncome.StringFixed 2}}</p>
      <p>Total Expenses: {{.Summary.TotalExpenses.StringFixed 2}}</p>
      <p><strong>Balance: {{.Summary.Balance.StringFixed 2}}</strong></p>
    </div>

    <table>
      <thead>
        <tr>
          <th>S.No</th><th>Date</th><th>Type</th><th>Category</th><th>Description</th><th>Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range $i, $t := .Transactions}}
        <tr>
          <td>{{inc $i}}</td>
          <td>{{$t.Date}}</td>
          <td>{{$t.Type}}</td>
          <td>{{$t.Category}}</td>
          <td>{{$t.Description}}</td>
          <td>{{$t.Amount.StringFixed 2}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </body>
</html>
`))

// WritePrintDocument renders the standalone HTML document used for printing.
func WritePrintDocument(w io.Writer, transactions []model.Transaction) error {
	return printTmpl.Execute(w, struct {
		Generated    string
		Summary      model.Summary
		Transactions []model.Transaction
	}{
		Generated:    time.Now().Format("02 Jan 2006"),
		Summary:      projection.Summarize(transactions),
		Transactions: transactions,
	})
}
