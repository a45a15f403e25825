// Package charts renders PNG dashboards over a transaction snapshot.
package charts

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/vkotenko/fintrack/internal/model"
)

// Generator renders the dashboard charts.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// BalanceHistory renders the running balance over time: per-day net amounts
// accumulated in date order. Returns nil bytes when there is nothing to plot.
func (g *Generator) BalanceHistory(transactions []model.Transaction) ([]byte, error) {
	net := make(map[string]float64)
	for _, tx := range transactions {
		amount := tx.Amount.InexactFloat64()
		if tx.Type == model.TypeExpense {
			amount = -amount
		}
		net[tx.Date] += amount
	}
	if len(net) < 2 {
		// A single point renders a degenerate axis; nothing useful to show.
		return nil, nil
	}

	days := make([]string, 0, len(net))
	for day := range net {
		days = append(days, day)
	}
	sort.Strings(days)

	xValues := make([]time.Time, len(days))
	yValues := make([]float64, len(days))
	running := 0.0
	for i, day := range days {
		date, err := time.Parse(model.DateFormat, day)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", day, err)
		}
		running += net[day]
		xValues[i] = date
		yValues[i] = running
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02.01"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Balance",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering balance chart: %w", err)
	}
	return buf.Bytes(), nil
}

// ExpenseBreakdown renders a donut of expense totals by category. Returns
// nil bytes when there are no expenses.
func (g *Generator) ExpenseBreakdown(transactions []model.Transaction) ([]byte, error) {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Type == model.TypeExpense {
			totals[tx.Category] += tx.Amount.InexactFloat64()
		}
	}
	if len(totals) == 0 {
		return nil, nil
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return totals[categories[i]] > totals[categories[j]]
	})

	values := make([]chart.Value, len(categories))
	for i, category := range categories {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", category, totals[category]),
			Value: totals[category],
		}
	}

	donut := chart.DonutChart{
		Width:  800,
		Height: 800,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering category chart: %w", err)
	}
	return buf.Bytes(), nil
}
