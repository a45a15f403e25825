// Package projection derives display-ready views from a transaction
// snapshot. Every function is pure: inputs are never mutated and results are
// fresh slices.
package projection

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vkotenko/fintrack/internal/model"
)

// Summarize computes the dashboard totals. It always runs over the full,
// unfiltered collection: dashboard totals are global while the list view is
// filtered. Exact decimal arithmetic throughout; rounding to two digits
// happens at presentation only.
func Summarize(transactions []model.Transaction) model.Summary {
	summary := model.Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Count:         len(transactions),
	}

	for _, tx := range transactions {
		switch tx.Type {
		case model.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case model.TypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// Filter keeps transactions matching the criteria, preserving relative input
// order. Date bounds are inclusive and compared lexicographically, which is
// correct for ISO date strings.
func Filter(transactions []model.Transaction, opts model.FilterOptions) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if opts.Type != "" && opts.Type != model.FilterAll && string(tx.Type) != string(opts.Type) {
			continue
		}
		if opts.DateFrom != "" && tx.Date < opts.DateFrom {
			continue
		}
		if opts.DateTo != "" && tx.Date > opts.DateTo {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Sort orders a copy of the input by the given field and direction. The sort
// is stable: equal keys keep their relative input order.
func Sort(transactions []model.Transaction, opts model.SortOptions) []model.Transaction {
	out := make([]model.Transaction, len(transactions))
	copy(out, transactions)

	less := func(a, b model.Transaction) bool {
		switch opts.Field {
		case model.SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case model.SortByCategory:
			return a.Category < b.Category
		default:
			return a.Date < b.Date
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if opts.Order == model.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// List applies the composition contract for the rendered list: filter first,
// then sort.
func List(transactions []model.Transaction, filter model.FilterOptions, order model.SortOptions) []model.Transaction {
	return Sort(Filter(transactions, filter), order)
}
