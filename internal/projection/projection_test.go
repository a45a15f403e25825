package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotenko/fintrack/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func tx(id string, t model.TransactionType, amount, category, date string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Type:        t,
		Amount:      dec(amount),
		Category:    category,
		Description: "desc " + id,
		Date:        date,
	}
}

func ids(transactions []model.Transaction) []string {
	out := make([]string, len(transactions))
	for i, t := range transactions {
		out[i] = t.ID
	}
	return out
}

func TestSummarize(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100", "Salary", "2025-01-01"),
		tx("b", model.TypeExpense, "40", "Food", "2025-01-02"),
	}

	summary := Summarize(transactions)

	assert.True(t, summary.TotalIncome.Equal(dec("100")))
	assert.True(t, summary.TotalExpenses.Equal(dec("40")))
	assert.True(t, summary.Balance.Equal(dec("60")))
	assert.Equal(t, 2, summary.Count)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, 0, summary.Count)
}

func TestSummarizeExactDecimals(t *testing.T) {
	// 0.1+0.2 style sums must not drift the way binary floats do.
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "0.10", "Salary", "2025-01-01"),
		tx("b", model.TypeIncome, "0.20", "Salary", "2025-01-01"),
		tx("c", model.TypeExpense, "0.30", "Food", "2025-01-01"),
	}

	summary := Summarize(transactions)
	assert.Equal(t, "0.00", summary.Balance.StringFixed(2))
}

func TestFilterByType(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100", "Salary", "2025-01-01"),
		tx("b", model.TypeExpense, "40", "Food", "2025-01-02"),
	}

	got := Filter(transactions, model.FilterOptions{Type: model.FilterExpense})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	got = Filter(transactions, model.FilterOptions{Type: model.FilterAll})
	assert.Len(t, got, 2)
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeExpense, "1", "Food", "2025-01-01"),
		tx("b", model.TypeExpense, "2", "Food", "2025-01-15"),
		tx("c", model.TypeExpense, "3", "Food", "2025-02-01"),
	}

	got := Filter(transactions, model.FilterOptions{
		Type:     model.FilterAll,
		DateFrom: "2025-01-15",
		DateTo:   "2025-02-01",
	})
	assert.Equal(t, []string{"b", "c"}, ids(got))
}

func TestFilterIdempotent(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100", "Salary", "2025-01-01"),
		tx("b", model.TypeExpense, "40", "Food", "2025-01-02"),
		tx("c", model.TypeExpense, "5", "Transport", "2025-01-03"),
	}
	criteria := model.FilterOptions{Type: model.FilterExpense, DateFrom: "2025-01-02"}

	once := Filter(transactions, criteria)
	twice := Filter(once, criteria)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100", "Salary", "2025-01-01"),
		tx("b", model.TypeExpense, "40", "Food", "2025-01-02"),
	}

	_ = Filter(transactions, model.FilterOptions{Type: model.FilterIncome})
	assert.Equal(t, []string{"a", "b"}, ids(transactions))
}

func TestSortByAmountNumeric(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeExpense, "9", "Food", "2025-01-01"),
		tx("b", model.TypeExpense, "100", "Food", "2025-01-02"),
		tx("c", model.TypeExpense, "25", "Food", "2025-01-03"),
	}

	got := Sort(transactions, model.SortOptions{Field: model.SortByAmount, Order: model.Ascending})
	// Numeric, not lexicographic: 9 < 25 < 100.
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))

	got = Sort(transactions, model.SortOptions{Field: model.SortByAmount, Order: model.Descending})
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
}

func TestSortByDateAndCategory(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeExpense, "1", "Transport", "2025-02-01"),
		tx("b", model.TypeExpense, "2", "Food", "2025-01-15"),
	}

	byDate := Sort(transactions, model.SortOptions{Field: model.SortByDate, Order: model.Ascending})
	assert.Equal(t, []string{"b", "a"}, ids(byDate))

	byCategory := Sort(transactions, model.SortOptions{Field: model.SortByCategory, Order: model.Ascending})
	assert.Equal(t, []string{"b", "a"}, ids(byCategory))
}

func TestSortStable(t *testing.T) {
	// Equal dates must keep their relative input order in both directions.
	transactions := []model.Transaction{
		tx("a", model.TypeExpense, "1", "Food", "2025-01-01"),
		tx("b", model.TypeExpense, "2", "Food", "2025-01-01"),
		tx("c", model.TypeExpense, "3", "Food", "2025-01-01"),
	}

	asc := Sort(transactions, model.SortOptions{Field: model.SortByDate, Order: model.Ascending})
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))

	desc := Sort(transactions, model.SortOptions{Field: model.SortByDate, Order: model.Descending})
	assert.Equal(t, []string{"a", "b", "c"}, ids(desc))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeExpense, "5", "Food", "2025-02-01"),
		tx("b", model.TypeExpense, "1", "Food", "2025-01-01"),
	}

	_ = Sort(transactions, model.SortOptions{Field: model.SortByDate, Order: model.Ascending})
	assert.Equal(t, []string{"a", "b"}, ids(transactions))
}

func TestSummarizeInvariantUnderSort(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100.50", "Salary", "2025-01-01"),
		tx("b", model.TypeExpense, "40.25", "Food", "2025-01-02"),
		tx("c", model.TypeExpense, "9.99", "Transport", "2025-01-03"),
	}

	base := Summarize(transactions)
	sorted := Summarize(Sort(transactions, model.SortOptions{Field: model.SortByAmount, Order: model.Descending}))

	assert.True(t, base.TotalIncome.Equal(sorted.TotalIncome))
	assert.True(t, base.TotalExpenses.Equal(sorted.TotalExpenses))
	assert.True(t, base.Balance.Equal(sorted.Balance))
	assert.Equal(t, base.Count, sorted.Count)

	// Filtering, by contrast, does change totals.
	filtered := Summarize(Filter(transactions, model.FilterOptions{Type: model.FilterExpense}))
	assert.False(t, base.Balance.Equal(filtered.Balance))
}

func TestListFiltersThenSorts(t *testing.T) {
	transactions := []model.Transaction{
		tx("a", model.TypeIncome, "100", "Salary", "2025-01-05"),
		tx("b", model.TypeExpense, "40", "Food", "2025-01-01"),
		tx("c", model.TypeExpense, "5", "Transport", "2025-01-03"),
	}

	got := List(transactions,
		model.FilterOptions{Type: model.FilterExpense},
		model.SortOptions{Field: model.SortByDate, Order: model.Ascending})
	assert.Equal(t, []string{"b", "c"}, ids(got))
}
