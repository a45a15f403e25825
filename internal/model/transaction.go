package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed income/expense enumeration.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DateFormat is the calendar-date layout used everywhere a transaction date
// crosses a boundary (store, exports, charts).
const DateFormat = "2006-01-02"

// Transaction is one financial event. Date is kept as an ISO 2006-01-02
// string: the store column is a DATE and ISO strings order correctly under
// plain lexicographic comparison, which filtering and sorting rely on.
// Ownership is not part of the record; scoping happens at the gateway.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Draft is the form payload for a new transaction. Amount arrives as the raw
// form string and is parsed during validation.
type Draft struct {
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// TypeFilter selects which transaction types a list view shows.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// FilterOptions narrows a list view. Empty DateFrom/DateTo mean unbounded;
// bounds are inclusive ISO date strings.
type FilterOptions struct {
	Type     TypeFilter
	DateFrom string
	DateTo   string
}

type SortField string

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByCategory SortField = "category"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// SortOptions orders a list view.
type SortOptions struct {
	Field SortField
	Order SortOrder
}

// Summary holds the dashboard totals over the full collection.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
	Count         int             `json:"count"`
}
