package model

// Category suggestion lists shown in the entry form, per type. They are a
// closed list at entry time only; the store does not enforce them.
var (
	IncomeCategories = []string{
		"Salary",
		"Freelance",
		"Investment",
		"Business",
		"Gift",
		"Other Income",
	}

	ExpenseCategories = []string{
		"Food",
		"Transport",
		"Housing",
		"Utilities",
		"Entertainment",
		"Healthcare",
		"Shopping",
		"Education",
		"Travel",
		"Other Expense",
	}
)

// CategoriesFor returns the suggestion list for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}
