package model

// Category is one value from the closed category taxonomy. The zero value is
// not valid; uncategorized transactions carry CategoryUncategorized explicitly.
type Category string

// The taxonomy. CategoryExpenses is the generic expense bucket used by
// direction repair when an outgoing transaction matched no payee rule;
// CategoryUncategorized is the default for everything else.
const (
	CategoryGroceries     Category = "Groceries"
	CategoryDining        Category = "Dining & Restaurants"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities & Bills"
	CategoryHealth        Category = "Health"
	CategoryHousing       Category = "Housing & Rent"
	CategoryTravel        Category = "Travel"
	CategorySalary        Category = "Salary & Income"
	CategoryTransfers     Category = "Transfers"
	CategoryCash          Category = "Cash & ATM"
	CategoryExpenses      Category = "Expenses"
	CategoryUncategorized Category = "Other / Uncategorized"
)

// CategoryType indicates whether a category is for income, expense, or system use.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeSystem represents system-managed categories (e.g., transfers).
	CategoryTypeSystem CategoryType = "system"
)

// AllCategories returns the taxonomy in display order.
func AllCategories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryDining,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealth,
		CategoryHousing,
		CategoryTravel,
		CategorySalary,
		CategoryTransfers,
		CategoryCash,
		CategoryExpenses,
		CategoryUncategorized,
	}
}

// IsValid reports whether c belongs to the taxonomy.
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Type groups the category for reporting.
func (c Category) Type() CategoryType {
	switch c {
	case CategorySalary:
		return CategoryTypeIncome
	case CategoryTransfers, CategoryCash, CategoryUncategorized:
		return CategoryTypeSystem
	default:
		return CategoryTypeExpense
	}
}
