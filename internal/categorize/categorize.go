// Package categorize maps transaction descriptions to the category taxonomy.
package categorize

import (
	"strings"

	"github.com/ewisehart/tally/internal/model"
)

// Rule maps a known counterparty or keyword to a category. Matching is
// case-sensitive substring containment, no regex.
type Rule struct {
	Keyword  string
	Category model.Category
}

// Categorize returns the category for a transaction's description and type.
// Rules are evaluated in order, first match wins; unmatched input falls
// through to the uncategorized default. The function is pure: identical
// input always yields the identical category.
func Categorize(description, transactionType string) model.Category {
	haystack := description + " " + transactionType
	for _, rule := range defaultRules {
		if rule.Keyword != "" && strings.Contains(haystack, rule.Keyword) {
			return rule.Category
		}
	}
	return model.CategoryUncategorized
}

// RepairDirection reconciles a category with the transaction's final
// direction. Rules are keyed on payee identity, not direction, so an
// outgoing transaction that matched nothing is upgraded to the generic
// expense bucket, and an incoming transaction that landed in the generic
// bucket is downgraded back to uncategorized. Confident matches are
// never overwritten.
func RepairDirection(category model.Category, direction model.Direction) model.Category {
	switch {
	case direction == model.DirectionOut && category == model.CategoryUncategorized:
		return model.CategoryExpenses
	case direction == model.DirectionIn && category == model.CategoryExpenses:
		return model.CategoryUncategorized
	}
	return category
}

// Rules returns a copy of the rule list in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
