// Package report aggregates stored transactions into base-currency
// summaries for display and export.
package report

import (
	"context"
	"fmt"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

// Converter restates amounts into the base currency. The bool result
// reports whether a rate was available for the transaction's currency.
type Converter interface {
	Convert(ctx context.Context, amount float64, currency string) (float64, bool)
	BaseCurrency() string
}

// Build loads the transactions matching filter and aggregates them.
// Rows whose currency cannot be restated are counted as unconverted and
// excluded from every total; rows with an unknown direction contribute to
// their category but to neither directional total.
func Build(ctx context.Context, store service.Storage, converter Converter, filter service.TransactionFilter) (*service.ReportSummary, error) {
	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := &service.ReportSummary{
		ByCategory:   make(map[model.Category]service.CategorySummary),
		BaseCurrency: converter.BaseCurrency(),
	}

	for _, txn := range txns {
		amount, ok := converter.Convert(ctx, txn.Amount, txn.Currency)
		if !ok {
			summary.Unconverted++
			continue
		}

		switch txn.Direction {
		case model.DirectionIn:
			summary.TotalIn += amount
		case model.DirectionOut:
			summary.TotalOut += amount
		}

		byCategory := summary.ByCategory[txn.Category]
		byCategory.Count++
		byCategory.Amount += amount
		summary.ByCategory[txn.Category] = byCategory
	}

	return summary, nil
}
