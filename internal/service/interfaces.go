// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ewisehart/tally/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Date bounds are ISO YYYY-MM-DD strings; transactions with an unresolved
// date are excluded whenever either bound is set.
type TransactionFilter struct {
	BatchID   string
	FromDate  string
	ToDate    string
	Category  model.Category
	Direction model.Direction
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Batch operations
	SaveBatch(ctx context.Context, batch model.Batch, txns []model.Transaction) error
	ListBatches(ctx context.Context) ([]model.Batch, error)
	DeleteBatch(ctx context.Context, batchID string) error

	// Transaction operations
	GetTransactionsByBatch(ctx context.Context, batchID string) ([]model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, transactionID string, category model.Category) error
	UpdateTransactionClarification(ctx context.Context, transactionID string, needsClarification bool) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Count  int
	Amount float64
}

// ReportSummary aggregates a set of transactions for display. Amounts are
// stated in the base currency; Unconverted counts transactions whose
// currency could not be restated.
type ReportSummary struct {
	ByCategory   map[model.Category]CategorySummary
	BaseCurrency string
	TotalIn      float64
	TotalOut     float64
	Unconverted  int
}
