// Package testutil provides shared helpers for tests that need real storage.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
	"github.com/ewisehart/tally/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store and registers its
// cleanup with the test.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// MakeTransactions returns n save-ready transactions under the given batch,
// one per January day.
func MakeTransactions(batchID string, n int) []model.Transaction {
	txns := make([]model.Transaction, n)
	for i := range txns {
		txns[i] = model.Transaction{
			ID:          fmt.Sprintf("%s-txn-%d", batchID, i+1),
			BatchID:     batchID,
			Date:        fmt.Sprintf("2025-01-%02d", i+1),
			Description: fmt.Sprintf("Test transaction %d", i+1),
			Type:        "Card",
			Amount:      float64(i+1) * 10.50,
			Currency:    "USD",
			Direction:   model.DirectionOut,
			Category:    model.CategoryShopping,
		}
	}
	return txns
}
