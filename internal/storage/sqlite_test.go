package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewisehart/tally/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create a saved-ready transaction.
func makeTestTransaction(batchID, id, date string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          id,
		BatchID:     batchID,
		Date:        date,
		Description: "Test transaction " + id,
		Type:        "Card",
		Amount:      amount,
		Currency:    "USD",
		Direction:   model.DirectionOut,
		Category:    model.CategoryShopping,
	}
}

func TestSQLiteStorage_SaveBatch(t *testing.T) {
	tests := []struct {
		txns    func(batchID string) []model.Transaction
		name    string
		batch   model.Batch
		wantErr bool
	}{
		{
			name:  "batch with transactions",
			batch: model.Batch{ID: "batch-1", Source: "extract"},
			txns: func(batchID string) []model.Transaction {
				return []model.Transaction{
					makeTestTransaction(batchID, "txn-a", "2025-01-02", 10),
					makeTestTransaction(batchID, "txn-b", "2025-01-03", 20),
				}
			},
		},
		{
			name:  "empty batch",
			batch: model.Batch{ID: "batch-2", Source: "extract"},
			txns:  func(string) []model.Transaction { return nil },
		},
		{
			name:  "mismatched batch id",
			batch: model.Batch{ID: "batch-3"},
			txns: func(string) []model.Transaction {
				return []model.Transaction{makeTestTransaction("other-batch", "txn-c", "2025-01-02", 10)}
			},
			wantErr: true,
		},
		{
			name:  "category outside the taxonomy",
			batch: model.Batch{ID: "batch-4"},
			txns: func(batchID string) []model.Transaction {
				txn := makeTestTransaction(batchID, "txn-d", "2025-01-02", 10)
				txn.Category = "Snacks"
				return []model.Transaction{txn}
			},
			wantErr: true,
		},
		{
			name:    "missing batch id",
			batch:   model.Batch{},
			txns:    func(string) []model.Transaction { return nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			err := store.SaveBatch(ctx, tt.batch, tt.txns(tt.batch.ID))
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveBatch() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteStorage_SaveBatchIsAtomic(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	good := makeTestTransaction("batch-1", "txn-ok", "2025-01-02", 10)
	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-1"}, []model.Transaction{good}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	// Second batch reuses an existing transaction ID; the whole batch must
	// roll back, header included.
	dup := makeTestTransaction("batch-2", "txn-ok", "2025-01-03", 20)
	fresh := makeTestTransaction("batch-2", "txn-new", "2025-01-04", 30)
	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-2"}, []model.Transaction{fresh, dup}); err == nil {
		t.Fatal("Expected error on duplicate transaction ID")
	}

	batches, err := store.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches() error = %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch after failed save, got %d", len(batches))
	}
	if batches[0].ID != "batch-1" {
		t.Errorf("Surviving batch = %s, want batch-1", batches[0].ID)
	}
}

func TestSQLiteStorage_GetTransactionsByBatch(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	want := model.Transaction{
		ID:                 "txn-full",
		BatchID:            "batch-1",
		Date:               "2024-12-20",
		Description:        "PAYPAL TRANSFER PPD ID: PAYPALSD11",
		Type:               "ACH credit",
		Amount:             599.52,
		Currency:           "USD",
		Direction:          model.DirectionIn,
		Category:           model.CategoryTransfers,
		Notes:              "needs receipt",
		NeedsClarification: true,
	}
	later := makeTestTransaction("batch-1", "txn-later", "2025-01-05", 12.00)
	undated := makeTestTransaction("batch-1", "txn-undated", model.Unknown, 3.25)

	err := store.SaveBatch(ctx, model.Batch{ID: "batch-1", Source: "extract"}, []model.Transaction{undated, later, want})
	if err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	got, err := store.GetTransactionsByBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(got))
	}

	// Date ascending, unresolved dates last.
	if got[0].ID != "txn-full" || got[1].ID != "txn-later" || got[2].ID != "txn-undated" {
		t.Errorf("Unexpected order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0] != want {
		t.Errorf("Round-trip mismatch:\n got %+v\nwant %+v", got[0], want)
	}

	empty, err := store.GetTransactionsByBatch(ctx, "no-such-batch")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no transactions, got %d", len(empty))
	}
}

func TestSQLiteStorage_ListBatches(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	older := model.Batch{ID: "batch-old", Source: "import-ofx", CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)}
	newer := model.Batch{ID: "batch-new", Source: "extract", CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}

	if err := store.SaveBatch(ctx, older, []model.Transaction{
		makeTestTransaction(older.ID, "txn-1", "2025-01-02", 10),
		makeTestTransaction(older.ID, "txn-2", "2025-01-03", 20),
	}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}
	if err := store.SaveBatch(ctx, newer, nil); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	batches, err := store.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches() error = %v", err)
	}
	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}

	if batches[0].ID != "batch-new" {
		t.Errorf("Expected newest batch first, got %s", batches[0].ID)
	}
	if batches[0].Count != 0 {
		t.Errorf("Expected count 0 for empty batch, got %d", batches[0].Count)
	}
	if batches[1].Count != 2 {
		t.Errorf("Expected count 2, got %d", batches[1].Count)
	}
	if batches[1].Source != "import-ofx" {
		t.Errorf("Expected source import-ofx, got %s", batches[1].Source)
	}
	if !batches[1].CreatedAt.Equal(older.CreatedAt) {
		t.Errorf("CreatedAt round-trip: got %v, want %v", batches[1].CreatedAt, older.CreatedAt)
	}
}

func TestSQLiteStorage_DeleteBatch(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-keep"}, []model.Transaction{
		makeTestTransaction("batch-keep", "txn-keep", "2025-01-02", 10),
	}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}
	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-drop"}, []model.Transaction{
		makeTestTransaction("batch-drop", "txn-drop-1", "2025-01-03", 20),
		makeTestTransaction("batch-drop", "txn-drop-2", "2025-01-04", 30),
	}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	if err := store.DeleteBatch(ctx, "batch-drop"); err != nil {
		t.Fatalf("DeleteBatch() error = %v", err)
	}

	dropped, err := store.GetTransactionsByBatch(ctx, "batch-drop")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if len(dropped) != 0 {
		t.Errorf("Expected deleted batch to have no transactions, got %d", len(dropped))
	}

	kept, err := store.GetTransactionsByBatch(ctx, "batch-keep")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("Expected other batch untouched, got %d transactions", len(kept))
	}

	batches, err := store.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches() error = %v", err)
	}
	if len(batches) != 1 {
		t.Errorf("Expected 1 batch after delete, got %d", len(batches))
	}

	if err := store.DeleteBatch(ctx, "batch-drop"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSQLiteStorage_UpdateTransactionCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-1"}, []model.Transaction{
		makeTestTransaction("batch-1", "txn-1", "2025-01-02", 10),
	}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	if err := store.UpdateTransactionCategory(ctx, "txn-1", model.CategoryDining); err != nil {
		t.Fatalf("UpdateTransactionCategory() error = %v", err)
	}

	got, err := store.GetTransactionsByBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if got[0].Category != model.CategoryDining {
		t.Errorf("Category = %s, want %s", got[0].Category, model.CategoryDining)
	}

	if err := store.UpdateTransactionCategory(ctx, "txn-1", "Snacks"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("Expected ErrInvalidCategory, got %v", err)
	}
	if err := store.UpdateTransactionCategory(ctx, "txn-missing", model.CategoryDining); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_UpdateTransactionClarification(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveBatch(ctx, model.Batch{ID: "batch-1"}, []model.Transaction{
		makeTestTransaction("batch-1", "txn-1", "2025-01-02", 10),
	}); err != nil {
		t.Fatalf("SaveBatch() error = %v", err)
	}

	if err := store.UpdateTransactionClarification(ctx, "txn-1", true); err != nil {
		t.Fatalf("UpdateTransactionClarification() error = %v", err)
	}
	got, err := store.GetTransactionsByBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if !got[0].NeedsClarification {
		t.Error("Expected needs_clarification to be set")
	}

	if err := store.UpdateTransactionClarification(ctx, "txn-1", false); err != nil {
		t.Fatalf("UpdateTransactionClarification() error = %v", err)
	}
	got, err = store.GetTransactionsByBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetTransactionsByBatch() error = %v", err)
	}
	if got[0].NeedsClarification {
		t.Error("Expected needs_clarification to be cleared")
	}

	if err := store.UpdateTransactionClarification(ctx, "txn-missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
