package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ewisehart/tally/internal/model"
)

// SaveBatch persists a batch header and its transactions atomically.
// Every transaction must already carry the batch's identifier; storage
// never mints or rewrites batch IDs.
func (s *SQLiteStorage) SaveBatch(ctx context.Context, batch model.Batch, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(batch.ID, "batch.ID"); err != nil {
		return err
	}
	for i := range txns {
		if txns[i].BatchID != batch.ID {
			return fmt.Errorf("%w: %s", ErrBatchMismatch, txns[i].ID)
		}
		if err := validateTransaction(&txns[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, source, created_at) VALUES (?, ?, ?)`,
		batch.ID, batch.Source, batch.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert batch %s: %w", batch.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, batch_id, date, description, type, amount,
			currency, direction, category, notes, needs_clarification
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range txns {
		_, err = stmt.ExecContext(ctx,
			txn.ID,
			txn.BatchID,
			txn.Date,
			txn.Description,
			txn.Type,
			txn.Amount,
			txn.Currency,
			string(txn.Direction),
			string(txn.Category),
			txn.Notes,
			txn.NeedsClarification,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// ListBatches returns all batches, newest first, with their transaction counts.
func (s *SQLiteStorage) ListBatches(ctx context.Context) ([]model.Batch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.source, b.created_at, COUNT(t.id)
		FROM batches b
		LEFT JOIN transactions t ON t.batch_id = b.id
		GROUP BY b.id
		ORDER BY b.created_at DESC, b.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []model.Batch
	for rows.Next() {
		var b model.Batch
		if err := rows.Scan(&b.ID, &b.Source, &b.CreatedAt, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, rows.Err()
}

// DeleteBatch removes a batch and every transaction saved under it.
func (s *SQLiteStorage) DeleteBatch(ctx context.Context, batchID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE batch_id = ?`, batchID); err != nil {
		return fmt.Errorf("failed to delete transactions for batch %s: %w", batchID, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, batchID)
	if err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", batchID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: batch %s", ErrNotFound, batchID)
	}

	return tx.Commit()
}
