package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

// transactionColumns is the SELECT list shared by every transaction query,
// in scanTransactions order.
const transactionColumns = `id, batch_id, date, description, type, amount, currency, direction, category, notes, needs_clarification`

// GetTransactionsByBatch retrieves every transaction saved under a batch.
// Rows come back date-ascending; unresolved dates sort last.
func (s *SQLiteStorage) GetTransactionsByBatch(ctx context.Context, batchID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(batchID, "batchID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE batch_id = ? ORDER BY date ASC, created_at ASC, id ASC`,
		batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactions retrieves transactions matching the filter. Setting either
// date bound excludes transactions whose date never resolved.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	conditions := []string{}
	args := []any{}

	if filter.BatchID != "" {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, filter.BatchID)
	}
	if filter.FromDate != "" || filter.ToDate != "" {
		conditions = append(conditions, "date != ?")
		args = append(args, model.Unknown)
	}
	if filter.FromDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.ToDate)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Direction != "" {
		conditions = append(conditions, "direction = ?")
		args = append(args, string(filter.Direction))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC, id ASC"

	switch {
	case filter.Limit > 0 && filter.Offset > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	case filter.Limit > 0:
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += " LIMIT -1 OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// UpdateTransactionCategory reassigns a transaction to a category from the
// fixed taxonomy.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, transactionID string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return err
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category = ? WHERE id = ?`,
		string(category), transactionID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireAffected(res, transactionID)
}

// UpdateTransactionClarification flags or clears a transaction as needing
// human follow-up.
func (s *SQLiteStorage) UpdateTransactionClarification(ctx context.Context, transactionID string, needsClarification bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(transactionID, "transactionID"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET needs_clarification = ? WHERE id = ?`,
		needsClarification, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update clarification flag: %w", err)
	}
	return requireAffected(res, transactionID)
}

// requireAffected converts a zero-row update into a not-found error.
func requireAffected(res sql.Result, transactionID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, transactionID)
	}
	return nil
}

// scanTransactions reads transaction rows in transactionColumns order.
func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var direction, category string
		if err := rows.Scan(
			&txn.ID,
			&txn.BatchID,
			&txn.Date,
			&txn.Description,
			&txn.Type,
			&txn.Amount,
			&txn.Currency,
			&direction,
			&category,
			&txn.Notes,
			&txn.NeedsClarification,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Direction = model.Direction(direction)
		txn.Category = model.Category(category)
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}
