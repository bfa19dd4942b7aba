package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

// transactionsLoadedMsg carries a batch's contents, or the load failure.
type transactionsLoadedMsg struct {
	err  error
	txns []model.Transaction
}

// savedMsg reports the outcome of persisting pending edits.
type savedMsg struct {
	err   error
	saved int
}

// loadTransactions fetches the batch from storage.
func loadTransactions(ctx context.Context, store service.Storage, batchID string) tea.Cmd {
	return func() tea.Msg {
		txns, err := store.GetTransactionsByBatch(ctx, batchID)
		return transactionsLoadedMsg{txns: txns, err: err}
	}
}

// saveEdits persists every dirty row's category and clarification flag.
// The rows are snapshotted before the command runs so later edits in the
// model cannot race the write.
func saveEdits(ctx context.Context, store service.Storage, txns []model.Transaction, dirty map[string]bool) tea.Cmd {
	pending := make([]model.Transaction, 0, len(dirty))
	for _, txn := range txns {
		if dirty[txn.ID] {
			pending = append(pending, txn)
		}
	}

	return func() tea.Msg {
		for i, txn := range pending {
			if err := store.UpdateTransactionCategory(ctx, txn.ID, txn.Category); err != nil {
				return savedMsg{err: err, saved: i}
			}
			if err := store.UpdateTransactionClarification(ctx, txn.ID, txn.NeedsClarification); err != nil {
				return savedMsg{err: err, saved: i}
			}
		}
		return savedMsg{saved: len(pending)}
	}
}
