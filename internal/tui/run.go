package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ewisehart/tally/internal/service"
)

// Run starts the review program for batchID and blocks until the user
// quits. The terminal must be interactive; callers should check before
// invoking.
func Run(ctx context.Context, store service.Storage, batchID string) error {
	if store == nil {
		return fmt.Errorf("storage is required")
	}
	if batchID == "" {
		return fmt.Errorf("batch id is required")
	}

	p := tea.NewProgram(New(ctx, store, batchID),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("review UI failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.err != nil {
		return fmt.Errorf("failed to load batch %s: %w", batchID, m.err)
	}
	return nil
}
