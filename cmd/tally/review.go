package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/tui"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively review a stored batch",
		Long: `Open a stored batch in an interactive table. Keys cycle each
transaction's category through the taxonomy, toggle the clarification
flag, and save edits back to the database.

Run without --batch to list the stored batches first.`,
		RunE: runReview,
	}

	cmd.Flags().String("batch", "", "Batch id to review")

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	batchID, _ := cmd.Flags().GetString("batch")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if batchID == "" {
		batches, err := store.ListBatches(ctx)
		if err != nil {
			return fmt.Errorf("failed to list batches: %w", err)
		}
		fmt.Println(cli.FormatTitle("Stored batches"))
		if err := cli.RenderBatches(os.Stdout, batches); err != nil {
			return err
		}
		if len(batches) > 0 {
			fmt.Println(cli.SubtleStyle.Render("Pick one with 'tally review --batch <id>'."))
		}
		return nil
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("review needs an interactive terminal; use 'tally export' for scripted access")
	}

	return tui.Run(ctx, store, batchID)
}
