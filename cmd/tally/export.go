package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored batch as CSV or JSON",
		Long: `Write a stored batch's transactions to stdout or a file.

Examples:
  tally export --batch batch-1a2b --format csv > txns.csv
  tally export --batch batch-1a2b --format json -o txns.json`,
		RunE: runExport,
	}

	cmd.Flags().String("batch", "", "Batch id to export (required)")
	cmd.Flags().String("format", "csv", "Output format ("+strings.Join(export.Formats, ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	batchID, _ := cmd.Flags().GetString("batch")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactionsByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}
	if len(txns) == 0 {
		return fmt.Errorf("batch %s has no transactions", batchID)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := export.Write(out, format, txns); err != nil {
		return err
	}

	if outPath != "" {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txns), outPath)))
	}
	return nil
}
