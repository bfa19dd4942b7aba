package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/export"
	"github.com/ewisehart/tally/internal/model"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract transactions from financial text",
		Long: `Extract structured transactions from pasted bank statements, chat
messages, or free-form notes. Input comes from arguments, --file, or
stdin; strategies are tried in order and the first non-empty result wins.

Examples:
  # From an argument
  tally extract "spent $12.50 at Blue Bottle yesterday"

  # From a file
  tally extract --file statement.txt

  # From stdin
  pbpaste | tally extract

  # Force one strategy and persist the result
  tally extract --file statement.txt --strategy bank --save`,
		RunE: runExtract,
	}

	cmd.Flags().StringP("file", "f", "", "Read input text from a file")
	cmd.Flags().String("strategy", "auto", "Extraction strategy (auto, llm, bank, conversational, minimal)")
	cmd.Flags().Bool("save", false, "Persist the extracted batch to the database")
	cmd.Flags().Bool("json", false, "Print raw JSON instead of a table")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	filePath, _ := cmd.Flags().GetString("file")
	strategy, _ := cmd.Flags().GetString("strategy")
	save, _ := cmd.Flags().GetBool("save")
	asJSON, _ := cmd.Flags().GetBool("json")

	text, err := readInput(args, filePath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input text is empty")
	}

	ctx := cmd.Context()
	cascade, cleanup := newCascade()
	defer cleanup()

	batchID := "batch-" + uuid.NewString()
	txns, err := cascade.ExtractStrategy(ctx, batchID, text, strategy)
	if err != nil {
		return err
	}

	if asJSON {
		if err := export.Write(os.Stdout, "json", txns); err != nil {
			return err
		}
	} else {
		fmt.Println(cli.FormatTitle("Extracted transactions"))
		if err := cli.RenderTransactions(os.Stdout, txns); err != nil {
			return err
		}
	}

	if !save {
		return nil
	}
	if len(txns) == 0 {
		slog.Warn("Nothing to save", "batch_id", batchID)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	batch := model.Batch{
		ID:        batchID,
		Source:    "extract",
		CreatedAt: time.Now().UTC(),
		Count:     len(txns),
	}
	if err := store.SaveBatch(ctx, batch, txns); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d transactions as %s", len(txns), batchID)))
	return nil
}

// readInput collects text from arguments, a file, or stdin, in that order.
func readInput(args []string, filePath string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return string(data), nil
	}

	info, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", fmt.Errorf("no input: pass text as arguments, --file, or pipe to stdin")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
