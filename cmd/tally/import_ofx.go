package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ewisehart/tally/internal/cli"
	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/ofx"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX statement files",
		Long: `Import transactions from OFX or QFX files exported from your bank.
Every file from one invocation lands in a single batch.

Examples:
  # Import a single file
  tally import-ofx ~/Downloads/checking_jan.qfx

  # Import everything the bank exported
  tally import-ofx ~/Downloads/*.qfx

  # Preview without saving
  tally import-ofx --dry-run ~/Downloads/checking_jan.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	ctx := cmd.Context()
	batchID := "batch-" + uuid.NewString()
	importer := ofx.NewImporter(baseCurrency())

	slog.Info("🧮 Importing statement files...",
		"file_count", len(allFiles),
		"batch_id", batchID,
		"dry_run", dryRun)

	// One tick per file plus one for the batch save.
	bar := cli.NewProgressBar(os.Stderr, len(allFiles)+1, "Importing statements...")

	var allTransactions []model.Transaction
	fileResults := make(map[string]int)

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		txns, err := importer.ParseFile(ctx, f, batchID)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			_ = bar.Add(1)
			continue
		}

		if len(txns) == 0 {
			slog.Warn("No transactions found in file", "file", filepath.Base(filePath))
		}
		fileResults[filepath.Base(filePath)] = len(txns)
		allTransactions = append(allTransactions, txns...)
		_ = bar.Add(1)
	}

	if len(allTransactions) == 0 {
		_ = bar.Finish()
		slog.Warn("No transactions found in any file")
		return nil
	}

	if dryRun {
		_ = bar.Finish()
		fmt.Println(cli.FormatTitle("Import preview"))
		if err := cli.RenderTransactions(os.Stdout, allTransactions); err != nil {
			return err
		}
		fmt.Println(cli.FormatInfo("Dry run complete, nothing saved"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	batch := model.Batch{
		ID:        batchID,
		Source:    "import-ofx",
		CreatedAt: time.Now().UTC(),
		Count:     len(allTransactions),
	}
	if err := store.SaveBatch(ctx, batch, allTransactions); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	_ = bar.Add(1)
	_ = bar.Finish()

	fmt.Println("\n📁 File import summary:")
	for file, count := range fileResults {
		fmt.Printf("  - %s: %d transactions\n", file, count)
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d transactions as %s", len(allTransactions), batchID)))
	return nil
}
