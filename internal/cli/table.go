package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewisehart/tally/internal/common"
	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

const descriptionWidth = 40

// RenderTransactions writes txns to w as an aligned table with a count
// footer. Flagged transactions get a warning marker in the last column.
func RenderTransactions(w io.Writer, txns []model.Transaction) error {
	if len(txns) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No transactions."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		tableHeaderStyle.Render("Date"),
		tableHeaderStyle.Render("Description"),
		tableHeaderStyle.Render("Type"),
		tableHeaderStyle.Render("Amount"),
		tableHeaderStyle.Render("Direction"),
		tableHeaderStyle.Render("Category"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 20),
		strings.Repeat("-", 8),
		strings.Repeat("-", 12),
		strings.Repeat("-", 9),
		strings.Repeat("-", 20))

	flagged := 0
	for _, txn := range txns {
		marker := ""
		if txn.NeedsClarification {
			marker = WarningIcon
			flagged++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.Date,
			common.Truncate(txn.Description, descriptionWidth),
			txn.Type,
			formatAmount(txn.Amount, txn.Currency),
			string(txn.Direction),
			string(txn.Category),
			marker)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	summary := fmt.Sprintf("%d transactions", len(txns))
	if flagged > 0 {
		summary += fmt.Sprintf(", %d flagged for review", flagged)
	}
	fmt.Fprintln(w, SubtleStyle.Render(summary))
	return nil
}

// RenderReport writes a category breakdown and direction totals to w.
// Amounts are stated in the report's base currency.
func RenderReport(w io.Writer, summary *service.ReportSummary) error {
	if len(summary.ByCategory) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No transactions in the selected period."))
		return nil
	}

	type row struct {
		category model.Category
		stats    service.CategorySummary
	}
	rows := make([]row, 0, len(summary.ByCategory))
	for cat, stats := range summary.ByCategory {
		rows = append(rows, row{category: cat, stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stats.Amount != rows[j].stats.Amount {
			return rows[i].stats.Amount > rows[j].stats.Amount
		}
		return rows[i].category < rows[j].category
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		tableHeaderStyle.Render("Category"),
		tableHeaderStyle.Render("Count"),
		tableHeaderStyle.Render("Amount"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		strings.Repeat("-", 20),
		strings.Repeat("-", 5),
		strings.Repeat("-", 12))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\n",
			string(r.category),
			r.stats.Count,
			formatAmount(r.stats.Amount, summary.BaseCurrency))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	totals := fmt.Sprintf("In:   %s\nOut:  %s\nNet:  %s",
		formatAmount(summary.TotalIn, summary.BaseCurrency),
		formatAmount(summary.TotalOut, summary.BaseCurrency),
		BoldStyle.Render(formatAmount(summary.TotalIn-summary.TotalOut, summary.BaseCurrency)))
	fmt.Fprintln(w, RenderBox("Totals", totals))

	if summary.Unconverted > 0 {
		fmt.Fprintln(w, FormatWarning(fmt.Sprintf(
			"%d transactions excluded: no exchange rate to %s",
			summary.Unconverted, summary.BaseCurrency)))
	}
	return nil
}

// RenderBatches writes stored batches to w, newest first as returned by
// storage.
func RenderBatches(w io.Writer, batches []model.Batch) error {
	if len(batches) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No batches stored yet. Run 'tally extract --save' or 'tally import-ofx' first."))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		tableHeaderStyle.Render("Batch"),
		tableHeaderStyle.Render("Source"),
		tableHeaderStyle.Render("Created"),
		tableHeaderStyle.Render("Transactions"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 42),
		strings.Repeat("-", 10),
		strings.Repeat("-", 16),
		strings.Repeat("-", 12))
	for _, batch := range batches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			batch.ID,
			batch.Source,
			batch.CreatedAt.Format("2006-01-02 15:04"),
			batch.Count)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render batches: %w", err)
	}
	return nil
}

func formatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}
