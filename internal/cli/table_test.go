package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

func TestRenderTransactions(t *testing.T) {
	txns := []model.Transaction{
		{
			ID:          "txn-1",
			Date:        "2025-03-10",
			Description: "Whole Foods Market",
			Type:        "Card",
			Amount:      45.5,
			Currency:    "USD",
			Direction:   model.DirectionOut,
			Category:    model.CategoryGroceries,
		},
		{
			ID:                 "txn-2",
			Date:               model.Unknown,
			Description:        "mystery payment",
			Type:               "unknown",
			Amount:             12,
			Currency:           "USD",
			Direction:          model.DirectionUnknown,
			Category:           model.CategoryUncategorized,
			NeedsClarification: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderTransactions(&buf, txns))

	out := buf.String()
	assert.Contains(t, out, "Whole Foods Market")
	assert.Contains(t, out, "45.50 USD")
	assert.Contains(t, out, string(model.CategoryGroceries))
	assert.Contains(t, out, "2 transactions, 1 flagged for review")
}

func TestRenderTransactionsTruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("Very Long Merchant Name ", 5)
	txns := []model.Transaction{
		{ID: "txn-1", Date: "2025-03-10", Description: long, Amount: 10, Currency: "USD"},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderTransactions(&buf, txns))

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "...")
}

func TestRenderTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTransactions(&buf, nil))
	assert.Contains(t, buf.String(), "No transactions.")
}

func TestRenderReport(t *testing.T) {
	summary := &service.ReportSummary{
		ByCategory: map[model.Category]service.CategorySummary{
			model.CategorySalary:    {Count: 1, Amount: 2500},
			model.CategoryGroceries: {Count: 2, Amount: 55.5},
		},
		BaseCurrency: "USD",
		TotalIn:      2500,
		TotalOut:     55.5,
		Unconverted:  1,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, summary))

	out := buf.String()
	assert.Contains(t, out, "2500.00 USD")
	assert.Contains(t, out, "55.50 USD")
	assert.Contains(t, out, "Totals")
	assert.Contains(t, out, "2444.50 USD") // net
	assert.Contains(t, out, "excluded")

	// Categories are ordered by amount, largest first.
	salaryAt := strings.Index(out, string(model.CategorySalary))
	groceriesAt := strings.Index(out, string(model.CategoryGroceries))
	require.NotEqual(t, -1, salaryAt)
	require.NotEqual(t, -1, groceriesAt)
	assert.Less(t, salaryAt, groceriesAt)
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, &service.ReportSummary{BaseCurrency: "USD"}))
	assert.Contains(t, buf.String(), "No transactions in the selected period.")
}

func TestRenderBatches(t *testing.T) {
	batches := []model.Batch{
		{
			ID:        "batch-5f6a",
			Source:    "extract",
			CreatedAt: time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
			Count:     4,
		},
		{
			ID:        "batch-9c2d",
			Source:    "import-ofx",
			CreatedAt: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			Count:     12,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderBatches(&buf, batches))

	out := buf.String()
	assert.Contains(t, out, "batch-5f6a")
	assert.Contains(t, out, "import-ofx")
	assert.Contains(t, out, "2025-03-15 10:30")
	assert.Contains(t, out, "12")
}

func TestRenderBatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBatches(&buf, nil))
	assert.Contains(t, buf.String(), "No batches stored yet")
}
