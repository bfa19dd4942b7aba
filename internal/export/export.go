// Package export writes stored transactions to CSV or JSON for use
// outside the application.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ewisehart/tally/internal/model"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "json"}

// csvHeader is the column order WriteCSV emits.
var csvHeader = []string{
	"id",
	"batch_id",
	"date",
	"description",
	"type",
	"amount",
	"currency",
	"direction",
	"category",
	"notes",
	"needs_clarification",
}

// Write dispatches on format.
func Write(w io.Writer, format string, txns []model.Transaction) error {
	switch format {
	case "csv":
		return WriteCSV(w, txns)
	case "json":
		return WriteJSON(w, txns)
	default:
		return fmt.Errorf("unknown export format %q (want csv or json)", format)
	}
}

// WriteCSV writes transactions as CSV with a header row.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, txn := range txns {
		record := []string{
			txn.ID,
			txn.BatchID,
			txn.Date,
			txn.Description,
			txn.Type,
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			txn.Currency,
			string(txn.Direction),
			string(txn.Category),
			txn.Notes,
			strconv.FormatBool(txn.NeedsClarification),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", txn.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes transactions as an indented JSON array. An empty set
// still produces a valid array.
func WriteJSON(w io.Writer, txns []model.Transaction) error {
	if txns == nil {
		txns = []model.Transaction{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(txns)
}
