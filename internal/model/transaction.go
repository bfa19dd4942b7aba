// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Unknown is the sentinel used for dates and descriptions that could not be
// resolved. It is distinct from the empty string: "unknown" means extraction
// ran and failed to determine the value.
const Unknown = "unknown"

// Direction classifies which way money moved.
type Direction string

const (
	// DirectionIn represents money received.
	DirectionIn Direction = "in"
	// DirectionOut represents money spent.
	DirectionOut Direction = "out"
	// DirectionUnknown represents an undetermined direction.
	DirectionUnknown Direction = "unknown"
)

// IsValid reports whether d is one of the three defined directions.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionIn, DirectionOut, DirectionUnknown:
		return true
	}
	return false
}

// ParseDirection converts free-text direction labels (IN, Out, unknown, ...)
// to a Direction. Unrecognized input maps to DirectionUnknown.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in":
		return DirectionIn
	case "out":
		return DirectionOut
	default:
		return DirectionUnknown
	}
}

// Transaction represents a single extracted financial transaction.
// Instances are built once by an extractor and not mutated afterwards;
// categorization and direction repair happen before the record is finalized.
type Transaction struct {
	ID                 string    `json:"id"`
	BatchID            string    `json:"batch_id"`
	Date               string    `json:"date"` // ISO YYYY-MM-DD or "unknown"
	Description        string    `json:"description"`
	Type               string    `json:"type"` // Payment rail label (e.g., Card, ACH credit)
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	Direction          Direction `json:"direction"`
	Category           Category  `json:"category"`
	Notes              string    `json:"notes,omitempty"`
	NeedsClarification bool      `json:"needs_clarification,omitempty"`
}

// NewTransactionID returns a process-unique transaction identifier.
// Batch identifiers are minted by the caller, never here.
func NewTransactionID() string {
	return "txn-" + uuid.NewString()
}

// IsVoid reports whether the transaction carries no usable information at all:
// zero amount with both date and description unresolved. Void transactions
// must never be emitted by an extractor.
func (t *Transaction) IsVoid() bool {
	return t.Amount == 0 && t.Description == Unknown && t.Date == Unknown
}

// Normalize fills defaulted fields: empty descriptions become the unknown
// sentinel, empty dates become the unknown sentinel, empty currencies take
// the supplied base currency, and invalid directions collapse to unknown.
func (t *Transaction) Normalize(baseCurrency string) {
	if strings.TrimSpace(t.Description) == "" {
		t.Description = Unknown
	}
	if strings.TrimSpace(t.Date) == "" {
		t.Date = Unknown
	}
	if strings.TrimSpace(t.Currency) == "" {
		t.Currency = baseCurrency
	}
	if !t.Direction.IsValid() {
		t.Direction = DirectionUnknown
	}
}
