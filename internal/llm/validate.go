package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ewisehart/tally/internal/common"
	"github.com/ewisehart/tally/internal/model"
)

// ValidatedTransaction is one normalized element from a model payload.
// Identifiers, batch membership, and categories are assigned later by the
// extraction client; the validator only guarantees shape and types.
type ValidatedTransaction struct {
	Date               string
	Description        string
	Type               string
	Currency           string
	Notes              string
	Direction          model.Direction
	Amount             float64
	NeedsClarification bool
}

// ValidatePayload checks recovered JSON against the two accepted payload
// shapes: an object carrying a "transactions" array, or a bare array.
// Each element must supply a date, a description, a type, a numeric or
// numeric-string amount, and a direction in {IN, OUT, UNKNOWN}
// (case-insensitive). On success it returns the normalized element list;
// on failure it returns a *ValidationError enumerating every failed field,
// or a *ParseError when the text is not JSON at all. It never panics.
func ValidatePayload(data string) ([]ValidatedTransaction, error) {
	elements, err := decodePayload([]byte(data))
	if err != nil {
		return nil, err
	}

	out := make([]ValidatedTransaction, 0, len(elements))
	var problems []string

	for i, raw := range elements {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			problems = append(problems, fmt.Sprintf("transactions[%d]: not an object", i))
			continue
		}

		txn, elementProblems := validateElement(i, fields)
		if len(elementProblems) > 0 {
			problems = append(problems, elementProblems...)
			continue
		}
		out = append(out, txn)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}
	return out, nil
}

// decodePayload resolves the container: shape A (object with transactions
// array), else shape B (bare array), else a typed failure.
func decodePayload(data []byte) ([]json.RawMessage, error) {
	if !json.Valid(data) {
		return nil, &ParseError{
			Reason:  "payload is not valid JSON",
			Snippet: common.Truncate(string(data), 80),
		}
	}

	var object struct {
		Transactions []json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &object); err == nil && object.Transactions != nil {
		return object.Transactions, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	return nil, &ValidationError{
		Fields: []string{`payload: neither an object with a "transactions" array nor a bare array`},
	}
}

// validateElement normalizes one payload element, collecting a message per
// failed required field. Optional fields with the wrong type are treated
// as absent rather than failing the whole batch.
func validateElement(i int, fields map[string]any) (ValidatedTransaction, []string) {
	var problems []string
	var txn ValidatedTransaction

	date, ok := stringField(fields, "date")
	switch {
	case !ok || strings.TrimSpace(date) == "":
		problems = append(problems, fmt.Sprintf("transactions[%d].date: missing", i))
	default:
		txn.Date = normalizeDate(date)
	}

	description, ok := stringField(fields, "description")
	if !ok || strings.TrimSpace(description) == "" {
		problems = append(problems, fmt.Sprintf("transactions[%d].description: missing", i))
	} else {
		txn.Description = strings.TrimSpace(description)
	}

	typ, ok := stringField(fields, "type")
	if !ok || strings.TrimSpace(typ) == "" {
		problems = append(problems, fmt.Sprintf("transactions[%d].type: missing", i))
	} else {
		txn.Type = strings.TrimSpace(typ)
	}

	amount, err := amountField(fields)
	if err != nil {
		problems = append(problems, fmt.Sprintf("transactions[%d].amount: %v", i, err))
	} else {
		// Sign always travels in direction, never in the value.
		txn.Amount = math.Abs(amount)
	}

	direction, ok := stringField(fields, "direction")
	if !ok {
		problems = append(problems, fmt.Sprintf("transactions[%d].direction: missing", i))
	} else {
		normalized := strings.ToLower(strings.TrimSpace(direction))
		switch normalized {
		case "in", "out", "unknown":
			txn.Direction = model.Direction(normalized)
		default:
			problems = append(problems, fmt.Sprintf("transactions[%d].direction: %q is not IN, OUT, or UNKNOWN", i, direction))
		}
	}

	if currency, ok := stringField(fields, "currency"); ok {
		txn.Currency = strings.ToUpper(strings.TrimSpace(currency))
	}
	if notes, ok := stringField(fields, "notes"); ok {
		txn.Notes = strings.TrimSpace(notes)
	}
	if needs, ok := fields["needs_clarification"].(bool); ok {
		txn.NeedsClarification = needs
	}

	return txn, problems
}

func stringField(fields map[string]any, key string) (string, bool) {
	value, ok := fields[key].(string)
	return value, ok
}

// amountField accepts a JSON number or a numeric string.
func amountField(fields map[string]any) (float64, error) {
	switch value := fields["amount"].(type) {
	case float64:
		return value, nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not numeric", value)
		}
		return parsed, nil
	case nil:
		return 0, fmt.Errorf("missing")
	default:
		return 0, fmt.Errorf("expected number or numeric string, got %T", value)
	}
}

// normalizeDate keeps ISO dates and the unknown sentinel; anything else
// degrades to unknown rather than failing the element.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == model.Unknown {
		return date
	}
	if _, err := time.Parse("2006-01-02", date); err == nil {
		return date
	}
	return model.Unknown
}
