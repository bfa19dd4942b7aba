package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ewisehart/tally/internal/dates"
	"github.com/ewisehart/tally/internal/model"
)

// Statement lines that open a transaction block. Either form must fill the
// whole line.
var (
	monthDateHeader = regexp.MustCompile(`^[A-Za-z]{3,9} \d{1,2}, \d{4}$`)
	slashDateHeader = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)

	// A statement amount line leads with $dollars.cents.
	statementAmount = regexp.MustCompile(`^\$([\d,]+)\.(\d{2})\b`)
)

// bankTypeLabels is the closed set of transaction-type lines recognized on
// the line immediately before the amount. Matching is case-insensitive; the
// canonical casing here is what lands on the record.
var bankTypeLabels = []string{
	"ACH credit",
	"ACH debit",
	"Zelle credit",
	"Zelle debit",
	"Direct Deposit",
	"Deposit",
	"Withdrawal",
	"Wire Transfer",
	"ATM transaction",
	"Cash Redemption",
	"Card",
	"Check",
	"Transfer",
}

// paymentServices are description keywords that pull their whole line in as
// the description when present.
var paymentServices = []string{"paypal", "zelle", "venmo", "coinbase", "payment from"}

// BankExtractor pulls transactions out of bank-statement style text, where
// each transaction is a block of lines opened by a date header.
type BankExtractor struct {
	resolver *dates.Resolver
	logger   *slog.Logger
}

// NewBankExtractor creates a statement extractor using the given date
// resolver.
func NewBankExtractor(resolver *dates.Resolver, logger *slog.Logger) *BankExtractor {
	if resolver == nil {
		resolver = dates.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BankExtractor{resolver: resolver, logger: logger}
}

// Extract splits the text into date-headed blocks and parses each one.
// Malformed blocks are logged and skipped; one bad block never aborts the
// batch.
func (e *BankExtractor) Extract(batchID, text string) []model.Transaction {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	var starts []int
	for i, line := range lines {
		if isDateHeader(line) {
			starts = append(starts, i)
		}
	}

	var transactions []model.Transaction
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		block := lines[start:end]

		txn, err := e.parseBlock(batchID, block)
		if err != nil {
			e.logger.Debug("skipping statement block",
				"header", block[0],
				"reason", err)
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions
}

func isDateHeader(line string) bool {
	return monthDateHeader.MatchString(line) || slashDateHeader.MatchString(line)
}

// parseBlock turns one date-headed block into a transaction. The error
// explains why a block was discarded.
func (e *BankExtractor) parseBlock(batchID string, block []string) (model.Transaction, error) {
	if len(block) < 3 {
		return model.Transaction{}, fmt.Errorf("block has %d lines, need at least 3", len(block))
	}

	date := e.resolver.Resolve(block[0])
	if date == model.Unknown {
		return model.Transaction{}, fmt.Errorf("unresolvable date header %q", block[0])
	}

	// The amount is the last $dollars.cents line in the block.
	amountIdx := -1
	var amount float64
	for i := len(block) - 1; i > 0; i-- {
		m := statementAmount.FindStringSubmatch(block[i])
		if m == nil {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "")+"."+m[2], 64)
		if err != nil {
			continue
		}
		amountIdx = i
		amount = parsed
		break
	}
	if amountIdx == -1 {
		return model.Transaction{}, fmt.Errorf("no amount line")
	}
	if amount <= 0 {
		return model.Transaction{}, fmt.Errorf("non-positive amount %.2f", amount)
	}

	// The line right before the amount is the type when it is a known
	// label; otherwise the type is inferred from the whole block.
	typeIdx := -1
	transactionType := ""
	if amountIdx-1 >= 1 {
		if label, ok := matchTypeLabel(block[amountIdx-1]); ok {
			typeIdx = amountIdx - 1
			transactionType = label
		}
	}
	if transactionType == "" {
		transactionType = inferBankType(block)
	}

	descEnd := amountIdx
	if typeIdx > 0 {
		descEnd = typeIdx
	}
	description := strings.Join(block[1:descEnd], " ")
	description = substitutePaymentService(block[1:descEnd], description)

	txn := model.Transaction{
		ID:          model.NewTransactionID(),
		BatchID:     batchID,
		Date:        date,
		Description: description,
		Type:        transactionType,
		Amount:      amount,
		Direction:   inferBankDirection(transactionType, block),
	}
	txn.Normalize("")
	return txn, nil
}

// matchTypeLabel checks a line against the closed label set.
func matchTypeLabel(line string) (string, bool) {
	for _, label := range bankTypeLabels {
		if strings.EqualFold(line, label) {
			return label, true
		}
	}
	return "", false
}

// inferBankType falls back to keyword search across the whole block.
func inferBankType(block []string) string {
	joined := strings.ToLower(strings.Join(block, " "))
	switch {
	case strings.Contains(joined, "atm"):
		return "ATM transaction"
	case strings.Contains(joined, "card") || strings.Contains(joined, "pos "):
		return "Card"
	case strings.Contains(joined, "check"):
		return "Check"
	case strings.Contains(joined, "zelle") || strings.Contains(joined, "venmo") ||
		strings.Contains(joined, "paypal") || strings.Contains(joined, "wire") ||
		strings.Contains(joined, "transfer"):
		return "Transfer"
	case strings.Contains(joined, "deposit") || strings.Contains(joined, "payroll"):
		return "Deposit"
	case strings.Contains(joined, "withdrawal"):
		return "Withdrawal"
	default:
		return "Other"
	}
}

// substitutePaymentService swaps the description for the specific line
// naming a payment service, when one is present.
func substitutePaymentService(descLines []string, description string) string {
	for _, line := range descLines {
		lower := strings.ToLower(line)
		for _, service := range paymentServices {
			if strings.Contains(lower, service) {
				return line
			}
		}
	}
	return description
}

// inferBankDirection applies the direction keyword precedence: money-in
// language wins over money-out language, and ATM or cash-redemption types
// stay unknown.
func inferBankDirection(transactionType string, block []string) model.Direction {
	lowerType := strings.ToLower(transactionType)
	if strings.Contains(lowerType, "atm") || strings.Contains(lowerType, "cash redemption") {
		return model.DirectionUnknown
	}

	haystack := lowerType + " " + strings.ToLower(strings.Join(block, " "))

	for _, kw := range []string{"credit", "deposit", "received", "payment from"} {
		if strings.Contains(haystack, kw) {
			return model.DirectionIn
		}
	}
	for _, kw := range []string{"debit", "withdrawal", "purchase", "charge", "payment to", "card"} {
		if strings.Contains(haystack, kw) {
			return model.DirectionOut
		}
	}
	return model.DirectionUnknown
}
