// Package extract turns free-form financial text into transaction records
// using a cascade of strategies: an LLM extraction client, a bank-statement
// block parser, a conversational phrase matcher, and a minimal
// single-transaction heuristic. Exactly one strategy's output is returned
// per batch.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ewisehart/tally/internal/categorize"
	"github.com/ewisehart/tally/internal/dates"
	"github.com/ewisehart/tally/internal/llm"
	"github.com/ewisehart/tally/internal/model"
)

// CompletionExtractor is the LLM strategy seen by the cascade. A nil value
// disables the stage.
type CompletionExtractor interface {
	Extract(ctx context.Context, batchID, text string) ([]model.Transaction, error)
}

// Pre-filter signals. Text with neither an amount-like token nor an
// extraction keyword near a date fragment is skipped without spending an
// LLM call.
var (
	amountSignal  = regexp.MustCompile(`[$¥€£₹₩]\s?\d|\b\d+\.\d{2}\b`)
	keywordSignal = regexp.MustCompile(`(?i)\b(spent|paid|bought|purchased|received|got|earned|deposit|deposited|withdrawal|withdrew|charge|charged|credit|debit|refund)\b`)
)

func hasSignal(text string) bool {
	if amountSignal.MatchString(text) {
		return true
	}
	return keywordSignal.MatchString(text) && textDatePattern.MatchString(text)
}

// Cascade runs the extraction strategies in order and returns the first
// non-empty result. It keeps no state between calls; every invocation is
// keyed by the caller's fresh batch id.
type Cascade struct {
	llm            CompletionExtractor
	bank           *BankExtractor
	conversational *ConversationalExtractor
	resolver       *dates.Resolver
	logger         *slog.Logger
	baseCurrency   string
}

// NewCascade wires the strategy cascade. llm may be nil when no provider is
// configured; the deterministic strategies still run.
func NewCascade(completion CompletionExtractor, resolver *dates.Resolver, baseCurrency string, logger *slog.Logger) *Cascade {
	if resolver == nil {
		resolver = dates.NewResolver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cascade{
		llm:            completion,
		bank:           NewBankExtractor(resolver, logger),
		conversational: NewConversationalExtractor(resolver, logger),
		resolver:       resolver,
		logger:         logger,
		baseCurrency:   baseCurrency,
	}
}

// Extract runs the cascade for one batch. Stage failures are logged and
// degrade to the next stage; partial results from two strategies are never
// mixed.
func (c *Cascade) Extract(ctx context.Context, batchID, text string) []model.Transaction {
	if !hasSignal(text) {
		c.logger.Debug("input has no extraction signal", "batch_id", batchID)
		return nil
	}

	if c.llm != nil {
		transactions, err := c.llm.Extract(ctx, batchID, text)
		if err != nil {
			c.logStageFailure("llm", batchID, err)
		} else if len(transactions) > 0 {
			return c.finish("llm", batchID, transactions)
		}
	}

	if transactions := c.bank.Extract(batchID, text); len(transactions) > 0 {
		return c.finish("bank", batchID, transactions)
	}

	if transactions := c.conversational.Extract(batchID, text); len(transactions) > 0 {
		return c.finish("conversational", batchID, transactions)
	}

	return c.finish("minimal", batchID, minimalSingle(c.resolver, batchID, text))
}

// ExtractStrategy runs a single named strategy instead of the cascade.
// Recognized names: auto, llm, bank, conversational, minimal.
func (c *Cascade) ExtractStrategy(ctx context.Context, batchID, text, strategy string) ([]model.Transaction, error) {
	switch strings.ToLower(strategy) {
	case "", "auto":
		return c.Extract(ctx, batchID, text), nil
	case "llm":
		if c.llm == nil {
			return nil, fmt.Errorf("no LLM provider configured")
		}
		transactions, err := c.llm.Extract(ctx, batchID, text)
		if err != nil {
			return nil, err
		}
		return c.finish("llm", batchID, transactions), nil
	case "bank":
		return c.finish("bank", batchID, c.bank.Extract(batchID, text)), nil
	case "conversational":
		return c.finish("conversational", batchID, c.conversational.Extract(batchID, text)), nil
	case "minimal":
		return c.finish("minimal", batchID, minimalSingle(c.resolver, batchID, text)), nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy: %s", strategy)
	}
}

// finish applies categorization, the direction-repair rule, and field
// normalization uniformly to whichever strategy produced the batch.
func (c *Cascade) finish(strategy, batchID string, transactions []model.Transaction) []model.Transaction {
	for i := range transactions {
		txn := &transactions[i]
		txn.Normalize(c.baseCurrency)
		category := categorize.Categorize(txn.Description, txn.Type)
		txn.Category = categorize.RepairDirection(category, txn.Direction)
	}

	if len(transactions) > 0 {
		c.logger.Info("strategy produced transactions",
			"strategy", strategy,
			"batch_id", batchID,
			"count", len(transactions))
	}
	return transactions
}

// logStageFailure names the failed stage by its error type so parse,
// validation, and transport causes are distinguishable in logs.
func (c *Cascade) logStageFailure(strategy, batchID string, err error) {
	var parseErr *llm.ParseError
	var validationErr *llm.ValidationError
	var transportErr *llm.TransportError

	switch {
	case errors.As(err, &parseErr):
		c.logger.Warn("strategy output was not parseable",
			"strategy", strategy,
			"batch_id", batchID,
			"error", parseErr)
	case errors.As(err, &validationErr):
		c.logger.Warn("strategy output failed validation",
			"strategy", strategy,
			"batch_id", batchID,
			"failed_fields", len(validationErr.Fields),
			"error", validationErr)
	case errors.As(err, &transportErr):
		c.logger.Warn("strategy transport failure",
			"strategy", strategy,
			"batch_id", batchID,
			"error", transportErr)
	default:
		c.logger.Warn("strategy failed",
			"strategy", strategy,
			"batch_id", batchID,
			"error", err)
	}
}
