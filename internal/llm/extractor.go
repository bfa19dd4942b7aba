package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ewisehart/tally/internal/common"
	"github.com/ewisehart/tally/internal/model"
	"github.com/ewisehart/tally/internal/service"
)

// Extractor turns free-form financial text into transactions by prompting an
// LLM provider and validating whatever comes back.
type Extractor struct {
	client       CompletionClient
	rateLimiter  *rateLimiter
	logger       *slog.Logger
	retryOpts    service.RetryOptions
	baseCurrency string
}

// NewExtractor creates an LLM-backed extractor for the configured provider.
func NewExtractor(cfg Config, baseCurrency string, logger *slog.Logger) (*Extractor, error) {
	client, err := NewCompletionClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return NewExtractorWithClient(client, cfg, baseCurrency, logger), nil
}

// NewExtractorWithClient creates an extractor around an existing client.
func NewExtractorWithClient(client CompletionClient, cfg Config, baseCurrency string, logger *slog.Logger) *Extractor {
	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		client:       client,
		rateLimiter:  newRateLimiter(cfg.RateLimit),
		logger:       logger,
		retryOpts:    retryOpts,
		baseCurrency: baseCurrency,
	}
}

// Extract prompts the provider with the given text and returns the validated
// transactions, stamped with batchID. Failures come back as *ParseError,
// *ValidationError, or *TransportError so callers can tell the stages apart.
func (e *Extractor) Extract(ctx context.Context, batchID, text string) ([]model.Transaction, error) {
	// Rate limiting
	if err := e.rateLimiter.wait(ctx); err != nil {
		return nil, &TransportError{Err: err}
	}

	req := CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: buildExtractionPrompt(text, e.baseCurrency)},
		},
		JSONMode: e.client.SupportsJSONMode(),
	}

	var raw string

	// Use common retry logic
	err := common.WithRetry(ctx, func() error {
		e.logger.Debug("attempting LLM extraction", "batch_id", batchID)

		response, completeErr := e.client.Complete(ctx, req)
		if completeErr != nil {
			e.logger.Warn("LLM extraction attempt failed",
				"error", completeErr,
				"batch_id", batchID)
			return &common.RetryableError{Err: completeErr, Retryable: true}
		}

		raw = response
		return nil
	}, e.retryOpts)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	transactions, err := e.parseResponse(batchID, raw)
	if err != nil {
		return nil, err
	}

	e.logger.Info("transactions extracted",
		"batch_id", batchID,
		"count", len(transactions))

	return transactions, nil
}

// parseResponse runs the response through JSON recovery and schema
// validation, then builds the transaction records.
func (e *Extractor) parseResponse(batchID, raw string) ([]model.Transaction, error) {
	recovered, err := RecoverJSON(raw)
	if err != nil {
		e.logger.Warn("LLM response had no recoverable JSON",
			"error", err,
			"batch_id", batchID)
		return nil, err
	}

	validated, err := ValidatePayload(recovered)
	if err != nil {
		// The repair pass only runs when the candidate failed to parse.
		// A payload that parsed but failed validation stays failed.
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}

		e.logger.Debug("retrying with repaired JSON",
			"error", err,
			"batch_id", batchID)

		validated, err = ValidatePayload(RepairJSON(recovered))
		if err != nil {
			return nil, err
		}
	}

	transactions := make([]model.Transaction, 0, len(validated))
	for _, v := range validated {
		txn := model.Transaction{
			ID:                 model.NewTransactionID(),
			BatchID:            batchID,
			Date:               v.Date,
			Description:        v.Description,
			Type:               v.Type,
			Amount:             v.Amount,
			Currency:           v.Currency,
			Direction:          v.Direction,
			Notes:              v.Notes,
			NeedsClarification: v.NeedsClarification,
		}
		txn.Normalize(e.baseCurrency)
		if txn.IsVoid() {
			continue
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

// Close stops background goroutines and cleans up resources.
func (e *Extractor) Close() error {
	if e.rateLimiter != nil {
		e.rateLimiter.Close()
	}
	return nil
}
