package llm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ewisehart/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCompletionClient returns a canned response or error.
type mockCompletionClient struct {
	err      error
	response string
	lastReq  CompletionRequest
	calls    int
	jsonMode bool
}

func (m *mockCompletionClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompletionClient) SupportsJSONMode() bool {
	return m.jsonMode
}

func newTestExtractor(client CompletionClient) *Extractor {
	return NewExtractorWithClient(client, Config{MaxRetries: 1}, "USD", nil)
}

func TestExtractorExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("clean JSON response", func(t *testing.T) {
		client := &mockCompletionClient{
			response: `{"transactions": [{"date": "2024-12-20", "description": "Coffee", "type": "Card", "amount": 4.50, "direction": "OUT"}]}`,
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		got, err := extractor.Extract(ctx, "batch-1", "spent $4.50 on coffee")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, strings.HasPrefix(got[0].ID, "txn-"))
		assert.Equal(t, "batch-1", got[0].BatchID)
		assert.Equal(t, "2024-12-20", got[0].Date)
		assert.Equal(t, "Coffee", got[0].Description)
		assert.Equal(t, "Card", got[0].Type)
		assert.InDelta(t, 4.50, got[0].Amount, 0.001)
		assert.Equal(t, "USD", got[0].Currency)
		assert.Equal(t, model.DirectionOut, got[0].Direction)
	})

	t.Run("response wrapped in prose and fences", func(t *testing.T) {
		client := &mockCompletionClient{
			response: "Here you go:\n```json\n{\"transactions\": [{\"date\": \"2024-01-01\", \"description\": \"Lunch\", \"type\": \"Card\", \"amount\": 12, \"direction\": \"out\"}]}\n```",
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		got, err := extractor.Extract(ctx, "batch-2", "lunch")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lunch", got[0].Description)
	})

	t.Run("sloppy JSON goes through the repair pass", func(t *testing.T) {
		client := &mockCompletionClient{
			response: `{transactions: [{date: '2024-01-01', description: 'Lunch', type: 'Card', amount: 10, direction: 'OUT',}]}`,
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		got, err := extractor.Extract(ctx, "batch-3", "lunch")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Lunch", got[0].Description)
		assert.InDelta(t, 10.0, got[0].Amount, 0.001)
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &mockCompletionClient{err: fmt.Errorf("connection refused")}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		_, err := extractor.Extract(ctx, "batch-4", "lunch")
		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("no recoverable JSON", func(t *testing.T) {
		client := &mockCompletionClient{response: "I could not find any transactions."}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		_, err := extractor.Extract(ctx, "batch-5", "lunch")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("schema violations", func(t *testing.T) {
		client := &mockCompletionClient{
			response: `{"transactions": [{"date": "2024-01-01"}]}`,
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		_, err := extractor.Extract(ctx, "batch-6", "lunch")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Len(t, valErr.Fields, 4)
	})

	t.Run("void transactions are dropped", func(t *testing.T) {
		client := &mockCompletionClient{
			response: `{"transactions": [{"date": "unknown", "description": "unknown", "type": "Misc", "amount": 0, "direction": "UNKNOWN"}]}`,
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		got, err := extractor.Extract(ctx, "batch-7", "nothing here")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty transactions array", func(t *testing.T) {
		client := &mockCompletionClient{response: `{"transactions": []}`}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		got, err := extractor.Extract(ctx, "batch-8", "no purchases today")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("JSON mode follows client support", func(t *testing.T) {
		client := &mockCompletionClient{
			response: `{"transactions": []}`,
			jsonMode: true,
		}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		_, err := extractor.Extract(ctx, "batch-9", "text")
		require.NoError(t, err)
		assert.True(t, client.lastReq.JSONMode)
		require.Len(t, client.lastReq.Messages, 2)
		assert.Equal(t, "system", client.lastReq.Messages[0].Role)
	})

	t.Run("long input is truncated in the prompt", func(t *testing.T) {
		client := &mockCompletionClient{response: `{"transactions": []}`}
		extractor := newTestExtractor(client)
		defer func() { _ = extractor.Close() }()

		_, err := extractor.Extract(ctx, "batch-10", strings.Repeat("x", maxInputChars+500))
		require.NoError(t, err)
		assert.Contains(t, client.lastReq.Messages[1].Content, truncationMarker)
	})
}
