package llm

import (
	"context"
	"time"
)

// Message is a single turn in a completion conversation.
type Message struct {
	Role    string // "system" or "user"
	Content string
}

// CompletionRequest describes one completion invocation. JSONMode asks the
// provider for structurally valid JSON output; providers that cannot honor
// it report so via SupportsJSONMode and rely on prompt instructions instead.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// CompletionClient is the narrow interface to a language model provider.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	SupportsJSONMode() bool
}

// Config holds configuration for the completion transport.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}
