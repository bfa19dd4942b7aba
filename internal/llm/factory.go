package llm

import (
	"fmt"
	"strings"
)

// NewCompletionClient creates a completion client based on the provided
// configuration.
func NewCompletionClient(cfg Config) (CompletionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	case "gemini":
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
