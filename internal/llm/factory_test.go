package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionClient(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		jsonMode bool
		wantErr  bool
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "test-key"},
			jsonMode: true,
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "test-key"},
			jsonMode: false,
		},
		{
			name:     "gemini",
			config:   Config{Provider: "gemini", APIKey: "test-key"},
			jsonMode: true,
		},
		{
			name:     "provider name is case insensitive",
			config:   Config{Provider: "OpenAI", APIKey: "test-key"},
			jsonMode: true,
		},
		{
			name:    "unsupported provider",
			config:  Config{Provider: "psychic", APIKey: "test-key"},
			wantErr: true,
		},
		{
			name:    "missing API key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewCompletionClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			assert.Equal(t, tt.jsonMode, client.SupportsJSONMode())
		})
	}
}

func TestProviderDefaults(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		client, err := newOpenAIClient(Config{APIKey: "test-key"})
		require.NoError(t, err)
		openai, ok := client.(*openAIClient)
		require.True(t, ok)
		assert.Equal(t, "gpt-4o-mini", openai.model)
		assert.InDelta(t, 0.2, openai.temperature, 0.001)
		assert.Equal(t, 2000, openai.maxTokens)
	})

	t.Run("anthropic", func(t *testing.T) {
		client, err := newAnthropicClient(Config{APIKey: "test-key"})
		require.NoError(t, err)
		anthropic, ok := client.(*anthropicClient)
		require.True(t, ok)
		assert.Equal(t, "claude-3-5-haiku-20241022", anthropic.model)
	})

	t.Run("gemini", func(t *testing.T) {
		client, err := newGeminiClient(Config{APIKey: "test-key"})
		require.NoError(t, err)
		gemini, ok := client.(*geminiClient)
		require.True(t, ok)
		assert.Equal(t, "gemini-2.5-flash", gemini.model)
	})

	t.Run("custom settings are kept", func(t *testing.T) {
		client, err := newOpenAIClient(Config{
			APIKey:      "test-key",
			Model:       "gpt-4o",
			Temperature: 0.7,
			MaxTokens:   500,
		})
		require.NoError(t, err)
		openai, ok := client.(*openAIClient)
		require.True(t, ok)
		assert.Equal(t, "gpt-4o", openai.model)
		assert.InDelta(t, 0.7, openai.temperature, 0.001)
		assert.Equal(t, 500, openai.maxTokens)
	})
}
