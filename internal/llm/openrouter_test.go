package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.0-flash-exp",
		})
		require.NoError(t, err)
		assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())
		assert.Equal(t, "openrouter", p.Name())
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("friendly names are not mapped", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "gpt-4o-mini",
		})
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", p.ModelID())
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "anthropic/claude-3-haiku",
			BaseURL: "https://custom.openrouter.example/v1",
		})
		require.NoError(t, err)
		assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
	})
}
