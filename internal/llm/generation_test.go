package llm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msgModel       = "model is required."
	msgTemperature = "temperature must be in the range [0.0, 1.0]"
	msgTopP        = "top_p must be in the range [0.0, 1.0]"
	msgTopK        = "top_k must be in the range [0.0, 100.0]"
	msgMaxTokens   = "max_output_tokens must be greater than zero"
)

func validConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.5, TopP: 1.0, TopK: 50, MaxOutputTokens: 64}
}

func TestValidateGeneration_Defaults(t *testing.T) {
	require.NoError(t, ValidateGeneration(DefaultModel, DefaultGenerationConfig()))
}

func TestValidateGeneration_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerationConfig)
		wantMsg string
	}{
		{"temperature below", func(c *GenerationConfig) { c.Temperature = -1 }, msgTemperature},
		{"temperature above", func(c *GenerationConfig) { c.Temperature = 1.1 }, msgTemperature},
		{"temperature NaN", func(c *GenerationConfig) { c.Temperature = math.NaN() }, msgTemperature},
		{"temperature lower bound", func(c *GenerationConfig) { c.Temperature = 0 }, ""},
		{"temperature upper bound", func(c *GenerationConfig) { c.Temperature = 1 }, ""},

		{"top_p below", func(c *GenerationConfig) { c.TopP = -1 }, msgTopP},
		{"top_p above", func(c *GenerationConfig) { c.TopP = 1.1 }, msgTopP},
		{"top_p lower bound", func(c *GenerationConfig) { c.TopP = 0 }, ""},
		{"top_p upper bound", func(c *GenerationConfig) { c.TopP = 1 }, ""},

		{"top_k below", func(c *GenerationConfig) { c.TopK = -100 }, msgTopK},
		{"top_k above", func(c *GenerationConfig) { c.TopK = 110 }, msgTopK},
		{"top_k infinite", func(c *GenerationConfig) { c.TopK = math.Inf(1) }, msgTopK},
		{"top_k lower bound", func(c *GenerationConfig) { c.TopK = 0 }, ""},
		{"top_k upper bound", func(c *GenerationConfig) { c.TopK = 100 }, ""},

		{"max tokens zero", func(c *GenerationConfig) { c.MaxOutputTokens = 0 }, msgMaxTokens},
		{"max tokens negative", func(c *GenerationConfig) { c.MaxOutputTokens = -5 }, msgMaxTokens},
		{"max tokens one", func(c *GenerationConfig) { c.MaxOutputTokens = 1 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := ValidateGeneration("models/gemini-pro", cfg)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestValidateGeneration_SweepInsideRange(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		cfg := validConfig()
		cfg.Temperature = v
		cfg.TopP = v
		cfg.TopK = float64(i)
		assert.NoError(t, ValidateGeneration("m", cfg), "value %v", v)
	}
}

func TestValidateGeneration_EmptyModel(t *testing.T) {
	err := ValidateGeneration("", validConfig())
	require.Error(t, err)
	assert.Equal(t, msgModel, err.Error())

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "model", vErr.Field)
}

func TestValidateGeneration_FirstViolationWins(t *testing.T) {
	all := GenerationConfig{Temperature: 2, TopP: 2, TopK: 200, MaxOutputTokens: 0}

	err := ValidateGeneration("", all)
	assert.EqualError(t, err, msgModel)

	err = ValidateGeneration("m", all)
	assert.EqualError(t, err, msgTemperature)

	all.Temperature = 0.1
	err = ValidateGeneration("m", all)
	assert.EqualError(t, err, msgTopP)

	all.TopP = 0.1
	err = ValidateGeneration("m", all)
	assert.EqualError(t, err, msgTopK)

	all.TopK = 0
	err = ValidateGeneration("m", all)
	assert.EqualError(t, err, msgMaxTokens)
}

func TestValidationError_IsNotCredentialError(t *testing.T) {
	err := ValidateGeneration("", validConfig())
	assert.False(t, errors.Is(err, ErrMissingAPIKey))

	var credErr *CredentialError
	assert.False(t, errors.As(err, &credErr))
}
