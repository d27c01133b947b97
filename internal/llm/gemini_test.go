package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   DefaultModel,
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return p
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"models/gemini-pro", "models/gemini-pro"}, // Pass-through
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, geminiModels), "resolveModel(%q)", tt.input)
	}
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig(GenerationConfig{
		Temperature:     0.5,
		TopP:            1.0,
		TopK:            50,
		MaxOutputTokens: 64,
	})

	require.NotNil(t, cfg.Temperature)
	require.NotNil(t, cfg.TopP)
	require.NotNil(t, cfg.TopK)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	assert.InDelta(t, 1.0, *cfg.TopP, 1e-6)
	assert.InDelta(t, 50, *cfg.TopK, 1e-6)
	assert.EqualValues(t, 64, cfg.MaxOutputTokens)
}

func TestGeminiProvider_MissingKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var (
		path string
		body map[string]any
	)
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "This is the expected text."}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     3,
				"candidatesTokenCount": 6,
				"totalTokenCount":      9,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Prompt: "Hello!",
		Generation: GenerationConfig{
			Temperature:     0.5,
			TopP:            1.0,
			TopK:            50,
			MaxOutputTokens: 64,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "This is the expected text.", resp.Text)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 3, OutputTokens: 6, TotalTokens: 9}, resp.Usage)

	assert.True(t, strings.HasSuffix(path, "gemini-pro:generateContent"), "path = %s", path)

	gen, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok, "missing generationConfig in %v", body)
	assert.InDelta(t, 0.5, gen["temperature"], 1e-6)
	assert.InDelta(t, 50, gen["topK"], 1e-6)
	assert.EqualValues(t, 64, gen["maxOutputTokens"])
}

func TestGeminiProvider_ErrorPassesThrough(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    401,
				"message": "API key not valid",
				"status":  "UNAUTHENTICATED",
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{Prompt: "x", Generation: DefaultGenerationConfig()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
